// Package service holds the account and product business rules. Services depend
// only on the interfaces below; concrete stores, the hasher and the token manager
// are injected at startup.
package service

import (
	"context"

	"github.com/crucial707/inventory/internal/models"
)

// UserStore persists users. Implementations return repo.ErrNotFound for misses
// and an error matching repo.ErrDuplicate for uniqueness violations.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error)
}

// ProductStore persists products.
type ProductStore interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// Hasher is a one-way password hashing primitive.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenManager issues and verifies signed identity tokens.
type TokenManager interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (models.Identity, error)
}
