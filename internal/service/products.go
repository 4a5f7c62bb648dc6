package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crucial707/inventory/internal/apperr"
	"github.com/crucial707/inventory/internal/models"
	"github.com/crucial707/inventory/internal/repo"
)

const (
	msgProductFields    = "Please provide product name and price"
	msgProductName      = "Product name is required"
	msgNegativePrice    = "Price cannot be negative"
	msgNegativeQuantity = "Quantity cannot be negative"
	msgOutOfRange       = "Price or quantity is too large"
	msgProductNotFound  = "Product not found"
	msgForbiddenUpdate  = "Not authorized to update this product"
	msgForbiddenDelete  = "Not authorized to delete this product"
)

// Products implements product CRUD. Only a product's owner may change or remove it.
type Products struct {
	store  ProductStore
	logger *slog.Logger
	now    func() time.Time
}

func NewProducts(store ProductStore, logger *slog.Logger) *Products {
	return &Products{store: store, logger: logger, now: time.Now}
}

// Create stores a new product owned by ownerID. Quantity defaults to 0.
func (s *Products) Create(ctx context.Context, ownerID string, in models.ProductInput) (models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return models.Product{}, apperr.Validation(msgProductFields)
	}

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if err := checkAmounts(*in.Price, quantity); err != nil {
		return models.Product{}, err
	}

	now := s.now().UTC()
	product, err := s.store.Create(ctx, models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		Quantity:    quantity,
		Owner:       models.Owner{ID: ownerID},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, repo.ErrOutOfRange) {
			return models.Product{}, apperr.Validation(msgOutOfRange)
		}
		s.logger.Error("failed to create product", "owner_id", ownerID, "error", err)
		return models.Product{}, apperr.Internal("create product", err)
	}

	s.logger.Info("product created", "product_id", product.ID, "owner_id", ownerID)
	return product, nil
}

// ListAll returns every product with its owner's username.
func (s *Products) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list products", err)
	}
	return products, nil
}

// ListByOwner returns the products owned by ownerID.
func (s *Products) ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	products, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list products by owner", err)
	}
	return products, nil
}

// GetByID returns the product with its owner's username.
func (s *Products) GetByID(ctx context.Context, id string) (models.Product, error) {
	return s.load(ctx, id)
}

// Update applies patch to the product. Existence is checked before ownership.
func (s *Products) Update(ctx context.Context, id, ownerID string, patch models.ProductPatch) (models.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if product.Owner.ID != ownerID {
		s.logger.Warn("update rejected", "product_id", id, "owner_id", product.Owner.ID, "caller_id", ownerID)
		return models.Product{}, apperr.Forbidden(msgForbiddenUpdate)
	}

	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
		if product.Name == "" {
			return models.Product{}, apperr.Validation(msgProductName)
		}
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if err := checkAmounts(product.Price, product.Quantity); err != nil {
		return models.Product{}, err
	}

	product.UpdatedAt = s.now().UTC()
	if product.UpdatedAt.Before(product.CreatedAt) {
		product.UpdatedAt = product.CreatedAt
	}

	updated, err := s.store.Update(ctx, product)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Product{}, apperr.NotFound(msgProductNotFound)
		}
		if errors.Is(err, repo.ErrOutOfRange) {
			return models.Product{}, apperr.Validation(msgOutOfRange)
		}
		s.logger.Error("failed to update product", "product_id", id, "error", err)
		return models.Product{}, apperr.Internal("update product", err)
	}

	s.logger.Info("product updated", "product_id", id, "owner_id", ownerID)
	return updated, nil
}

// Delete removes the product. A repeated delete reports NotFound.
func (s *Products) Delete(ctx context.Context, id, ownerID string) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if product.Owner.ID != ownerID {
		s.logger.Warn("delete rejected", "product_id", id, "owner_id", product.Owner.ID, "caller_id", ownerID)
		return apperr.Forbidden(msgForbiddenDelete)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(msgProductNotFound)
		}
		s.logger.Error("failed to delete product", "product_id", id, "error", err)
		return apperr.Internal("delete product", err)
	}

	s.logger.Info("product deleted", "product_id", id, "owner_id", ownerID)
	return nil
}

func (s *Products) load(ctx context.Context, id string) (models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Product{}, apperr.NotFound(msgProductNotFound)
	}
	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Product{}, apperr.NotFound(msgProductNotFound)
		}
		return models.Product{}, apperr.Internal("get product", err)
	}
	return product, nil
}

func checkAmounts(price float64, quantity int) error {
	if price < 0 {
		return apperr.Validation(msgNegativePrice)
	}
	if quantity < 0 {
		return apperr.Validation(msgNegativeQuantity)
	}
	return nil
}
