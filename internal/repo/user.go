package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/crucial707/inventory/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// ==========================
// Create User
// ==========================

// Create inserts u, assigning a new id when u.ID is empty. A unique violation is
// reported as *DuplicateError naming the field.
func (r *UserRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt))
	if err != nil {
		return models.User{}, wrap(err, "failed to create user")
	}
	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.User{}, wrap(err, "failed to get user by id")
	}
	return user, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return models.User{}, wrap(err, "failed to get user by email")
	}
	return user, nil
}

// ==========================
// Find By Email Or Username
// ==========================

// FindByEmailOrUsername returns a user whose email or username matches. When two
// different users match, the one matching email wins.
func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 OR username = $2
		ORDER BY (email = $1) DESC
		LIMIT 1`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email, username))
	if err != nil {
		return models.User{}, wrap(err, "failed to find user")
	}
	return user, nil
}
