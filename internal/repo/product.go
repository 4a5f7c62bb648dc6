package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/crucial707/inventory/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ProductRepo struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db}
}

const productColumns = `id, name, description, price, quantity, owner_id, created_at, updated_at`

// joined reads also carry the owner's username
const productJoinedSelect = `
	SELECT p.id, p.name, p.description, p.price, p.quantity, p.owner_id, p.created_at, p.updated_at,
	       COALESCE(u.username, '')
	FROM products p
	LEFT JOIN users u ON u.id = p.owner_id`

func scanProduct(row scanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Owner.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanProductWithOwner(row scanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Owner.ID, &p.CreatedAt, &p.UpdatedAt, &p.Owner.Username)
	return p, err
}

// ========================
// CREATE PRODUCT
// ========================

// Create inserts p, assigning a new id when p.ID is empty.
func (r *ProductRepo) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	product, err := scanProduct(r.DB.QueryRowContext(ctx,
		`INSERT INTO products (id, name, description, price, quantity, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.Owner.ID, p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		return models.Product{}, wrap(err, "failed to create product")
	}
	return product, nil
}

// ========================
// GET PRODUCT BY ID
// ========================

func (r *ProductRepo) GetByID(ctx context.Context, id string) (models.Product, error) {
	product, err := scanProductWithOwner(r.DB.QueryRowContext(ctx, productJoinedSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return models.Product{}, wrap(err, "failed to get product")
	}
	return product, nil
}

// ========================
// LIST ALL PRODUCTS
// ========================

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx, productJoinedSelect+` ORDER BY p.created_at`)
	if err != nil {
		return nil, wrap(err, "failed to list products")
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProductWithOwner(rows)
		if err != nil {
			return nil, wrap(err, "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "failed to list products")
	}
	return products, nil
}

// ========================
// LIST PRODUCTS BY OWNER
// ========================

func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE owner_id = $1 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, wrap(err, "failed to list products by owner")
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap(err, "failed to scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "failed to list products by owner")
	}
	return products, nil
}

// ========================
// UPDATE PRODUCT
// ========================

// Update writes the mutable fields and updated_at of p. The owner column is never written.
func (r *ProductRepo) Update(ctx context.Context, p models.Product) (models.Product, error) {
	product, err := scanProduct(r.DB.QueryRowContext(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, quantity = $4, updated_at = $5
		 WHERE id = $6
		 RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Quantity, p.UpdatedAt, p.ID,
	))
	if err != nil {
		return models.Product{}, wrap(err, "failed to update product")
	}
	return product, nil
}

// ========================
// DELETE PRODUCT
// ========================

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return wrap(err, "failed to delete product")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return wrap(err, "failed to delete product")
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
