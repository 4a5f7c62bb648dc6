package models

import "time"

// Owner references the user that owns a product. Username is filled only by
// reads that join the identity store.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Owner       Owner     `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductInput carries the fields accepted on create. Price is a pointer so a
// zero price can be told apart from a missing one.
type ProductInput struct {
	Name        string
	Description string
	Price       *float64
	Quantity    *int
}

// ProductPatch lists the only mutable product fields. Nil means unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
}
