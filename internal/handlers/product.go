package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/inventory/internal/apperr"
	"github.com/crucial707/inventory/internal/metrics"
	"github.com/crucial707/inventory/internal/middleware"
	"github.com/crucial707/inventory/internal/models"
)

// ProductService is the product API the handler drives.
type ProductService interface {
	Create(ctx context.Context, ownerID string, in models.ProductInput) (models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, id, ownerID string, patch models.ProductPatch) (models.Product, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type ProductHandler struct {
	Products ProductService
	Responder
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int     `json:"quantity"`
}

// updateProductRequest lists the only fields a client may change. Other keys,
// owner included, are dropped by the decoder.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

//
// ==========================
// List Products
// ==========================
//

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListAll(r.Context())
	if err != nil {
		h.Error(w, r, err)
		return
	}
	writeList(w, products)
}

//
// ==========================
// List My Products
// ==========================
//

func (h *ProductHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	products, err := h.Products.ListByOwner(r.Context(), user.ID)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	writeList(w, products)
}

//
// ==========================
// Get Product
// ==========================
//

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: product})
}

//
// ==========================
// Create Product
// ==========================
//

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var input createProductRequest
	if !decodeJSON(w, r, &input) {
		metrics.IncProductMutation("create", http.StatusBadRequest)
		return
	}
	// ===== Validate input =====
	if !validateInput(w, input, "Please provide product name and price") {
		metrics.IncProductMutation("create", http.StatusBadRequest)
		return
	}

	product, err := h.Products.Create(r.Context(), user.ID, models.ProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	})
	if err != nil {
		metrics.IncProductMutation("create", h.Error(w, r, err))
		return
	}

	metrics.IncProductMutation("create", http.StatusCreated)
	WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

//
// ==========================
// Update Product
// ==========================
//

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var input updateProductRequest
	if !decodeJSON(w, r, &input) {
		metrics.IncProductMutation("update", http.StatusBadRequest)
		return
	}

	product, err := h.Products.Update(r.Context(), chi.URLParam(r, "id"), user.ID, models.ProductPatch{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
	})
	if err != nil {
		metrics.IncProductMutation("update", h.Error(w, r, err))
		return
	}

	metrics.IncProductMutation("update", http.StatusOK)
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

//
// ==========================
// Delete Product
// ==========================
//

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.Products.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		metrics.IncProductMutation("delete", h.Error(w, r, err))
		return
	}

	metrics.IncProductMutation("delete", http.StatusOK)
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: "Product deleted successfully"})
}

// caller returns the authenticated user. Routes using it must sit behind RequireAuth;
// reaching it without a user is treated as unauthenticated.
func (h *ProductHandler) caller(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.Error(w, r, apperr.Unauthenticated("Not authenticated"))
	}
	return user, ok
}

func writeList(w http.ResponseWriter, products []models.Product) {
	if products == nil {
		products = []models.Product{}
	}
	count := len(products)
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: products})
}
