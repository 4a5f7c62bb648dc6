package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/inventory/internal/metrics"
	"github.com/crucial707/inventory/internal/models"
)

// AccountService is the part of service.Accounts the auth handler needs.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
}

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Accounts AccountService
	Responder
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input signupRequest
	if !decodeJSON(w, r, &input) {
		metrics.IncAuthAttempt("signup", http.StatusBadRequest)
		return
	}
	if !validateInput(w, input, "Please provide username, email and password") {
		metrics.IncAuthAttempt("signup", http.StatusBadRequest)
		return
	}

	session, err := h.Accounts.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		metrics.IncAuthAttempt("signup", h.Error(w, r, err))
		return
	}

	metrics.IncAuthAttempt("signup", http.StatusCreated)
	WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "User registered successfully",
		Data:    session,
	})
}

// ==========================
// Signin
// ==========================
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input signinRequest
	if !decodeJSON(w, r, &input) {
		metrics.IncAuthAttempt("signin", http.StatusBadRequest)
		return
	}
	if !validateInput(w, input, "Please provide email and password") {
		metrics.IncAuthAttempt("signin", http.StatusBadRequest)
		return
	}

	session, err := h.Accounts.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		metrics.IncAuthAttempt("signin", h.Error(w, r, err))
		return
	}

	metrics.IncAuthAttempt("signin", http.StatusOK)
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "User logged in successfully",
		Data:    session,
	})
}
