package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/inventory/internal/apperr"
	"github.com/crucial707/inventory/internal/models"
)

type key string

const userKey key = "user"

const msgNotAuthenticated = "Not authenticated"

// Authenticator resolves a bearer token to the current user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequireAuth rejects requests without a valid "Bearer <token>" Authorization
// header with 401. Missing, malformed, expired and orphaned tokens all get the
// same response. On success the user is available via UserFromContext.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}

			user, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindUnauthenticated {
					writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
					return
				}
				logger.Error("failed to resolve token subject",
					"request_id", chimw.GetReqID(r.Context()),
					"error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user attached by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// WithUser returns a copy of ctx carrying user. Used by tests and internal callers
// that bypass RequireAuth.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	tok := header[len(prefix):]
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return "", false
	}
	return tok, true
}

// writeError sends the API's failure envelope. Middleware cannot import the
// handlers package, so the shape is repeated here.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
