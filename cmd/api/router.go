package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/inventory/internal/config"
	"github.com/crucial707/inventory/internal/handlers"
	"github.com/crucial707/inventory/internal/middleware"
	"github.com/crucial707/inventory/internal/password"
	"github.com/crucial707/inventory/internal/repo"
	"github.com/crucial707/inventory/internal/service"
	"github.com/crucial707/inventory/internal/token"
)

// newRouter wires stores, services and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config, logger *slog.Logger) http.Handler {
	// ===== Stores and services =====
	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)

	accounts := service.NewAccounts(users, password.NewBcrypt(cfg.BcryptCost), token.NewManager(cfg.JWTSecret, nil), logger)
	catalog := service.NewProducts(products, logger)

	responder := handlers.Responder{Logger: logger, Production: cfg.IsProduction()}
	authHandler := &handlers.AuthHandler{Accounts: accounts, Responder: responder}
	productHandler := &handlers.ProductHandler{Products: catalog, Responder: responder}
	healthHandler := &handlers.HealthHandler{DB: db, Logger: logger}

	requireAuth := middleware.RequireAuth(accounts, logger)

	// ===== Router =====
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Recoverer(logger, cfg.IsProduction()))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{id}", productHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user/me", productHandler.Mine)
			r.Post("/", productHandler.Create)
			r.Put("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
		})
	})

	return r
}
