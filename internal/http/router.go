package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/inventory-dashboard/docs"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type RouterOptions struct {
	// Limiter is optional; nil disables rate limiting.
	Limiter *rl.Limiter
	Logger  *zap.Logger
}

func NewRouter(s *handlers.Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	if opts.Limiter != nil {
		r.Use(RateLimitMiddleware(opts.Limiter, logger))
	}

	r.Post("/login", s.LoginHandler)

	r.Get("/categories", s.GetCategoriesHandler)
	r.Get("/products", s.GetProductsHandler)
	r.Get("/products/{id}", s.GetProductByIDHandler)
	r.Get("/inventory", s.GetInventoryHandler)
	r.Get("/inventory/low-stock", s.GetLowStockHandler)
	r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)
	r.Get("/metrics/dashboard/export", s.ExportDashboardHandler)
	r.Get("/metrics/value-by-category", s.GetValueByCategoryHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.Tokens()))
		r.Post("/categories", s.CreateCategoryHandler)
		r.Delete("/categories/{id}", s.DeleteCategoryHandler)
		r.Post("/products", s.CreateProductHandler)
		r.Delete("/products/{id}", s.DeleteProductHandler)
		r.Get("/events", s.GetEventsHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return r
}
