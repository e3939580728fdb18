package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teltechdev/teltech-backend/api/controllers"
	"github.com/teltechdev/teltech-backend/api/middleware"
	"github.com/teltechdev/teltech-backend/internal/accounts"
	"github.com/teltechdev/teltech-backend/internal/catalog"
	"github.com/teltechdev/teltech-backend/internal/stock"
	"github.com/teltechdev/teltech-backend/pkg/config"
	"github.com/teltechdev/teltech-backend/pkg/db"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	catalogService catalog.Service,
	stockService stock.Service,
	accountsService accounts.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(accountsService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))
			r.Post("/auth/logout", controllers.AdminLogout(logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Post("/stock/deduct", controllers.DeductStock(stockService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, logg))
				r.Post("/", controllers.CreateProduct(catalogService, logg))
				r.Put("/{id}", controllers.UpdateProduct(catalogService, logg))
				r.Delete("/{id}", controllers.DeleteProduct(catalogService, logg))
			})
		})
	})

	return r
}
