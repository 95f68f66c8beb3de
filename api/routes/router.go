package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koussaybh/patisserie-storefront/api/controllers"
	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/internal/catalog"
	"github.com/koussaybh/patisserie-storefront/internal/orders"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	sessionpkg "github.com/koussaybh/patisserie-storefront/internal/session"
	"github.com/koussaybh/patisserie-storefront/pkg/bakery"
	"github.com/koussaybh/patisserie-storefront/pkg/config"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backend *bakery.Client,
	registry *sessionpkg.Registry,
	engine pricing.Engine,
	catalogService catalog.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, backend))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", controllers.SessionCreate(registry, engine, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(registry, logg))

			r.Get("/session", controllers.SessionState(engine, logg))
			r.Get("/delivery/options", controllers.DeliveryOptions(cfg.Delivery.WindowDays))
			r.Post("/delivery", controllers.DeliverySelect(engine, logg))
			r.Get("/categories", controllers.CategoryList())
			r.Post("/category", controllers.CategorySelect(engine, logg))
			r.Get("/products", controllers.ProductList(catalogService, logg))
			r.Post("/cart/items", controllers.CartAdd(catalogService, engine, logg))
			r.Patch("/cart/items", controllers.CartAdjust(engine, logg))
			r.Get("/cart", controllers.CartFetch(engine, logg))
			r.Post("/cart/confirm", controllers.CartConfirm(engine, logg))
			r.Get("/checkout", controllers.CheckoutSummary(engine, logg))
			r.Post("/checkout", controllers.CheckoutSubmit(orderService, engine, logg))
			r.Post("/back", controllers.Back(engine, logg))
			r.Post("/start-over", controllers.StartOver(engine, logg))
		})
	})

	return r
}
