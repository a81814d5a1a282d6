package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/rentalhub-backend/api/controllers"
	"github.com/angelmondragon/rentalhub-backend/api/middleware"
	"github.com/angelmondragon/rentalhub-backend/internal/attributes"
	"github.com/angelmondragon/rentalhub-backend/internal/pricing"
	"github.com/angelmondragon/rentalhub-backend/internal/products"
	"github.com/angelmondragon/rentalhub-backend/internal/regions"
	"github.com/angelmondragon/rentalhub-backend/internal/rentalperiods"
	"github.com/angelmondragon/rentalhub-backend/internal/rentals"
	"github.com/angelmondragon/rentalhub-backend/pkg/config"
	"github.com/angelmondragon/rentalhub-backend/pkg/db"
	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
	"github.com/angelmondragon/rentalhub-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs. Nil services
// answer 500; a nil Redis disables replay and throttling.
type Dependencies struct {
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Regions       regions.Service
	RentalPeriods rentalperiods.Service
	Attributes    attributes.Service
	Pricing       pricing.Service
	Products      products.Service
	Rentals       rentals.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["db"] = deps.DB
	}
	if deps.Redis != nil {
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		if deps.Redis != nil {
			writePolicy := middleware.NewRateLimitPolicy("write", cfg.RateLimit.WriteWindow, cfg.RateLimit.WriteIPLimit)
			r.Use(middleware.WriteRateLimit(writePolicy, deps.Redis, logg))
			r.Use(middleware.Idempotency(deps.Redis, cfg.Idempotency.TTL, logg))
		}

		r.Get("/user", controllers.CurrentUser())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.Products, logg))
				r.Put("/", controllers.UpdateProduct(deps.Products, logg))
				r.Delete("/", controllers.DeleteProduct(deps.Products, logg))

				r.Get("/pricing", controllers.ListProductPricing(deps.Products, logg))
				r.Post("/pricing", controllers.CreateProductPricing(deps.Pricing, logg))
				r.Get("/pricing/{pricingId}", controllers.GetProductPricing(deps.Pricing, logg))
				r.Put("/pricing/{pricingId}", controllers.UpdateProductPricing(deps.Pricing, logg))
				r.Delete("/pricing/{pricingId}", controllers.DeleteProductPricing(deps.Pricing, logg))
			})
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Post("/", controllers.CreatePricing(deps.Pricing, logg))
			r.Put("/{id}", controllers.UpdatePricing(deps.Pricing, logg))
			r.Delete("/{id}", controllers.DeletePricing(deps.Pricing, logg))
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", controllers.ListRentals(deps.Rentals, logg))
			r.Post("/", controllers.CreateRental(deps.Rentals, logg))
			r.Get("/{id}", controllers.GetRental(deps.Rentals, logg))
			r.Put("/{id}", controllers.UpdateRental(deps.Rentals, logg))
			r.Delete("/{id}", controllers.DeleteRental(deps.Rentals, logg))
		})

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", controllers.ListRegions(deps.Regions, logg))
			r.Post("/", controllers.CreateRegion(deps.Regions, logg))
			r.Get("/{id}", controllers.GetRegion(deps.Regions, logg))
			r.Put("/{id}", controllers.UpdateRegion(deps.Regions, logg))
			r.Delete("/{id}", controllers.DeleteRegion(deps.Regions, logg))
		})

		r.Route("/rental-periods", func(r chi.Router) {
			r.Get("/", controllers.ListRentalPeriods(deps.RentalPeriods, logg))
			r.Post("/", controllers.CreateRentalPeriod(deps.RentalPeriods, logg))
			r.Get("/{id}", controllers.GetRentalPeriod(deps.RentalPeriods, logg))
			r.Put("/{id}", controllers.UpdateRentalPeriod(deps.RentalPeriods, logg))
			r.Delete("/{id}", controllers.DeleteRentalPeriod(deps.RentalPeriods, logg))
		})

		r.Route("/attributes", func(r chi.Router) {
			r.Get("/", controllers.ListAttributes(deps.Attributes, logg))
			r.Post("/", controllers.CreateAttribute(deps.Attributes, logg))
			r.Put("/{id}", controllers.UpdateAttribute(deps.Attributes, logg))
			r.Delete("/{id}", controllers.DeleteAttribute(deps.Attributes, logg))
		})

		r.Route("/attribute-values", func(r chi.Router) {
			r.Get("/", controllers.ListAttributeValues(deps.Attributes, logg))
			r.Post("/", controllers.CreateAttributeValue(deps.Attributes, logg))
			r.Put("/{id}", controllers.UpdateAttributeValue(deps.Attributes, logg))
			r.Delete("/{id}", controllers.DeleteAttributeValue(deps.Attributes, logg))
		})
	})

	return r
}
