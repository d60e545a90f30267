package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonthread/storefront-backend/api/controllers"
	"github.com/maisonthread/storefront-backend/api/middleware"
	"github.com/maisonthread/storefront-backend/internal/auth"
	"github.com/maisonthread/storefront-backend/internal/cart"
	"github.com/maisonthread/storefront-backend/internal/catalog"
	checkoutsvc "github.com/maisonthread/storefront-backend/internal/checkout"
	"github.com/maisonthread/storefront-backend/internal/orders"
	"github.com/maisonthread/storefront-backend/internal/users"
	"github.com/maisonthread/storefront-backend/pkg/auth/session"
	"github.com/maisonthread/storefront-backend/pkg/config"
	"github.com/maisonthread/storefront-backend/pkg/db"
	"github.com/maisonthread/storefront-backend/pkg/logger"
	"github.com/maisonthread/storefront-backend/pkg/metrics"
	"github.com/maisonthread/storefront-backend/pkg/redis"
)

// Services bundles the application services the router exposes.
type Services struct {
	Auth     auth.Service
	Register auth.RegisterService
	Users    users.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(dbP, redisClient)))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Catalog, logg))
		r.Get("/featured", controllers.ProductFeatured(svcs.Catalog, logg))
		r.Get("/{slug}", controllers.ProductBySlug(svcs.Catalog, logg))
	})
	r.Get("/api/v1/categories", controllers.CategoryList(svcs.Catalog, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(svcs.Register, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).
			Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.ProfileFetch(svcs.Users, logg))
			r.Delete("/", controllers.ProfileDeactivate(svcs.Users, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{itemId}", controllers.CartSetQuantity(svcs.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{orderRef}", controllers.OrderFetch(svcs.Orders, logg))
		})

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Post("/", controllers.ProductCreate(svcs.Catalog, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(svcs.Catalog, logg))
		})
	})

	return r
}

func readinessDeps(dbP db.Pinger, redisClient *redis.Client) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if dbP != nil {
		deps["postgres"] = dbP
	}
	if redisClient != nil {
		deps["redis"] = redisClient
	}
	return deps
}
