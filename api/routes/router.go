package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sobnin/sobnin-backend/api/controllers"
	"github.com/sobnin/sobnin-backend/api/middleware"
	"github.com/sobnin/sobnin-backend/api/pages"
	cartsvc "github.com/sobnin/sobnin-backend/internal/cart"
	catalogsvc "github.com/sobnin/sobnin-backend/internal/catalog"
	checkoutsvc "github.com/sobnin/sobnin-backend/internal/checkout"
	mediasvc "github.com/sobnin/sobnin-backend/internal/media"
	orderssvc "github.com/sobnin/sobnin-backend/internal/orders"
	staffsvc "github.com/sobnin/sobnin-backend/internal/staff"
	"github.com/sobnin/sobnin-backend/pkg/config"
	"github.com/sobnin/sobnin-backend/pkg/db"
	"github.com/sobnin/sobnin-backend/pkg/logger"
	"github.com/sobnin/sobnin-backend/pkg/metrics"
	"github.com/sobnin/sobnin-backend/pkg/redis"
)

// NewRouter wires every surface: storefront pages, the public cart/order
// API, the staff back office, and operational endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	renderer *pages.Renderer,
	catalogService catalogsvc.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService orderssvc.Service,
	staffService staffsvc.Service,
	mediaService mediasvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	readyHandler := controllers.HealthReady(cfg, dbClient, nil, logg)
	if redisClient != nil {
		readyHandler = controllers.HealthReady(cfg, dbClient, redisClient, logg)
	}

	orderPolicy := middleware.NewOrderRateLimitPolicy("orders", cfg.OrderLimit.Window, cfg.OrderLimit.IPLimit)
	orderLimiter := middleware.OrderRateLimit(orderPolicy, nil, logg)
	if redisClient != nil {
		orderLimiter = middleware.OrderRateLimit(orderPolicy, redisClient, logg)
	}

	session := middleware.Session(cfg.App.IsProd(), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", readyHandler)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Storefront pages.
	r.Group(func(r chi.Router) {
		r.Use(session)
		r.Get("/", controllers.MenuPage(catalogService, cartService, renderer, logg))
		r.Get("/about/", controllers.AboutPage(renderer, logg))
		r.Get("/checkout/", controllers.CheckoutPage(cartService, renderer, logg))
		r.Get("/order/whatsapp/{item_id}/", controllers.DirectWhatsAppOrder(checkoutService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		// Public JSON API, session scoped.
		r.Group(func(r chi.Router) {
			r.Use(session)

			r.Route("/cart", func(r chi.Router) {
				r.Post("/add/", controllers.CartAdd(cartService, logg))
				r.Post("/update/", controllers.CartUpdate(cartService, logg))
				r.Post("/remove/", controllers.CartRemove(cartService, logg))
				r.Post("/clear/", controllers.CartClear(cartService, logg))
				r.Get("/content/", controllers.CartContent(cartService, renderer, logg))
			})

			r.With(orderLimiter).Post("/order/create/", controllers.CreateOrder(checkoutService, httpMetrics, logg))
		})

		// Staff back office.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth/login", controllers.StaffLogin(staffService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.StaffAuth(cfg.JWT, logg))

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", controllers.AdminListCategories(catalogService, logg))
					r.Post("/", controllers.AdminCreateCategory(catalogService, logg))
					r.Patch("/{id}", controllers.AdminUpdateCategory(catalogService, logg))
					r.Delete("/{id}", controllers.AdminDeleteCategory(catalogService, logg))
				})

				r.Route("/items", func(r chi.Router) {
					r.Get("/", controllers.AdminListItems(catalogService, logg))
					r.Post("/", controllers.AdminCreateItem(catalogService, logg))
					r.Patch("/{id}", controllers.AdminUpdateItem(catalogService, logg))
					r.Delete("/{id}", controllers.AdminDeleteItem(catalogService, logg))
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.AdminListOrders(ordersService, logg))
					r.Get("/{id}", controllers.AdminGetOrder(ordersService, logg))
					r.Post("/{id}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
				})

				r.Post("/media", controllers.MediaUpload(mediaService, cfg.Media, logg))
			})
		})
	})

	// Assets.
	r.Handle("/static/*", pages.StaticHandler())
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Media.Dir))))

	return r
}
