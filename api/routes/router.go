package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jhonvillanueva44/mammapizza-api/api/controllers"
	"github.com/jhonvillanueva44/mammapizza-api/api/middleware"
	adminsvc "github.com/jhonvillanueva44/mammapizza-api/internal/admin"
	"github.com/jhonvillanueva44/mammapizza-api/internal/catalog"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/config"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/metrics"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/redis"
)

type adminAuthService interface {
	controllers.AdminAuthService
	middleware.SessionVerifier
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	catalogClient *catalog.Client,
	cartService controllers.CartService,
	checkoutService controllers.CheckoutService,
	adminAuth adminAuthService,
	adminService *adminsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Metrics(httpMetrics))

		// Storefront: every route runs under the anonymous cart session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart, logg))

			r.Route("/menu", func(r chi.Router) {
				r.Get("/promociones", controllers.MenuPromotions(catalogClient, logg))
				r.Get("/{seccion}", controllers.MenuSection(catalogClient, logg))
				r.Get("/{seccion}/{productoId}/opciones", controllers.ProductOptions(catalogClient, logg))
				r.Post("/{seccion}/{productoId}/cotizar", controllers.ProductQuote(catalogClient, logg))
			})

			r.Route("/carrito", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Get("/count", controllers.CartCount(cartService, logg))
				r.Post("/items", controllers.CartAdd(cartService, logg))
				r.Post("/aumentar", controllers.CartIncrease(cartService, logg))
				r.Post("/disminuir", controllers.CartDecrease(cartService, logg))
				r.Post("/eliminar", controllers.CartRemoveGroup(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
			})

			r.Post("/pedido", controllers.Checkout(checkoutService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", controllers.AdminLogin(adminAuth, cfg.Admin, logg))
			r.Post("/logout", controllers.AdminLogout(adminAuth, cfg.Admin, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminGuard(cfg.Admin, adminAuth, logg))

				r.Get("/session", controllers.AdminSession())
				r.Get("/estadisticas", controllers.AdminStats(adminService, logg))

				r.Route("/categorias", func(r chi.Router) {
					r.Get("/", controllers.AdminListCategories(adminService, logg))
					r.Post("/", controllers.AdminCreateCategory(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdateCategory(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeleteCategory(adminService, logg))
				})

				r.Route("/tamanios", func(r chi.Router) {
					r.Get("/", controllers.AdminListSizes(adminService, logg))
					r.Post("/", controllers.AdminCreateSize(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdateSize(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeleteSize(adminService, logg))
				})

				r.Route("/sabores", func(r chi.Router) {
					r.Get("/", controllers.AdminListFlavors(adminService, logg))
					r.Post("/", controllers.AdminCreateFlavor(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdateFlavor(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeleteFlavor(adminService, logg))
				})

				r.Route("/tamaniosabor", func(r chi.Router) {
					r.Get("/", controllers.AdminListPrices(adminService, logg))
					r.Post("/", controllers.AdminCreatePrice(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdatePrice(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeletePrice(adminService, logg))
				})

				r.Route("/productos", func(r chi.Router) {
					r.Get("/", controllers.AdminListProducts(adminService, logg))
					r.Post("/", controllers.AdminCreateProduct(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdateProduct(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeleteProduct(adminService, logg))
				})

				r.Route("/promociones", func(r chi.Router) {
					r.Get("/", controllers.AdminListPromotions(adminService, logg))
					r.Post("/", controllers.AdminCreateProduct(adminService, logg))
					r.Put("/{id}", controllers.AdminUpdateProduct(adminService, logg))
					r.Delete("/{id}", controllers.AdminDeletePromotion(adminService, logg))
				})
			})
		})
	})

	return r
}
