package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/friendsofall-backend/api/controllers"
	analyticscontrollers "github.com/angelmondragon/friendsofall-backend/api/controllers/analytics"
	cartcontrollers "github.com/angelmondragon/friendsofall-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/friendsofall-backend/api/controllers/orders"
	"github.com/angelmondragon/friendsofall-backend/api/middleware"
	"github.com/angelmondragon/friendsofall-backend/internal/analytics"
	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/friendsofall-backend/internal/checkout"
	"github.com/angelmondragon/friendsofall-backend/internal/feedback"
	"github.com/angelmondragon/friendsofall-backend/internal/orders"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storePinger controllers.Pinger,
	gatherer prometheus.Gatherer,
	restaurantCfg restaurant.Config,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
	analyticsService analytics.Service,
	feedbackService feedback.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePinger))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/restaurant", controllers.RestaurantInfo(restaurantCfg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(catalogService, logg))
			r.Get("/{itemId}", controllers.MenuGet(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Get(cartService, logg))
			r.Delete("/", cartcontrollers.Clear(cartService, logg))
			r.Post("/lines", cartcontrollers.AddLine(cartService, catalogService, logg))
			r.Patch("/lines/{lineId}", cartcontrollers.UpdateLine(cartService, logg))
			r.Put("/lines/{lineId}/quantity", cartcontrollers.SetQuantity(cartService, logg))
			r.Delete("/lines/{lineId}", cartcontrollers.RemoveLine(cartService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(checkoutService, logg))
			r.Post("/", controllers.CheckoutPlace(checkoutService, logg))
		})

		r.Route("/orders/{orderId}", func(r chi.Router) {
			r.Get("/", ordercontrollers.Detail(ordersService, logg))
			r.Get("/qr", ordercontrollers.QRCode(ordersService, logg))
		})

		r.Post("/feedback", controllers.FeedbackSubmit(feedbackService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminToggle(cfg.FeatureFlags.AdminDashboard, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.AdminList(ordersService, logg))
			r.Post("/{orderId}/status", ordercontrollers.AdminUpdateStatus(ordersService, logg))
		})

		r.Route("/menu", func(r chi.Router) {
			r.Post("/", controllers.AdminMenuCreate(catalogService, logg))
			r.Patch("/{itemId}", controllers.AdminMenuUpdate(catalogService, logg))
			r.Delete("/{itemId}", controllers.AdminMenuDelete(catalogService, logg))
			r.Post("/{itemId}/image", controllers.AdminMenuImage(catalogService, logg))
		})

		r.Get("/analytics", analyticscontrollers.Summary(analyticsService, logg))
		r.Get("/feedback", controllers.AdminFeedbackList(feedbackService))
	})

	return r
}
