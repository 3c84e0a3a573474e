// Package app assembles the ordering services over a store medium.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/friendsofall-backend/api/routes"
	"github.com/angelmondragon/friendsofall-backend/internal/analytics"
	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	"github.com/angelmondragon/friendsofall-backend/internal/checkout"
	"github.com/angelmondragon/friendsofall-backend/internal/feedback"
	"github.com/angelmondragon/friendsofall-backend/internal/orders"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/metrics"
)

type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Medium   kvstore.Medium
	Pinger   interface{ Ping(context.Context) error }
	Registry *prometheus.Registry
	Clock    ids.Clock
}

// App holds the loaded services. Build it once per process.
type App struct {
	cfg      *config.Config
	logg     *logger.Logger
	pinger   interface{ Ping(context.Context) error }
	registry *prometheus.Registry

	Restaurant restaurant.Config
	Catalog    catalog.Service
	Cart       cart.Service
	Orders     orders.Service
	Checkout   checkout.Service
	Analytics  analytics.Service
	Feedback   feedback.Service
}

// New loads every store slot and wires the services on top of them.
func New(ctx context.Context, params Params) (*App, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.Medium == nil {
		return nil, errors.New("store medium is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	var reg prometheus.Registerer
	if params.Registry != nil {
		reg = params.Registry
	}

	logg := params.Logger
	m := metrics.NewStoreMetrics(reg)
	idGen := ids.NewTimeGenerator(clock)
	restaurantCfg := restaurant.Default()
	startedAt := clock()

	menuSlot := kvstore.NewSlot(kvstore.KeyMenu, params.Medium, catalog.SeedMenu, logg, m)
	cartSlot := kvstore.NewSlot(kvstore.KeyCart, params.Medium, func() []cart.Line { return []cart.Line{} }, logg, m)
	orderSlot := kvstore.NewSlot(kvstore.KeyOrders, params.Medium, func() []orders.Order {
		return orders.SeedOrders(startedAt, restaurantCfg)
	}, logg, m)
	feedbackSlot := kvstore.NewSlot(kvstore.KeyFeedback, params.Medium, func() []feedback.Feedback { return []feedback.Feedback{} }, logg, m)

	for _, load := range []func(context.Context) error{menuSlot.Load, cartSlot.Load, orderSlot.Load, feedbackSlot.Load} {
		if err := load(ctx); err != nil {
			return nil, err
		}
	}

	catalogSvc, err := catalog.NewService(menuSlot, idGen, logg)
	if err != nil {
		return nil, fmt.Errorf("catalog service: %w", err)
	}
	cartSvc, err := cart.NewService(cartSlot, idGen, logg, m)
	if err != nil {
		return nil, fmt.Errorf("cart service: %w", err)
	}
	ordersSvc, err := orders.NewService(
		orderSlot,
		cartSvc,
		restaurantCfg,
		idGen,
		clock,
		orders.PolicyFor(params.Config.FeatureFlags.StrictOrderTransitions),
		orders.DefaultQRGenerator{Restaurant: restaurantCfg.Name},
		logg,
		m,
	)
	if err != nil {
		return nil, fmt.Errorf("orders service: %w", err)
	}
	checkoutSvc, err := checkout.NewService(cartSvc, ordersSvc, restaurantCfg, logg)
	if err != nil {
		return nil, fmt.Errorf("checkout service: %w", err)
	}
	analyticsSvc, err := analytics.NewService(catalogSvc, ordersSvc, logg)
	if err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	feedbackSvc, err := feedback.NewService(feedbackSlot, idGen, clock, logg)
	if err != nil {
		return nil, fmt.Errorf("feedback service: %w", err)
	}

	return &App{
		cfg:        params.Config,
		logg:       logg,
		pinger:     params.Pinger,
		registry:   params.Registry,
		Restaurant: restaurantCfg,
		Catalog:    catalogSvc,
		Cart:       cartSvc,
		Orders:     ordersSvc,
		Checkout:   checkoutSvc,
		Analytics:  analyticsSvc,
		Feedback:   feedbackSvc,
	}, nil
}

// Handler returns the HTTP boundary over the loaded services.
func (a *App) Handler() http.Handler {
	var gatherer prometheus.Gatherer
	if a.registry != nil {
		gatherer = a.registry
	}
	return routes.NewRouter(
		a.cfg,
		a.logg,
		a.pinger,
		gatherer,
		a.Restaurant,
		a.Catalog,
		a.Cart,
		a.Checkout,
		a.Orders,
		a.Analytics,
		a.Feedback,
	)
}

// Close detaches derived views from the store subscriptions.
func (a *App) Close() {
	a.Analytics.Close()
}
