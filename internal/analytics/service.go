package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/friendsofall-backend/internal/analytics/types"
	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	"github.com/angelmondragon/friendsofall-backend/internal/orders"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type menuSource interface {
	List(ctx context.Context, filter catalog.ListFilter) []catalog.MenuItem
	Subscribe(fn func([]catalog.MenuItem)) func()
}

type orderSource interface {
	ListAll(ctx context.Context) []orders.Order
	Subscribe(fn func([]orders.Order)) func()
}

// Service provides the admin dashboard figures.
type Service interface {
	// Summary returns the figures as of the latest catalog or ledger change.
	Summary(ctx context.Context) types.Summary
	// Close detaches from the catalog and ledger.
	Close()
}

type service struct {
	logg *logger.Logger

	mu      sync.RWMutex
	menu    []catalog.MenuItem
	orders  []orders.Order
	summary types.Summary

	unsubscribe []func()
}

// NewService snapshots both sources and recomputes on every change they publish.
func NewService(menu menuSource, ledger orderSource, logg *logger.Logger) (Service, error) {
	if menu == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	ctx := context.Background()
	s := &service{
		logg:   logg,
		menu:   menu.List(ctx, catalog.ListFilter{}),
		orders: ledger.ListAll(ctx),
	}
	s.summary = compute(s.menu, s.orders)

	s.unsubscribe = append(s.unsubscribe,
		menu.Subscribe(func(items []catalog.MenuItem) {
			s.mu.Lock()
			s.menu = items
			s.summary = compute(s.menu, s.orders)
			s.mu.Unlock()
		}),
		ledger.Subscribe(func(placed []orders.Order) {
			s.mu.Lock()
			s.orders = placed
			s.summary = compute(s.menu, s.orders)
			s.mu.Unlock()
		}),
	)
	return s, nil
}

func (s *service) Summary(_ context.Context) types.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySummary(s.summary)
}

func (s *service) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.unsubscribe = nil
}

func compute(menu []catalog.MenuItem, placed []orders.Order) types.Summary {
	summary := types.Summary{
		TotalOrders:    len(placed),
		Revenue:        decimal.Zero,
		OrdersByStatus: make(map[enums.OrderStatus]int, len(enums.OrderStatuses())),
		MenuItems:      len(menu),
		AveragePrice:   decimal.Zero,
		Categories:     make([]types.CategoryShare, 0, len(enums.MenuCategories())),
	}
	for _, status := range enums.OrderStatuses() {
		summary.OrdersByStatus[status] = 0
	}

	for _, order := range placed {
		summary.Revenue = summary.Revenue.Add(order.Total)
		summary.OrdersByStatus[order.Status]++
		if order.Status.IsActive() {
			summary.ActiveOrders++
		}
	}

	counts := make(map[enums.MenuCategory]int, len(enums.MenuCategories()))
	priceSum := decimal.Zero
	for _, item := range menu {
		priceSum = priceSum.Add(item.Price)
		counts[item.Category]++
		if item.Available {
			summary.AvailableItems++
		}
	}
	if len(menu) > 0 {
		total := decimal.NewFromInt(int64(len(menu)))
		summary.AveragePrice = priceSum.Div(total)
		for _, category := range enums.MenuCategories() {
			count := counts[category]
			summary.Categories = append(summary.Categories, types.CategoryShare{
				Category: category,
				Count:    count,
				Percent:  decimal.NewFromInt(int64(count)).Mul(hundred).Div(total),
			})
		}
	} else {
		for _, category := range enums.MenuCategories() {
			summary.Categories = append(summary.Categories, types.CategoryShare{Category: category, Percent: decimal.Zero})
		}
	}
	return summary
}

func copySummary(in types.Summary) types.Summary {
	out := in
	out.OrdersByStatus = make(map[enums.OrderStatus]int, len(in.OrdersByStatus))
	for k, v := range in.OrdersByStatus {
		out.OrdersByStatus[k] = v
	}
	out.Categories = append([]types.CategoryShare(nil), in.Categories...)
	return out
}
