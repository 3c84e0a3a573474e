package orders

import (
	"time"

	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/pricing"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

// SeedOrders returns the single historical order shown on a fresh install,
// placed thirty minutes before now.
func SeedOrders(now time.Time, cfg restaurant.Config) []Order {
	burger := money.MustParse("14.99")
	fries := money.MustParse("4.99")
	lines := []cart.Line{
		{ID: 1, MenuItemID: 4, Name: "Classic Burger", Price: burger, Quantity: 2, Total: money.MustParse("29.98")},
		{ID: 2, MenuItemID: 8, Name: "French Fries", Price: fries, Quantity: 2, Total: money.MustParse("9.98")},
	}
	breakdown := pricing.Quote(enums.OrderTypePickup, cart.SubtotalOf(lines), cfg)
	return []Order{
		{
			ID: 1,
			Customer: Customer{
				Name:  "John Smith",
				Phone: "(555) 123-4567",
				Email: "john@example.com",
			},
			OrderType:     enums.OrderTypePickup,
			PaymentMethod: enums.PaymentMethodCash,
			Items:         lines,
			Subtotal:      breakdown.Subtotal,
			DeliveryFee:   breakdown.DeliveryFee,
			Tax:           breakdown.Tax,
			Total:         breakdown.Total,
			Status:        enums.OrderStatusPreparing,
			PlacedAt:      now.Add(-30 * time.Minute).UTC(),
			EstimatedTime: cfg.Delivery.Time,
		},
	}
}
