// Package pricing computes delivery fees, tax and totals. It is pure: no
// state, no rounding. Callers format for display.
package pricing

import (
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// FreeDeliveryThreshold is the subtotal at which delivery becomes free. It is
// distinct from the delivery minimum, which only drives the "add more" banner.
var FreeDeliveryThreshold = money.MustParse("30.00")

// Breakdown is the priced summary of a subtotal.
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// DeliveryFee charges the configured fee on deliveries under the free threshold.
func DeliveryFee(orderType enums.OrderType, subtotal decimal.Decimal, cfg restaurant.Config) decimal.Decimal {
	if orderType != enums.OrderTypeDelivery {
		return decimal.Zero
	}
	if subtotal.LessThan(FreeDeliveryThreshold) {
		return cfg.Delivery.Fee
	}
	return decimal.Zero
}

// Tax applies the configured rate to subtotal plus fee.
func Tax(subtotal, fee decimal.Decimal, cfg restaurant.Config) decimal.Decimal {
	return subtotal.Add(fee).Mul(cfg.TaxRate)
}

func Total(subtotal, fee, tax decimal.Decimal) decimal.Decimal {
	return money.Sum(subtotal, fee, tax)
}

// Quote bundles fee, tax and total for a subtotal.
func Quote(orderType enums.OrderType, subtotal decimal.Decimal, cfg restaurant.Config) Breakdown {
	fee := DeliveryFee(orderType, subtotal, cfg)
	tax := Tax(subtotal, fee, cfg)
	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       Total(subtotal, fee, tax),
	}
}

// FreeDeliveryShortfall is how much more a delivery order needs to reach the
// configured minimum. Zero for pickup or once the minimum is met.
func FreeDeliveryShortfall(orderType enums.OrderType, subtotal decimal.Decimal, cfg restaurant.Config) decimal.Decimal {
	if orderType != enums.OrderTypeDelivery {
		return decimal.Zero
	}
	if subtotal.LessThan(cfg.Delivery.Minimum) {
		return cfg.Delivery.Minimum.Sub(subtotal)
	}
	return decimal.Zero
}
