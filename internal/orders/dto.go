package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/pricing"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Customer is the contact snapshot taken at checkout.
type Customer struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// Order is a placed order. Only Status and LastUpdated change after creation.
type Order struct {
	ID            int64               `json:"id"`
	Customer      Customer            `json:"customer"`
	OrderType     enums.OrderType     `json:"order_type"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Items         []cart.Line         `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	DeliveryFee   decimal.Decimal     `json:"delivery_fee"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	Status        enums.OrderStatus   `json:"status"`
	PlacedAt      time.Time           `json:"placed_at"`
	LastUpdated   *time.Time          `json:"last_updated"`
	EstimatedTime string              `json:"estimated_time"`
}

// PlaceOrderInput carries everything the ledger needs to accept an order.
type PlaceOrderInput struct {
	Customer      Customer
	OrderType     enums.OrderType
	PaymentMethod enums.PaymentMethod
	Lines         []cart.Line
	Breakdown     pricing.Breakdown
}

// CartPruner drops the ordered lines from the cart once an order has been
// accepted. Lines added after the snapshot stay in the cart.
type CartPruner interface {
	RemoveLines(ctx context.Context, lineIDs []int64) int
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, order := range orders {
		out[i] = cloneOrder(order)
	}
	return out
}

// cloneOrder copies the order with its own items slice and timestamp so
// callers never share storage with the ledger.
func cloneOrder(order Order) Order {
	order.Items = append([]cart.Line(nil), order.Items...)
	if order.LastUpdated != nil {
		stamp := *order.LastUpdated
		order.LastUpdated = &stamp
	}
	return order
}
