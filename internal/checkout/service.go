package checkout

import (
	"context"
	"fmt"

	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/checkout/helpers"
	"github.com/angelmondragon/friendsofall-backend/internal/orders"
	"github.com/angelmondragon/friendsofall-backend/internal/pricing"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type cartReader interface {
	Lines(ctx context.Context) []cart.Line
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, input orders.PlaceOrderInput) (orders.Order, error)
}

// Service turns the current cart into a priced order.
type Service interface {
	Quote(ctx context.Context, orderType string) (Quote, error)
	PlaceOrder(ctx context.Context, input Input) (orders.Order, error)
}

// Quote is the checkout summary shown before the customer confirms.
type Quote struct {
	pricing.Breakdown
	OrderType             string          `json:"order_type"`
	FreeDeliveryShortfall decimal.Decimal `json:"free_delivery_shortfall"`
	ItemCount             int             `json:"item_count"`
}

// Input is the customer form. Blank order type means delivery and blank
// payment method means cash.
type Input struct {
	Customer      orders.Customer
	OrderType     string
	PaymentMethod string
}

type service struct {
	cart   cartReader
	orders orderPlacer
	cfg    restaurant.Config
	logg   *logger.Logger
}

// NewService wires checkout to the cart and the ledger.
func NewService(cartSvc cartReader, ordersSvc orderPlacer, cfg restaurant.Config, logg *logger.Logger) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{cart: cartSvc, orders: ordersSvc, cfg: cfg, logg: logg}, nil
}

func (s *service) Quote(ctx context.Context, rawOrderType string) (Quote, error) {
	orderType, err := helpers.ResolveOrderType(rawOrderType)
	if err != nil {
		return Quote{}, err
	}
	lines := s.cart.Lines(ctx)
	subtotal := cart.SubtotalOf(lines)
	return Quote{
		Breakdown:             pricing.Quote(orderType, subtotal, s.cfg),
		OrderType:             orderType.String(),
		FreeDeliveryShortfall: pricing.FreeDeliveryShortfall(orderType, subtotal, s.cfg),
		ItemCount:             len(lines),
	}, nil
}

// PlaceOrder snapshots the cart, prices it and hands it to the ledger. The
// ledger removes the snapshotted lines from the cart on success.
func (s *service) PlaceOrder(ctx context.Context, input Input) (orders.Order, error) {
	orderType, err := helpers.ResolveOrderType(input.OrderType)
	if err != nil {
		return orders.Order{}, err
	}
	method, err := helpers.ResolvePaymentMethod(input.PaymentMethod)
	if err != nil {
		return orders.Order{}, err
	}

	lines := s.cart.Lines(ctx)
	breakdown := pricing.Quote(orderType, cart.SubtotalOf(lines), s.cfg)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"order_type": orderType, "lines": len(lines)}), "checkout submitted")

	return s.orders.PlaceOrder(ctx, orders.PlaceOrderInput{
		Customer:      input.Customer,
		OrderType:     orderType,
		PaymentMethod: method,
		Lines:         lines,
		Breakdown:     breakdown,
	})
}
