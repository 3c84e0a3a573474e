package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/pricing"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/metrics"
)

// Service owns the order ledger.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Order, error)
	ListByStatus(ctx context.Context, status enums.OrderStatus) []Order
	ListAll(ctx context.Context) []Order
	Get(ctx context.Context, id int64) (Order, error)
	QRCode(ctx context.Context, id int64) ([]byte, error)
	Subscribe(fn func([]Order)) func()
}

type service struct {
	slot    *kvstore.Slot[[]Order]
	pruner  CartPruner
	cfg     restaurant.Config
	ids     ids.Generator
	clock   ids.Clock
	policy  TransitionPolicy
	qr      QRGenerator
	logg    *logger.Logger
	metrics *metrics.StoreMetrics

	mu sync.Mutex
}

// NewService wires the ledger. A nil policy means Unconstrained, a nil clock
// means time.Now and a nil QR generator encodes with the restaurant name.
func NewService(
	slot *kvstore.Slot[[]Order],
	pruner CartPruner,
	cfg restaurant.Config,
	idGen ids.Generator,
	clock ids.Clock,
	policy TransitionPolicy,
	qr QRGenerator,
	logg *logger.Logger,
	m *metrics.StoreMetrics,
) (Service, error) {
	if slot == nil {
		return nil, fmt.Errorf("orders slot required")
	}
	if pruner == nil {
		return nil, fmt.Errorf("cart pruner required")
	}
	if idGen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if clock == nil {
		clock = time.Now
	}
	if policy == nil {
		policy = Unconstrained{}
	}
	if qr == nil {
		qr = DefaultQRGenerator{Restaurant: cfg.Name}
	}
	return &service{
		slot:    slot,
		pruner:  pruner,
		cfg:     cfg,
		ids:     idGen,
		clock:   clock,
		policy:  policy,
		qr:      qr,
		logg:    logg,
		metrics: m,
	}, nil
}

// PlaceOrder validates the input, appends the order with status pending and
// then removes the ordered lines from the cart. Nothing is written when
// validation fails.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (Order, error) {
	customer := normalizeCustomer(input.Customer)
	if details := validatePlacement(customer, input); len(details) > 0 {
		s.metrics.IncCheckoutRejection(rejectionReason(details))
		s.logg.Warn(s.logg.WithField(ctx, "fields", details), "order rejected")
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").WithDetails(details)
	}

	now := s.clock().UTC()
	order := Order{
		ID:            s.ids.Next(),
		Customer:      customer,
		OrderType:     input.OrderType,
		PaymentMethod: input.PaymentMethod,
		Items:         append([]cart.Line(nil), input.Lines...),
		Subtotal:      input.Breakdown.Subtotal,
		DeliveryFee:   input.Breakdown.DeliveryFee,
		Tax:           input.Breakdown.Tax,
		Total:         pricing.Total(input.Breakdown.Subtotal, input.Breakdown.DeliveryFee, input.Breakdown.Tax),
		Status:        enums.OrderStatusPending,
		PlacedAt:      now,
		EstimatedTime: s.cfg.Delivery.Time,
	}

	s.mu.Lock()
	_, _ = s.slot.Update(ctx, func(current []Order) ([]Order, error) {
		return append(cloneOrders(current), cloneOrder(order)), nil
	})
	s.mu.Unlock()

	s.pruner.RemoveLines(ctx, lineIDs(order.Items))
	s.metrics.IncOrderPlaced(order.OrderType.String())

	ctx = s.logg.WithOrderID(ctx, order.ID)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_type": order.OrderType,
		"total":      order.Total.String(),
		"lines":      len(order.Items),
	}), "order placed")
	return order, nil
}

// UpdateStatus moves an order to status and stamps last_updated.
func (s *service) UpdateStatus(ctx context.Context, id int64, raw string) (Order, error) {
	status, err := enums.ParseOrderStatus(strings.TrimSpace(raw))
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
			WithDetails(map[string]string{"status": "must be one of pending, confirmed, preparing, ready, delivered, cancelled"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated Order
	_, err = s.slot.Update(ctx, func(current []Order) ([]Order, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if !s.policy.Allow(current[idx].Status, status) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition").
				WithDetails(map[string]string{"from": current[idx].Status.String(), "to": status.String()})
		}
		next := cloneOrders(current)
		stamp := s.clock().UTC()
		next[idx].Status = status
		next[idx].LastUpdated = &stamp
		updated = cloneOrder(next[idx])
		return next, nil
	})
	if err != nil {
		return Order{}, err
	}

	s.metrics.IncStatusUpdate(status.String())
	s.logg.Info(s.logg.WithField(s.logg.WithOrderID(ctx, id), "status", status), "order status updated")
	return updated, nil
}

func (s *service) ListByStatus(_ context.Context, status enums.OrderStatus) []Order {
	current := s.slot.Get()
	out := make([]Order, 0, len(current))
	for _, order := range current {
		if order.Status == status {
			out = append(out, cloneOrder(order))
		}
	}
	return out
}

func (s *service) ListAll(_ context.Context) []Order {
	return cloneOrders(s.slot.Get())
}

func (s *service) Get(_ context.Context, id int64) (Order, error) {
	current := s.slot.Get()
	idx := indexOf(current, id)
	if idx < 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return cloneOrder(current[idx]), nil
}

// QRCode renders the confirmation code for an existing order.
func (s *service) QRCode(ctx context.Context, id int64) ([]byte, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate qr code")
	}
	return png, nil
}

func (s *service) Subscribe(fn func([]Order)) func() {
	return s.slot.Subscribe(func(current []Order) { fn(cloneOrders(current)) })
}

func lineIDs(lines []cart.Line) []int64 {
	out := make([]int64, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.ID)
	}
	return out
}

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:                 strings.TrimSpace(c.Name),
		Phone:                strings.TrimSpace(c.Phone),
		Email:                strings.TrimSpace(c.Email),
		Address:              strings.TrimSpace(c.Address),
		DeliveryInstructions: strings.TrimSpace(c.DeliveryInstructions),
	}
}

func validatePlacement(customer Customer, input PlaceOrderInput) map[string]string {
	details := map[string]string{}
	if customer.Name == "" {
		details["name"] = "name is required"
	}
	if customer.Phone == "" {
		details["phone"] = "phone is required"
	}
	if !input.OrderType.IsValid() {
		details["order_type"] = "must be delivery or pickup"
	} else if input.OrderType == enums.OrderTypeDelivery && customer.Address == "" {
		details["address"] = "address is required for delivery"
	}
	if !input.PaymentMethod.IsValid() {
		details["payment_method"] = "must be cash or card"
	}
	if len(input.Lines) == 0 {
		details["items"] = "cart is empty"
	} else if !cart.SubtotalOf(input.Lines).Equal(input.Breakdown.Subtotal) {
		details["subtotal"] = "subtotal does not match items"
	}
	return details
}

// rejectionReason picks one label per rejection so the metric stays low-cardinality.
func rejectionReason(details map[string]string) string {
	for _, field := range []string{"items", "subtotal", "name", "phone", "address", "order_type", "payment_method"} {
		if _, ok := details[field]; ok {
			return field
		}
	}
	return "other"
}

func indexOf(orders []Order, id int64) int {
	for i, order := range orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}
