package orders

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/pricing"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

var fixedNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

type stubPruner struct {
	calls   int
	removed []int64
}

func (s *stubPruner) RemoveLines(_ context.Context, lineIDs []int64) int {
	s.calls++
	s.removed = append(s.removed, lineIDs...)
	return len(lineIDs)
}

type stubQR struct {
	last Order
}

func (s *stubQR) Generate(order Order) ([]byte, error) {
	s.last = order
	return []byte("png"), nil
}

func newTestService(t *testing.T, policy TransitionPolicy, qr QRGenerator) (Service, *stubPruner) {
	t.Helper()
	cfg := restaurant.Default()
	slot := kvstore.NewSlot(kvstore.KeyOrders, kvstore.NewMemoryMedium(), func() []Order {
		return SeedOrders(fixedNow, cfg)
	}, nil, nil)
	if err := slot.Load(context.Background()); err != nil {
		t.Fatalf("load orders: %v", err)
	}
	pruner := &stubPruner{}
	clock := func() time.Time { return fixedNow }
	svc, err := NewService(slot, pruner, cfg, ids.NewSequence(100), clock, policy, qr, logger.Nop(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, pruner
}

func sampleLines() []cart.Line {
	return []cart.Line{
		{ID: 10, MenuItemID: 4, Name: "Classic Burger", Price: money.MustParse("14.99"), Quantity: 2, Total: money.MustParse("29.98")},
		{ID: 11, MenuItemID: 8, Name: "French Fries", Price: money.MustParse("4.99"), Quantity: 2, Total: money.MustParse("9.98")},
	}
}

func sampleInput(orderType enums.OrderType) PlaceOrderInput {
	lines := sampleLines()
	return PlaceOrderInput{
		Customer:      Customer{Name: "Ada", Phone: "555-0100", Address: "1 Loop Rd"},
		OrderType:     orderType,
		PaymentMethod: enums.PaymentMethodCash,
		Lines:         lines,
		Breakdown:     pricing.Quote(orderType, cart.SubtotalOf(lines), restaurant.Default()),
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, &stubPruner{}, restaurant.Default(), ids.NewSequence(1), nil, nil, nil, logger.Nop(), nil); err == nil {
		t.Fatal("expected error for nil slot")
	}
}

func TestSeedOrder(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	all := svc.ListAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected one seeded order, got %d", len(all))
	}
	seed := all[0]
	if seed.Customer.Name != "John Smith" || seed.Status != enums.OrderStatusPreparing {
		t.Fatalf("unexpected seed order %+v", seed)
	}
	if !seed.PlacedAt.Equal(fixedNow.Add(-30 * time.Minute)) {
		t.Fatalf("seed placed at %s", seed.PlacedAt)
	}
	if !seed.Total.Equal(money.MustParse("43.1568")) {
		t.Fatalf("seed total %s", seed.Total)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc, pruner := newTestService(t, nil, nil)
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, sampleInput(enums.OrderTypePickup))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if !order.Total.Equal(money.MustParse("43.1568")) {
		t.Fatalf("expected total 43.1568, got %s", order.Total)
	}
	if order.EstimatedTime != restaurant.EstimatedTime {
		t.Fatalf("unexpected estimated time %q", order.EstimatedTime)
	}
	if !order.PlacedAt.Equal(fixedNow) {
		t.Fatalf("unexpected placed_at %s", order.PlacedAt)
	}
	if pruner.calls != 1 {
		t.Fatalf("expected cart to be pruned once, got %d", pruner.calls)
	}
	if len(pruner.removed) != 2 || pruner.removed[0] != 10 || pruner.removed[1] != 11 {
		t.Fatalf("expected ordered lines 10 and 11 removed, got %v", pruner.removed)
	}
	if got := svc.ListAll(ctx); len(got) != 2 || got[1].ID != order.ID {
		t.Fatalf("order not appended: %+v", got)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlaceOrderInput)
		field  string
	}{
		{"blank name", func(in *PlaceOrderInput) { in.Customer.Name = "  " }, "name"},
		{"blank phone", func(in *PlaceOrderInput) { in.Customer.Phone = "" }, "phone"},
		{"delivery without address", func(in *PlaceOrderInput) { in.Customer.Address = "" }, "address"},
		{"empty cart", func(in *PlaceOrderInput) { in.Lines = nil }, "items"},
		{"subtotal mismatch", func(in *PlaceOrderInput) { in.Breakdown.Subtotal = money.MustParse("1") }, "subtotal"},
		{"unknown payment", func(in *PlaceOrderInput) { in.PaymentMethod = "crypto" }, "payment_method"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, pruner := newTestService(t, nil, nil)
			input := sampleInput(enums.OrderTypeDelivery)
			tc.mutate(&input)

			_, err := svc.PlaceOrder(context.Background(), input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			typed := pkgerrors.As(err)
			details, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected details map, got %T", typed.Details())
			}
			if _, ok := details[tc.field]; !ok {
				t.Fatalf("expected %s in details, got %v", tc.field, details)
			}
			if pruner.calls != 0 {
				t.Fatal("cart must not be pruned on failure")
			}
			if len(svc.ListAll(context.Background())) != 1 {
				t.Fatal("ledger must be unchanged on failure")
			}
		})
	}
}

func TestReturnedOrdersDoNotShareItems(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, sampleInput(enums.OrderTypePickup))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	placed.Items[0].Price = money.MustParse("0.01")

	all := svc.ListAll(ctx)
	all[0].Items[0].Price = money.MustParse("0.01")

	byStatus := svc.ListByStatus(ctx, enums.OrderStatusPreparing)
	byStatus[0].Items[0].Quantity = 99

	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Items[0].Name = "changed"

	updated, err := svc.UpdateStatus(ctx, placed.ID, "confirmed")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	updated.Items[1].Price = money.MustParse("0.01")
	*updated.LastUpdated = time.Time{}

	var seen []Order
	unsubscribe := svc.Subscribe(func(current []Order) { seen = current })
	if _, err := svc.UpdateStatus(ctx, 1, "ready"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	unsubscribe()
	seen[0].Items[0].Price = money.MustParse("0.01")

	again := svc.ListAll(ctx)
	seed := again[0].Items[0]
	if !seed.Price.Equal(money.MustParse("14.99")) || seed.Quantity != 2 || seed.Name != "Classic Burger" {
		t.Fatalf("seed order items changed through a returned copy: %+v", seed)
	}
	for i, want := range []string{"14.99", "4.99"} {
		if !again[1].Items[i].Price.Equal(money.MustParse(want)) {
			t.Fatalf("placed order item %d price changed to %s", i, again[1].Items[i].Price)
		}
	}
	if again[1].LastUpdated == nil || !again[1].LastUpdated.Equal(fixedNow) {
		t.Fatalf("last_updated changed through a returned copy: %v", again[1].LastUpdated)
	}
}

func TestPickupDoesNotNeedAddress(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	input := sampleInput(enums.OrderTypePickup)
	input.Customer.Address = ""
	if _, err := svc.PlaceOrder(context.Background(), input); err != nil {
		t.Fatalf("pickup without address should succeed: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, 1, "delivered")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusDelivered || updated.LastUpdated == nil {
		t.Fatalf("unexpected order %+v", updated)
	}

	// unconstrained policy allows going backwards
	if _, err := svc.UpdateStatus(ctx, 1, "pending"); err != nil {
		t.Fatalf("unconstrained update: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, 999, "ready"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 1, "lost"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	pending := svc.ListByStatus(ctx, enums.OrderStatusPending)
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Fatalf("unexpected pending orders %+v", pending)
	}
}

func TestStrictTransitions(t *testing.T) {
	svc, _ := newTestService(t, StrictTransitions{}, nil)
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, 1, "pending"); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if got, _ := svc.Get(ctx, 1); got.Status != enums.OrderStatusPreparing {
		t.Fatalf("status must not change on rejected transition, got %s", got.Status)
	}
	if _, err := svc.UpdateStatus(ctx, 1, "ready"); err != nil {
		t.Fatalf("preparing -> ready: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, 1, "ready"); err != nil {
		t.Fatalf("same status should be allowed: %v", err)
	}
}

func TestStrictTransitionTable(t *testing.T) {
	policy := StrictTransitions{}
	cases := []struct {
		from, to enums.OrderStatus
		want     bool
	}{
		{enums.OrderStatusPending, enums.OrderStatusConfirmed, true},
		{enums.OrderStatusPending, enums.OrderStatusDelivered, false},
		{enums.OrderStatusReady, enums.OrderStatusDelivered, true},
		{enums.OrderStatusDelivered, enums.OrderStatusCancelled, false},
		{enums.OrderStatusCancelled, enums.OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := policy.Allow(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
	if _, ok := PolicyFor(false).(Unconstrained); !ok {
		t.Fatal("expected unconstrained policy when flag is off")
	}
}

func TestQRCode(t *testing.T) {
	qr := &stubQR{}
	svc, _ := newTestService(t, nil, qr)

	png, err := svc.QRCode(context.Background(), 1)
	if err != nil {
		t.Fatalf("qr code: %v", err)
	}
	if string(png) != "png" || qr.last.ID != 1 {
		t.Fatalf("unexpected qr call %q %+v", png, qr.last)
	}
	if _, err := svc.QRCode(context.Background(), 42); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDefaultQRGeneratorProducesPNG(t *testing.T) {
	order := SeedOrders(fixedNow, restaurant.Default())[0]
	png, err := DefaultQRGenerator{Restaurant: "Friends of All"}.Generate(order)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected png signature")
	}
}
