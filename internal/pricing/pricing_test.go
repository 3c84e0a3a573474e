package pricing

import (
	"testing"

	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
)

func TestDeliveryFee(t *testing.T) {
	cfg := restaurant.Default()
	cases := []struct {
		name      string
		orderType enums.OrderType
		subtotal  string
		want      string
	}{
		{name: "small delivery pays fee", orderType: enums.OrderTypeDelivery, subtotal: "10", want: "2.99"},
		{name: "just under threshold", orderType: enums.OrderTypeDelivery, subtotal: "29.99", want: "2.99"},
		{name: "threshold is free", orderType: enums.OrderTypeDelivery, subtotal: "30", want: "0"},
		{name: "large delivery is free", orderType: enums.OrderTypeDelivery, subtotal: "35", want: "0"},
		{name: "pickup never pays", orderType: enums.OrderTypePickup, subtotal: "10", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeliveryFee(tc.orderType, money.MustParse(tc.subtotal), cfg)
			if !got.Equal(money.MustParse(tc.want)) {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestTaxAndTotalAtFullPrecision(t *testing.T) {
	cfg := restaurant.Default()
	subtotal := money.MustParse("20")
	fee := money.MustParse("2.99")

	tax := Tax(subtotal, fee, cfg)
	if !tax.Equal(money.MustParse("1.8392")) {
		t.Fatalf("expected tax 1.8392 got %s", tax)
	}
	total := Total(subtotal, fee, tax)
	if !total.Equal(money.MustParse("24.8292")) {
		t.Fatalf("expected total 24.8292 got %s", total)
	}
}

func TestQuote(t *testing.T) {
	cfg := restaurant.Default()
	b := Quote(enums.OrderTypePickup, money.MustParse("39.96"), cfg)
	if !b.DeliveryFee.IsZero() {
		t.Fatalf("pickup fee should be zero, got %s", b.DeliveryFee)
	}
	if !b.Tax.Equal(money.MustParse("3.1968")) {
		t.Fatalf("unexpected tax %s", b.Tax)
	}
	if !b.Total.Equal(money.MustParse("43.1568")) {
		t.Fatalf("unexpected total %s", b.Total)
	}
}

func TestFreeDeliveryShortfall(t *testing.T) {
	cfg := restaurant.Default()
	if got := FreeDeliveryShortfall(enums.OrderTypeDelivery, money.MustParse("10"), cfg); !got.Equal(money.MustParse("5")) {
		t.Fatalf("expected shortfall 5, got %s", got)
	}
	if got := FreeDeliveryShortfall(enums.OrderTypeDelivery, money.MustParse("20"), cfg); !got.IsZero() {
		t.Fatalf("expected no shortfall above minimum, got %s", got)
	}
	if got := FreeDeliveryShortfall(enums.OrderTypePickup, money.MustParse("1"), cfg); !got.IsZero() {
		t.Fatalf("pickup has no shortfall, got %s", got)
	}
}
