package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/pkg/enums"
)

func TestLineTotal(t *testing.T) {
	engine := NewEngine(decimal.NewFromInt(7))
	line := Line{UnitPrice: decimal.NewFromInt(200), Quantity: 2}
	if got := engine.LineTotal(line); !got.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected 400, got %s", got)
	}
}

func TestSubtotalIsAdditive(t *testing.T) {
	engine := NewEngine(decimal.NewFromInt(7))
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(200), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(230), Quantity: 1},
		{UnitPrice: decimal.RequireFromString("12.50"), Quantity: 4},
	}
	want := decimal.RequireFromString("680")
	if got := engine.Subtotal(lines); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSubtotalEmptyCartIsZero(t *testing.T) {
	engine := NewEngine(decimal.NewFromInt(7))
	if got := engine.Subtotal(nil); !got.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", got)
	}
}

func TestTotalAddsFeeOnceForDelivery(t *testing.T) {
	engine := NewEngine(decimal.NewFromInt(7))
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(230), Quantity: 1},
	}

	if got := engine.Total(lines, enums.DeliveryMethodDelivery); !got.Equal(decimal.NewFromInt(237)) {
		t.Fatalf("expected 237 with delivery fee, got %s", got)
	}
	if got := engine.Total(lines, enums.DeliveryMethodPickup); !got.Equal(decimal.NewFromInt(230)) {
		t.Fatalf("expected 230 for pickup, got %s", got)
	}
}

func TestTotalEmptyCart(t *testing.T) {
	engine := NewEngine(decimal.NewFromInt(7))
	if got := engine.Total(nil, enums.DeliveryMethodPickup); !got.IsZero() {
		t.Fatalf("expected 0 for empty pickup cart, got %s", got)
	}
	if got := engine.Total(nil, enums.DeliveryMethodDelivery); !got.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected bare fee for empty delivery cart, got %s", got)
	}
}
