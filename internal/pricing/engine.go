package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/pkg/enums"
)

// Line is the minimal view of a cart line the engine prices.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Engine computes line, subtotal and grand totals. It is pure: no state
// beyond the configured flat delivery fee, no error conditions.
type Engine struct {
	deliveryFee decimal.Decimal
}

// NewEngine builds an engine charging the given flat fee on delivered orders.
func NewEngine(deliveryFee decimal.Decimal) Engine {
	return Engine{deliveryFee: deliveryFee}
}

// DeliveryFee returns the configured flat fee.
func (e Engine) DeliveryFee() decimal.Decimal {
	return e.deliveryFee
}

// LineTotal is unit price times quantity.
func (e Engine) LineTotal(line Line) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Subtotal sums the line totals. An empty cart yields zero.
func (e Engine) Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(e.LineTotal(line))
	}
	return sum
}

// Total adds the flat delivery fee exactly once when the method is delivery.
func (e Engine) Total(lines []Line, method enums.DeliveryMethod) decimal.Decimal {
	total := e.Subtotal(lines)
	if method == enums.DeliveryMethodDelivery {
		total = total.Add(e.deliveryFee)
	}
	return total
}
