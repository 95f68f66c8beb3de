package controllers

import (
	"github.com/koussaybh/patisserie-storefront/internal/cart"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/internal/session"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
)

type deliveryView struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

type cartLineView struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id,omitempty"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type cartView struct {
	Items     []cartLineView `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  float64        `json:"subtotal"`
}

type sessionView struct {
	Token    string        `json:"token,omitempty"`
	State    string        `json:"state"`
	Delivery *deliveryView `json:"delivery,omitempty"`
	Category string        `json:"category,omitempty"`
	Cart     cartView      `json:"cart"`
}

func newCartView(engine pricing.Engine, items []cart.Item) cartView {
	lines := make([]cartLineView, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, cartLineView{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Quantity:  item.Quantity,
			LineTotal: engine.LineTotal(pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}).InexactFloat64(),
		})
		count += item.Quantity
	}
	return cartView{
		Items:     lines,
		ItemCount: count,
		Subtotal:  engine.Subtotal(cart.PricingLines(items)).InexactFloat64(),
	}
}

// newSessionView renders the session under its lock.
func newSessionView(engine pricing.Engine, sess *session.Session, includeToken bool) sessionView {
	sess.Lock()
	defer sess.Unlock()

	view := sessionView{
		State: sess.Flow.State().String(),
		Cart:  newCartView(engine, sess.Flow.Cart().Snapshot()),
	}
	if includeToken {
		view.Token = sess.Token
	}
	if sel := sess.Flow.Delivery(); sel != nil {
		view.Delivery = &deliveryView{
			Date:     sel.Date.Format("2006-01-02"),
			TimeSlot: sel.Slot.String(),
		}
	}
	view.Category = sess.Flow.Category()
	return view
}

type checkoutView struct {
	State       string  `json:"state"`
	OrderID     string  `json:"order_id,omitempty"`
	OrderStatus string  `json:"order_status,omitempty"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	TotalAmount float64 `json:"total_amount"`
}

func checkoutTotals(engine pricing.Engine, items []cart.Item, method enums.DeliveryMethod) (subtotal, fee, total float64) {
	lines := cart.PricingLines(items)
	sub := engine.Subtotal(lines)
	tot := engine.Total(lines, method)
	return sub.InexactFloat64(), tot.Sub(sub).InexactFloat64(), tot.InexactFloat64()
}
