package flow

import (
	"fmt"
	"time"

	"github.com/koussaybh/patisserie-storefront/internal/cart"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

// DeliverySelection is the chosen calendar date and time slot. It is
// immutable once chosen; re-selecting replaces it wholesale.
type DeliverySelection struct {
	Date time.Time
	Slot enums.TimeSlot
}

// Controller sequences the ordering steps for one session. Exactly one state
// is active at a time; accumulated data (delivery selection, category, cart)
// survives every transition except StartOver.
type Controller struct {
	state    enums.FlowState
	delivery *DeliverySelection
	category string
	cart     *cart.Store

	// snapshot taken when the cart is confirmed; it is what checkout prices
	// and submits, immune to later cart edits.
	checkoutSnapshot []cart.Item

	windowDays int
	now        func() time.Time
}

// Option configures optional controller behavior.
type Option func(*Controller)

// WithClock overrides the time source used to validate delivery dates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController starts a flow at the delivery step with an empty cart.
func NewController(windowDays int, opts ...Option) *Controller {
	if windowDays <= 0 {
		windowDays = 6
	}
	c := &Controller{
		state:      enums.FlowStateDelivery,
		cart:       cart.NewStore(),
		windowDays: windowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the active flow state.
func (c *Controller) State() enums.FlowState {
	return c.state
}

// Delivery returns the accumulated delivery selection, nil before one is made.
func (c *Controller) Delivery() *DeliverySelection {
	if c.delivery == nil {
		return nil
	}
	sel := *c.delivery
	return &sel
}

// Category returns the chosen category id, empty before one is chosen.
func (c *Controller) Category() string {
	return c.category
}

// Cart exposes the session's cart store.
func (c *Controller) Cart() *cart.Store {
	return c.cart
}

// CheckoutSnapshot returns the cart snapshot frozen when the cart was
// confirmed. Empty outside checkout.
func (c *Controller) CheckoutSnapshot() []cart.Item {
	out := make([]cart.Item, len(c.checkoutSnapshot))
	copy(out, c.checkoutSnapshot)
	return out
}

// SelectDelivery records the date and slot and advances to category selection.
func (c *Controller) SelectDelivery(date time.Time, slot enums.TimeSlot) error {
	if c.state != enums.FlowStateDelivery {
		return c.conflict(enums.FlowStateDelivery)
	}
	if !slot.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown time slot %q", slot))
	}
	day := c.anchorDay(date)
	if !c.dateInWindow(day) {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery date is outside the selectable window").WithDetails(map[string]any{
			"window_days": c.windowDays,
		})
	}
	c.delivery = &DeliverySelection{Date: day, Slot: slot}
	c.state = enums.FlowStateCategory
	return nil
}

// SelectCategory records the category and advances to the product catalog.
func (c *Controller) SelectCategory(categoryID string) error {
	if c.state != enums.FlowStateCategory {
		return c.conflict(enums.FlowStateCategory)
	}
	if categoryID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	c.category = categoryID
	c.state = enums.FlowStateProducts
	return nil
}

// ConfirmCart freezes the cart snapshot and advances to checkout. Proceeding
// with an empty cart is rejected here, not left to the caller.
func (c *Controller) ConfirmCart() error {
	if c.state != enums.FlowStateProducts {
		return c.conflict(enums.FlowStateProducts)
	}
	if c.cart.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	c.checkoutSnapshot = c.cart.Snapshot()
	c.state = enums.FlowStateCheckout
	return nil
}

// CompleteOrder advances checkout to success. Only a successful submission
// may drive it.
func (c *Controller) CompleteOrder() error {
	if c.state != enums.FlowStateCheckout {
		return c.conflict(enums.FlowStateCheckout)
	}
	c.state = enums.FlowStateSuccess
	return nil
}

// Back moves exactly one step backward without discarding accumulated data.
// The initial and terminal states have no back transition.
func (c *Controller) Back() error {
	switch c.state {
	case enums.FlowStateCategory:
		c.state = enums.FlowStateDelivery
	case enums.FlowStateProducts:
		c.state = enums.FlowStateCategory
	case enums.FlowStateCheckout:
		c.checkoutSnapshot = nil
		c.state = enums.FlowStateProducts
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot go back from %s", c.state))
	}
	return nil
}

// StartOver resets everything and returns to the delivery step. It is the
// only transition that clears the accumulated data.
func (c *Controller) StartOver() error {
	if c.state != enums.FlowStateSuccess {
		return c.conflict(enums.FlowStateSuccess)
	}
	c.delivery = nil
	c.category = ""
	c.cart.Clear()
	c.checkoutSnapshot = nil
	c.state = enums.FlowStateDelivery
	return nil
}

func (c *Controller) conflict(expected enums.FlowState) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("operation requires the %s step", expected)).WithDetails(map[string]any{
		"current_state": c.state.String(),
	})
}

// anchorDay re-expresses the wall-clock calendar date in the controller
// clock's location. Parsed dates arrive as UTC midnight; comparing that
// instant against local-time window bounds would shift the window by the
// zone offset, so only the (year, month, day) triple is kept.
func (c *Controller) anchorDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, c.now().Location())
}

func (c *Controller) dateInWindow(day time.Time) bool {
	first := truncateToDay(c.now())
	last := first.AddDate(0, 0, c.windowDays-1)
	return !day.Before(first) && !day.After(last)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DeliveryDates lists the selectable days starting at now.
func DeliveryDates(now time.Time, windowDays int) []time.Time {
	if windowDays <= 0 {
		windowDays = 6
	}
	first := truncateToDay(now)
	days := make([]time.Time, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		days = append(days, first.AddDate(0, 0, i))
	}
	return days
}
