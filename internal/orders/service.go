package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/koussaybh/patisserie-storefront/internal/cart"
	"github.com/koussaybh/patisserie-storefront/internal/flow"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/internal/session"
	"github.com/koussaybh/patisserie-storefront/pkg/bakery"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/metrics"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, payload bakery.OrderPayload) (*bakery.OrderConfirmation, error)
}

// CheckoutFields is the customer input gathered on the checkout step.
type CheckoutFields struct {
	Name    string
	Email   string
	Phone   string
	Method  enums.DeliveryMethod
	Address string
}

// Service validates checkout input, assembles the order draft and performs
// the single network write.
type Service interface {
	Submit(ctx context.Context, sess *session.Session, fields CheckoutFields) (*bakery.OrderConfirmation, error)
}

type service struct {
	backend orderCreator
	engine  pricing.Engine
	metrics *metrics.OrderMetrics
}

// NewService builds the order submitter.
func NewService(backend orderCreator, engine pricing.Engine, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("order creator required")
	}
	return &service{
		backend: backend,
		engine:  engine,
		metrics: orderMetrics,
	}, nil
}

// Validate checks the checkout fields one class at a time: contact info
// first, then the address when the order is delivered. It reports the first
// failing class only.
func Validate(fields CheckoutFields) error {
	var missing []string
	if strings.TrimSpace(fields.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(fields.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(fields.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing contact information").WithDetails(map[string]any{
			"class":  "contact",
			"fields": missing,
		})
	}

	if !fields.Method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery method %q", fields.Method))
	}
	if fields.Method == enums.DeliveryMethodDelivery && strings.TrimSpace(fields.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required").WithDetails(map[string]any{
			"class": "address",
		})
	}
	return nil
}

// BuildPayload assembles the immutable order draft. The total is recomputed
// from the snapshot here; a total cached by an earlier render is never
// trusted.
func (s *service) BuildPayload(fields CheckoutFields, snapshot []cart.Item, delivery flow.DeliverySelection) bakery.OrderPayload {
	items := make([]bakery.OrderItem, 0, len(snapshot))
	for _, line := range snapshot {
		items = append(items, bakery.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice.InexactFloat64(),
			Quantity:  line.Quantity,
		})
	}

	total := s.engine.Total(cart.PricingLines(snapshot), fields.Method)

	var address *string
	if fields.Method == enums.DeliveryMethodDelivery {
		trimmed := strings.TrimSpace(fields.Address)
		address = &trimmed
	}

	return bakery.OrderPayload{
		CustomerName:    strings.TrimSpace(fields.Name),
		Email:           strings.TrimSpace(fields.Email),
		Phone:           strings.TrimSpace(fields.Phone),
		DeliveryMethod:  fields.Method.Label(),
		DeliveryAddress: address,
		DeliveryDate:    delivery.Date.Format("2006-01-02"),
		DeliveryTime:    delivery.Slot.String(),
		Items:           items,
		TotalAmount:     total.InexactFloat64(),
		Status:          enums.OrderStatusPending.String(),
	}
}

// Submit performs exactly one order write for the session. A second submit
// while one is outstanding is rejected. On success the flow advances to the
// success step; any failure leaves checkout, cart and fields untouched so
// the customer can correct and resubmit.
func (s *service) Submit(ctx context.Context, sess *session.Session, fields CheckoutFields) (*bakery.OrderConfirmation, error) {
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session required")
	}
	if !sess.BeginSubmit() {
		return nil, pkgerrors.New(pkgerrors.CodeSubmitInFlight, "an order submission is already in progress")
	}
	defer sess.EndSubmit()
	s.metrics.IncAttempt(fields.Method.String())

	payload, err := s.prepare(sess, fields)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	confirmation, err := s.backend.CreateOrder(ctx, *payload)
	s.metrics.ObserveDuration(fields.Method.String(), time.Since(start))
	if err != nil {
		s.metrics.IncFailure(fields.Method.String(), string(pkgerrors.As(err).Code()))
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	if err := sess.Flow.CompleteOrder(); err != nil {
		return nil, err
	}
	s.metrics.IncSuccess(fields.Method.String())
	return confirmation, nil
}

// prepare validates under the session lock and freezes the payload before
// the network call starts.
func (s *service) prepare(sess *session.Session, fields CheckoutFields) (*bakery.OrderPayload, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.Flow.State() != enums.FlowStateCheckout {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order submission requires the checkout step").WithDetails(map[string]any{
			"current_state": sess.Flow.State().String(),
		})
	}
	if err := Validate(fields); err != nil {
		return nil, err
	}

	snapshot := sess.Flow.CheckoutSnapshot()
	if len(snapshot) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart snapshot is empty")
	}
	delivery := sess.Flow.Delivery()
	if delivery == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "delivery selection missing")
	}

	payload := s.BuildPayload(fields, snapshot, *delivery)
	return &payload, nil
}
