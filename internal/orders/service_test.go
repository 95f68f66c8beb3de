package orders

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/internal/session"
	"github.com/koussaybh/patisserie-storefront/pkg/bakery"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

type stubCreator struct {
	mu       sync.Mutex
	payloads []bakery.OrderPayload
	err      error
	block    chan struct{}
}

func (s *stubCreator) CreateOrder(ctx context.Context, payload bakery.OrderPayload) (*bakery.OrderConfirmation, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.payloads = append(s.payloads, payload)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &bakery.OrderConfirmation{ID: "ord1", Status: "Pending"}, nil
}

func (s *stubCreator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func newCheckoutSession(t *testing.T) *session.Session {
	t.Helper()
	reg := session.NewRegistry(2*time.Hour, 6, session.WithClock(func() time.Time { return testNow }))
	sess := reg.Create()

	if err := sess.Flow.SelectDelivery(testNow.AddDate(0, 0, 1), enums.TimeSlot2PM); err != nil {
		t.Fatalf("select delivery: %v", err)
	}
	if err := sess.Flow.SelectCategory("brownies"); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if err := sess.Flow.Cart().Add("p2", "large", "Cookie Jar", decimal.NewFromInt(230), 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := sess.Flow.ConfirmCart(); err != nil {
		t.Fatalf("confirm cart: %v", err)
	}
	return sess
}

func validFields() CheckoutFields {
	return CheckoutFields{
		Name:    "Amal Saidi",
		Email:   "amal@example.com",
		Phone:   "+216 12 345 678",
		Method:  enums.DeliveryMethodDelivery,
		Address: "12 Rue des Oliviers, Tunis",
	}
}

func newTestService(t *testing.T, creator *stubCreator) Service {
	t.Helper()
	svc, err := NewService(creator, pricing.NewEngine(decimal.NewFromInt(7)), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestValidateContactClassFirst(t *testing.T) {
	fields := validFields()
	fields.Phone = ""
	fields.Address = ""

	err := Validate(fields)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]any)
	if details["class"] != "contact" {
		t.Fatalf("contact class must fail first, got %v", details["class"])
	}
}

func TestValidateAddressClass(t *testing.T) {
	fields := validFields()
	fields.Address = "   "

	err := Validate(fields)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]any)
	if details["class"] != "address" {
		t.Fatalf("expected address class, got %v", details["class"])
	}
}

func TestValidatePickupNeedsNoAddress(t *testing.T) {
	fields := validFields()
	fields.Method = enums.DeliveryMethodPickup
	fields.Address = ""
	if err := Validate(fields); err != nil {
		t.Fatalf("pickup without address should validate: %v", err)
	}
}

func TestSubmitSuccessAdvancesFlow(t *testing.T) {
	creator := &stubCreator{}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	confirmation, err := svc.Submit(context.Background(), sess, validFields())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if confirmation.ID != "ord1" {
		t.Fatalf("unexpected confirmation %+v", confirmation)
	}
	if sess.Flow.State() != enums.FlowStateSuccess {
		t.Fatalf("expected success state, got %s", sess.Flow.State())
	}

	payload := creator.payloads[0]
	if payload.TotalAmount != 237 {
		t.Fatalf("expected recomputed total 237 (230 + 7 fee), got %v", payload.TotalAmount)
	}
	if payload.DeliveryMethod != "Delivery" {
		t.Fatalf("unexpected wire method %q", payload.DeliveryMethod)
	}
	if payload.DeliveryDate != "2026-03-11" {
		t.Fatalf("unexpected delivery date %q", payload.DeliveryDate)
	}
	if payload.DeliveryTime != "02:00 PM" {
		t.Fatalf("unexpected delivery time %q", payload.DeliveryTime)
	}
	if payload.Status != "Pending" {
		t.Fatalf("unexpected status %q", payload.Status)
	}
	if len(payload.Items) != 1 || payload.Items[0].Quantity != 1 || payload.Items[0].Price != 230 {
		t.Fatalf("unexpected items %+v", payload.Items)
	}
}

func TestSubmitPickupOmitsFeeAndAddress(t *testing.T) {
	creator := &stubCreator{}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	fields := validFields()
	fields.Method = enums.DeliveryMethodPickup
	fields.Address = ""

	if _, err := svc.Submit(context.Background(), sess, fields); err != nil {
		t.Fatalf("submit: %v", err)
	}

	payload := creator.payloads[0]
	if payload.TotalAmount != 230 {
		t.Fatalf("expected 230 without fee, got %v", payload.TotalAmount)
	}
	if payload.DeliveryAddress != nil {
		t.Fatalf("expected null address for pickup, got %v", *payload.DeliveryAddress)
	}
	if payload.DeliveryMethod != "Pickup" {
		t.Fatalf("unexpected wire method %q", payload.DeliveryMethod)
	}
}

func TestSubmitValidationFailureLeavesCheckout(t *testing.T) {
	creator := &stubCreator{}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	fields := validFields()
	fields.Phone = ""

	_, err := svc.Submit(context.Background(), sess, fields)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if sess.Flow.State() != enums.FlowStateCheckout {
		t.Fatalf("state must remain checkout, got %s", sess.Flow.State())
	}
	if creator.calls() != 0 {
		t.Fatal("no network write may happen on validation failure")
	}
	if len(sess.Flow.CheckoutSnapshot()) != 1 {
		t.Fatal("cart snapshot must be preserved for resubmission")
	}
}

func TestSubmitRejectionLeavesCheckout(t *testing.T) {
	creator := &stubCreator{err: pkgerrors.New(pkgerrors.CodeOrderRejected, "store closed")}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	_, err := svc.Submit(context.Background(), sess, validFields())
	if !pkgerrors.IsCode(err, pkgerrors.CodeOrderRejected) {
		t.Fatalf("expected ORDER_REJECTED, got %v", err)
	}
	if sess.Flow.State() != enums.FlowStateCheckout {
		t.Fatalf("state must remain checkout, got %s", sess.Flow.State())
	}
}

func TestSubmitNetworkFailureLeavesCheckoutAndAllowsRetry(t *testing.T) {
	creator := &stubCreator{err: pkgerrors.New(pkgerrors.CodeNetwork, "connection refused")}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	_, err := svc.Submit(context.Background(), sess, validFields())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNetwork) {
		t.Fatalf("expected NETWORK_ERROR, got %v", err)
	}
	if sess.Flow.State() != enums.FlowStateCheckout {
		t.Fatalf("state must remain checkout, got %s", sess.Flow.State())
	}

	// manual retry succeeds once the backend recovers
	creator.err = nil
	if _, err := svc.Submit(context.Background(), sess, validFields()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sess.Flow.State() != enums.FlowStateSuccess {
		t.Fatalf("expected success after retry, got %s", sess.Flow.State())
	}
}

func TestSubmitOutsideCheckoutIsRejected(t *testing.T) {
	creator := &stubCreator{}
	svc := newTestService(t, creator)
	reg := session.NewRegistry(2*time.Hour, 6, session.WithClock(func() time.Time { return testNow }))
	sess := reg.Create()

	_, err := svc.Submit(context.Background(), sess, validFields())
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	creator := &stubCreator{block: make(chan struct{})}
	svc := newTestService(t, creator)
	sess := newCheckoutSession(t)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), sess, validFields())
		firstDone <- err
	}()

	// wait until the first submit holds the guard
	deadline := time.After(2 * time.Second)
	for {
		if !sess.BeginSubmit() {
			break
		}
		sess.EndSubmit()
		select {
		case <-deadline:
			t.Fatal("first submit never acquired the guard")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := svc.Submit(context.Background(), sess, validFields())
	if !pkgerrors.IsCode(err, pkgerrors.CodeSubmitInFlight) {
		t.Fatalf("expected SUBMIT_IN_FLIGHT, got %v", err)
	}

	close(creator.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if creator.calls() != 1 {
		t.Fatalf("exactly one network write expected, got %d", creator.calls())
	}
}
