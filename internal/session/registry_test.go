package session

import (
	"testing"
	"time"

	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

func TestCreateAndGet(t *testing.T) {
	reg := NewRegistry(2*time.Hour, 6)
	sess := reg.Create()
	if sess.Token == "" {
		t.Fatal("expected a session token")
	}
	if sess.Flow.State() != enums.FlowStateDelivery {
		t.Fatalf("new sessions start at delivery, got %s", sess.Flow.State())
	}

	got, err := reg.Get(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sess {
		t.Fatal("expected the same session instance")
	}
}

func TestGetUnknownToken(t *testing.T) {
	reg := NewRegistry(2*time.Hour, 6)
	if _, err := reg.Get("nope"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestExpiredSessionIsDropped(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(time.Hour, 6, WithClock(func() time.Time { return now }))

	sess := reg.Create()
	now = now.Add(2 * time.Hour)

	if _, err := reg.Get(sess.Token); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected expired session to be NOT_FOUND, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected expired session evicted, got %d live", reg.Len())
	}
}

func TestAccessRefreshesExpiry(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(time.Hour, 6, WithClock(func() time.Time { return now }))

	sess := reg.Create()

	now = now.Add(50 * time.Minute)
	if _, err := reg.Get(sess.Token); err != nil {
		t.Fatalf("get within ttl: %v", err)
	}

	now = now.Add(50 * time.Minute)
	if _, err := reg.Get(sess.Token); err != nil {
		t.Fatalf("refreshed session should still live: %v", err)
	}
}

func TestSubmitGuard(t *testing.T) {
	reg := NewRegistry(2*time.Hour, 6)
	sess := reg.Create()

	if !sess.BeginSubmit() {
		t.Fatal("first submit should acquire the guard")
	}
	if sess.BeginSubmit() {
		t.Fatal("second submit while outstanding must be rejected")
	}
	sess.EndSubmit()
	if !sess.BeginSubmit() {
		t.Fatal("guard should be reusable after release")
	}
}
