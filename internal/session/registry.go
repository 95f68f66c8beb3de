package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/koussaybh/patisserie-storefront/internal/flow"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
)

// Session is one customer's ordering state: the flow controller (which owns
// the cart) plus the submit guard. All mutation goes through Lock/Unlock
// except the guard, which must stay held across the network write.
type Session struct {
	Token string
	Flow  *flow.Controller

	lastSeen   time.Time
	submitting atomic.Bool

	mu sync.Mutex
}

// Lock serializes handler access to the session's flow and cart.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the handler lock.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// BeginSubmit marks a submission in flight. It reports false when another
// submission is already outstanding.
func (s *Session) BeginSubmit() bool {
	return s.submitting.CompareAndSwap(false, true)
}

// EndSubmit releases the submit guard once the outstanding call resolved.
func (s *Session) EndSubmit() {
	s.submitting.Store(false)
}

// Registry owns the in-process sessions, keyed by opaque token. Expired
// sessions are dropped lazily on access; nothing runs in the background.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl        time.Duration
	windowDays int
	now        func() time.Time
}

// Option configures optional registry behavior.
type Option func(*Registry)

// WithClock overrides the registry's time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry builds a registry minting flows with the given delivery window.
func NewRegistry(ttl time.Duration, windowDays int, opts ...Option) *Registry {
	r := &Registry{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		windowDays: windowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Create mints a new session starting at the delivery step.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := &Session{
		Token:    uuid.NewString(),
		Flow:     flow.NewController(r.windowDays, flow.WithClock(r.now)),
		lastSeen: r.now(),
	}
	r.sessions[sess.Token] = sess
	return sess
}

// Get resolves a token, refreshing its expiry. Expired or unknown tokens
// return NOT_FOUND.
func (r *Registry) Get(token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[token]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown session")
	}
	if r.ttl > 0 && r.now().Sub(sess.lastSeen) > r.ttl {
		delete(r.sessions, token)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session expired")
	}
	sess.lastSeen = r.now()
	return sess, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
