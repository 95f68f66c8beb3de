package middleware

import (
	"context"
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/responses"
	sessionpkg "github.com/koussaybh/patisserie-storefront/internal/session"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

// SessionTokenHeader carries the opaque session token on every flow route.
const SessionTokenHeader = "X-Session-Token"

type sessionCtxKey struct{}

// Session resolves the token header against the registry and injects the
// session into the request context.
func Session(registry *sessionpkg.Registry, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionTokenHeader)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session token header is required"))
				return
			}

			sess, err := registry.Get(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
			if logg != nil {
				ctx = logg.WithSessionToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session injected by the Session middleware.
func SessionFromContext(ctx context.Context) *sessionpkg.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*sessionpkg.Session)
	return sess
}
