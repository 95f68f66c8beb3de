package controllers

import (
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	sessionpkg "github.com/koussaybh/patisserie-storefront/internal/session"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

// SessionCreate mints a fresh ordering session at the delivery step.
func SessionCreate(registry *sessionpkg.Registry, engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := registry.Create()
		w.Header().Set(middleware.SessionTokenHeader, sess.Token)
		responses.WriteSuccessStatus(w, http.StatusCreated, newSessionView(engine, sess, true))
	}
}

// SessionState exposes the accumulated session state.
func SessionState(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}
		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}
