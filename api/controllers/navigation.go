package controllers

import (
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

// Back walks the flow one step backward, keeping accumulated data.
func Back(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		backErr := sess.Flow.Back()
		sess.Unlock()
		if backErr != nil {
			responses.WriteError(r.Context(), logg, w, backErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}

// StartOver resets a completed session back to the delivery step.
func StartOver(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		resetErr := sess.Flow.StartOver()
		sess.Unlock()
		if resetErr != nil {
			responses.WriteError(r.Context(), logg, w, resetErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}
