package controllers

import (
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/api/validators"
	"github.com/koussaybh/patisserie-storefront/internal/catalog"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type cartAdjustRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Delta     int    `json:"delta" validate:"required"`
}

// CartAdd resolves the product against the live catalog and merges it into
// the session cart.
func CartAdd(svc catalog.Service, engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Lock()
		state := sess.Flow.State()
		category := sess.Flow.Category()
		sess.Unlock()
		if state != enums.FlowStateProducts {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart edits require the products step"))
			return
		}

		selection, err := svc.ResolveSelection(r.Context(), category, payload.ProductID, payload.VariantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		name := selection.Name
		if selection.VariantName != "" {
			name = name + " (" + selection.VariantName + ")"
		}

		sess.Lock()
		addErr := sess.Flow.Cart().Add(selection.ProductID, selection.VariantID, name, selection.UnitPrice, payload.Quantity)
		sess.Unlock()
		if addErr != nil {
			responses.WriteError(r.Context(), logg, w, addErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}

// CartAdjust shifts a line's quantity by a signed delta, removing the line
// when it reaches zero.
func CartAdjust(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		var payload cartAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess.Lock()
		state := sess.Flow.State()
		if state == enums.FlowStateProducts {
			sess.Flow.Cart().AdjustQuantity(payload.ProductID, payload.VariantID, payload.Delta)
		}
		sess.Unlock()
		if state != enums.FlowStateProducts {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart edits require the products step"))
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}

// CartFetch returns the current cart with computed totals.
func CartFetch(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		items := sess.Flow.Cart().Snapshot()
		sess.Unlock()

		responses.WriteSuccess(w, newCartView(engine, items))
	}
}

// CartConfirm freezes the cart and advances to checkout.
func CartConfirm(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		confirmErr := sess.Flow.ConfirmCart()
		sess.Unlock()
		if confirmErr != nil {
			responses.WriteError(r.Context(), logg, w, confirmErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}
