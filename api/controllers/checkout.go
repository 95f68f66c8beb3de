package controllers

import (
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/api/validators"
	"github.com/koussaybh/patisserie-storefront/internal/orders"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

type checkoutRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DeliveryMethod string `json:"delivery_method" validate:"required,oneof=delivery pickup"`
	Address        string `json:"address"`
}

// CheckoutSummary renders the frozen cart with delivery fee applied.
func CheckoutSummary(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		state := sess.Flow.State()
		snapshot := sess.Flow.CheckoutSnapshot()
		sess.Unlock()
		if state != enums.FlowStateCheckout {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "no checkout in progress"))
			return
		}

		view := checkoutView{State: state.String()}
		view.Subtotal, view.DeliveryFee, view.TotalAmount = checkoutTotals(engine, snapshot, enums.DeliveryMethodDelivery)
		responses.WriteSuccess(w, view)
	}
}

// CheckoutSubmit validates the customer fields and performs the order write.
// Failed submits leave the session on the checkout step so it can be retried.
func CheckoutSubmit(svc orders.Service, engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := orders.CheckoutFields{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Method:  enums.DeliveryMethod(payload.DeliveryMethod),
			Address: payload.Address,
		}

		sess.Lock()
		snapshot := sess.Flow.CheckoutSnapshot()
		sess.Unlock()

		confirmation, err := svc.Submit(r.Context(), sess, fields)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithSessionToken(r.Context(), sess.Token), "order accepted by the bakery backend")

		sess.Lock()
		state := sess.Flow.State()
		sess.Unlock()

		view := checkoutView{
			State:       state.String(),
			OrderID:     confirmation.ID,
			OrderStatus: confirmation.Status,
		}
		view.Subtotal, view.DeliveryFee, view.TotalAmount = checkoutTotals(engine, snapshot, fields.Method)
		responses.WriteSuccess(w, view)
	}
}
