package controllers

import (
	"net/http"
	"time"

	"github.com/koussaybh/patisserie-storefront/api/middleware"
	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/api/validators"
	"github.com/koussaybh/patisserie-storefront/internal/flow"
	"github.com/koussaybh/patisserie-storefront/internal/pricing"
	"github.com/koussaybh/patisserie-storefront/pkg/enums"
	pkgerrors "github.com/koussaybh/patisserie-storefront/pkg/errors"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

type deliverySelectRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

type deliveryOptionsView struct {
	Dates     []string `json:"dates"`
	TimeSlots []string `json:"time_slots"`
}

// DeliveryOptions lists the selectable dates and the fixed time slots.
func DeliveryOptions(windowDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := flow.DeliveryDates(time.Now(), windowDays)
		view := deliveryOptionsView{
			Dates:     make([]string, 0, len(days)),
			TimeSlots: make([]string, 0, 7),
		}
		for _, day := range days {
			view.Dates = append(view.Dates, day.Format("2006-01-02"))
		}
		for _, slot := range enums.TimeSlots() {
			view.TimeSlots = append(view.TimeSlots, slot.String())
		}
		responses.WriteSuccess(w, view)
	}
}

// DeliverySelect records the chosen date and slot and advances the flow.
func DeliverySelect(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		var payload deliverySelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be YYYY-MM-DD"))
			return
		}
		slot, err := enums.ParseTimeSlot(payload.TimeSlot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown time slot"))
			return
		}

		sess.Lock()
		selectErr := sess.Flow.SelectDelivery(date, slot)
		sess.Unlock()
		if selectErr != nil {
			responses.WriteError(r.Context(), logg, w, selectErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}
