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

type categorySelectRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
}

// CategoryList returns the fixed category set.
func CategoryList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Categories())
	}
}

// CategorySelect records the chosen category and advances to the catalog.
func CategorySelect(engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		var payload categorySelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !catalog.ValidCategory(payload.CategoryID) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown category"))
			return
		}

		sess.Lock()
		selectErr := sess.Flow.SelectCategory(payload.CategoryID)
		sess.Unlock()
		if selectErr != nil {
			responses.WriteError(r.Context(), logg, w, selectErr)
			return
		}

		responses.WriteSuccess(w, newSessionView(engine, sess, false))
	}
}

// ProductList serves the catalog for the session's category, narrowed by an
// optional name search.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from context"))
			return
		}

		sess.Lock()
		state := sess.Flow.State()
		category := sess.Flow.Category()
		sess.Unlock()

		if state != enums.FlowStateProducts {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "product browsing requires the products step"))
			return
		}

		products, err := svc.ListProducts(r.Context(), category, r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
