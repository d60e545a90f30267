package controllers

import (
	"net/http"

	"github.com/maisonthread/storefront-backend/api/responses"
	"github.com/maisonthread/storefront-backend/api/validators"
	checkoutsvc "github.com/maisonthread/storefront-backend/internal/checkout"
	pkgerrors "github.com/maisonthread/storefront-backend/pkg/errors"
	"github.com/maisonthread/storefront-backend/pkg/logger"
)

// Checkout places an order from the caller's cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.PlaceOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithOrderNumber(r.Context(), order.OrderNumber)
			logg.Info(ctx, "checkout.order_placed")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
