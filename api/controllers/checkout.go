package controllers

import (
	"context"
	"net/http"

	"github.com/jhonvillanueva44/mammapizza-api/api/responses"
	"github.com/jhonvillanueva44/mammapizza-api/api/validators"
	checkoutsvc "github.com/jhonvillanueva44/mammapizza-api/internal/checkout"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// CheckoutService composes the WhatsApp handoff for a session cart.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID, userAgent string, req checkoutsvc.Request) (*checkoutsvc.Result, error)
}

// Checkout validates the order form, builds the WhatsApp message and
// links, and clears the cart.
func Checkout(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), id, r.UserAgent(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
