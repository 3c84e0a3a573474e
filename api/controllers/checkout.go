package controllers

import (
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/api/validators"
	"github.com/angelmondragon/friendsofall-backend/internal/checkout"
	"github.com/angelmondragon/friendsofall-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

type checkoutRequest struct {
	Customer      checkoutCustomer `json:"customer"`
	OrderType     string           `json:"order_type" validate:"omitempty,oneof=delivery pickup"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=cash card"`
}

type checkoutCustomer struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email" validate:"omitempty,email"`
	Address              string `json:"address"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// CheckoutQuote prices the current cart for the requested order type.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		quote, err := svc.Quote(r.Context(), r.URL.Query().Get("order_type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutPlace converts the cart into an order. Missing customer fields come
// back as a validation error with per-field details.
func CheckoutPlace(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), checkout.Input{
			Customer: orders.Customer{
				Name:                 validators.SanitizeString(payload.Customer.Name, 120),
				Phone:                validators.SanitizeString(payload.Customer.Phone, 40),
				Email:                validators.SanitizeString(payload.Customer.Email, 254),
				Address:              validators.SanitizeString(payload.Customer.Address, 300),
				DeliveryInstructions: validators.SanitizeString(payload.Customer.DeliveryInstructions, 500),
			},
			OrderType:     payload.OrderType,
			PaymentMethod: payload.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
