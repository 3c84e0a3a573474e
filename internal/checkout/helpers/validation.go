package helpers

import (
	"strings"

	"github.com/angelmondragon/friendsofall-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
)

// ResolveOrderType parses the requested order type. Blank input means delivery.
func ResolveOrderType(raw string) (enums.OrderType, error) {
	value := normalize(raw)
	if value == "" {
		return enums.OrderTypeDelivery, nil
	}
	orderType, err := enums.ParseOrderType(value)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type").
			WithDetails(map[string]string{"order_type": "must be delivery or pickup"})
	}
	return orderType, nil
}

// ResolvePaymentMethod parses the requested payment method. Blank input means cash.
func ResolvePaymentMethod(raw string) (enums.PaymentMethod, error) {
	value := normalize(raw)
	if value == "" {
		return enums.PaymentMethodCash, nil
	}
	method, err := enums.ParsePaymentMethod(value)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
			WithDetails(map[string]string{"payment_method": "must be cash or card"})
	}
	return method, nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
