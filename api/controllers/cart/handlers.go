package cart

import (
	"context"
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/api/validators"
	internalcart "github.com/angelmondragon/friendsofall-backend/internal/cart"
	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/types"
)

type menuLookup interface {
	Get(ctx context.Context, id int64) (catalog.MenuItem, error)
}

// Get returns the cart lines with count and subtotal.
func Get(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}

// AddLine snapshots a menu item into a new cart line.
func AddLine(svc internalcart.Service, menu menuLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := menu.Get(r.Context(), payload.MenuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !item.Available {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "menu item is unavailable").
				WithDetails(map[string]any{"menu_item_id": item.ID}))
			return
		}

		line := svc.Add(r.Context(), item, payload.Quantity, validators.SanitizeString(payload.SpecialInstructions, maxInstructionsLen))
		responses.WriteSuccessStatus(w, http.StatusCreated, line)
	}
}

// UpdateLine patches price, quantity or instructions.
func UpdateLine(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := validators.ParseIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, found := svc.UpdateLine(r.Context(), lineID, payload.toPatch())
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found"))
			return
		}
		responses.WriteSuccess(w, line)
	}
}

// SetQuantity is the stepper; zero or less removes the line.
func SetQuantity(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := validators.ParseIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, found := svc.SetQuantity(r.Context(), lineID, *payload.Quantity)
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found"))
			return
		}
		if line == nil {
			responses.WriteSuccess(w, types.Deleted{ID: lineID, Deleted: true})
			return
		}
		responses.WriteSuccess(w, line)
	}
}

// RemoveLine is idempotent.
func RemoveLine(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := validators.ParseIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Deleted{ID: lineID, Deleted: svc.Remove(r.Context(), lineID)})
	}
}

func Clear(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Clear(r.Context())
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}
