package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/api/validators"
	"github.com/angelmondragon/friendsofall-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/angelmondragon/friendsofall-backend/pkg/money"
	"github.com/angelmondragon/friendsofall-backend/pkg/types"
)

const (
	maxNameLen        = 120
	maxDescriptionLen = 1000
)

type createMenuItemRequest struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Price       money.Input `json:"price"`
	Category    string      `json:"category"`
	Available   *bool       `json:"available"`
	Spicy       bool        `json:"spicy"`
	Image       *string     `json:"image"`
}

type updateMenuItemRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Price       money.Input `json:"price"`
	Category    *string     `json:"category"`
	Available   *bool       `json:"available"`
	Spicy       *bool       `json:"spicy"`
	Image       *string     `json:"image"`
}

type attachImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// MenuList filters the catalog by category, search text and availability.
func MenuList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		availableOnly, err := validators.ParseQueryBool(r, "available", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := r.URL.Query()
		items := svc.List(r.Context(), catalog.ListFilter{
			Category:      strings.TrimSpace(query.Get("category")),
			Query:         validators.SanitizeString(query.Get("q"), maxNameLen),
			AvailableOnly: availableOnly,
		})
		responses.WriteSuccess(w, items)
	}
}

func MenuGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminMenuCreate adds an item. Malformed prices become zero rather than failing.
func AdminMenuCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), catalog.CreateInput{
			Name:        validators.SanitizeString(payload.Name, maxNameLen),
			Description: validators.SanitizeString(payload.Description, maxDescriptionLen),
			Price:       payload.Price.Amount,
			Category:    strings.TrimSpace(payload.Category),
			Available:   payload.Available,
			Spicy:       payload.Spicy,
			Image:       payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func AdminMenuUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, catalog.UpdateInput{
			Name:        validators.SanitizeOptional(payload.Name, maxNameLen),
			Description: validators.SanitizeOptional(payload.Description, maxDescriptionLen),
			Price:       payload.Price.Ptr(),
			Category:    validators.SanitizeOptional(payload.Category, 0),
			Available:   payload.Available,
			Spicy:       payload.Spicy,
			Image:       payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminMenuDelete is idempotent: deleting an absent id succeeds with deleted=false.
func AdminMenuDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Deleted{ID: id, Deleted: svc.Delete(r.Context(), id)})
	}
}

// AdminMenuImage attaches an image data URL to an item, or stages it for the
// next create when the target is "new".
func AdminMenuImage(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := strings.TrimSpace(chi.URLParam(r, "itemId"))
		var payload attachImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AttachImage(r.Context(), target, payload.Image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if item == nil {
			responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]any{"staged": true})
			return
		}
		responses.WriteSuccess(w, item)
	}
}
