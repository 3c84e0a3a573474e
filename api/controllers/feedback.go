package controllers

import (
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/api/validators"
	"github.com/angelmondragon/friendsofall-backend/internal/feedback"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

type feedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

func FeedbackSubmit(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload feedbackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Submit(r.Context(), feedback.Input{
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Message: payload.Message,
			Rating:  payload.Rating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func AdminFeedbackList(svc feedback.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}
