package controllers

import (
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/internal/restaurant"
)

// RestaurantInfo serves contact details, hours, delivery terms and vocabularies.
func RestaurantInfo(cfg restaurant.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cfg)
	}
}
