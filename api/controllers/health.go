package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	"github.com/angelmondragon/friendsofall-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

const envHeader = "X-FriendsOfAll-Env"

// Pinger reports whether the store medium is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the store medium when one is wired.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable").
					WithDetails(map[string]string{"store": cfg.Store.NormalizedBackend()}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"store":  cfg.Store.NormalizedBackend(),
		})
	}
}
