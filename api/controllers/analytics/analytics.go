package analytics

import (
	"net/http"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	internalanalytics "github.com/angelmondragon/friendsofall-backend/internal/analytics"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

// Summary serves the admin dashboard figures.
func Summary(svc internalanalytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}
