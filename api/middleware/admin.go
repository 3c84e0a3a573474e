package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/friendsofall-backend/api/responses"
	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
)

const (
	AdminModeHeader = "X-Admin-Mode"
	AdminModeQuery  = "admin"
)

// AdminToggle gates the admin dashboard routes. It is a view switch, not an
// authentication boundary: the header or query flag is enough when the
// dashboard is enabled.
func AdminToggle(enabled bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !enabled {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin dashboard disabled"))
				return
			}
			if !adminRequested(r) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin mode required"))
				return
			}

			ctx = WithAdminMode(ctx, true)
			if logg != nil {
				ctx = logg.WithAdminMode(ctx, true)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminRequested(r *http.Request) bool {
	for _, raw := range []string{r.Header.Get(AdminModeHeader), r.URL.Query().Get(AdminModeQuery)} {
		if on, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil && on {
			return true
		}
	}
	return false
}
