package middleware

import "context"

type contextKey string

const ctxAdminMode contextKey = "admin_mode"

// AdminModeFromContext reports whether the request switched the admin view on.
func AdminModeFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(ctxAdminMode).(bool)
	return v
}

// WithAdminMode marks the context as an admin request.
func WithAdminMode(ctx context.Context, admin bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminMode, admin)
}
