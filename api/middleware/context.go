package middleware

import (
	"context"

	"github.com/sobnin/sobnin-backend/pkg/auth"
)

type contextKey string

const (
	ctxSessionKey  contextKey = "session_key"
	ctxStaffClaims contextKey = "staff_claims"
)

func SessionKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionKey).(string); ok {
		return v
	}
	return ""
}

// WithSessionKey injects the visitor session key into the context.
func WithSessionKey(ctx context.Context, sessionKey string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionKey, sessionKey)
}

func StaffFromContext(ctx context.Context) *auth.StaffClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxStaffClaims).(*auth.StaffClaims); ok {
		return v
	}
	return nil
}

// WithStaff injects authenticated staff claims for downstream handlers.
func WithStaff(ctx context.Context, claims *auth.StaffClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStaffClaims, claims)
}
