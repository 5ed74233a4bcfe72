package http

import (
	"context"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/security"
)

type claimsKey struct{}

func withClaims(ctx context.Context, claims *security.AdminClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the admin claims placed by the auth middleware.
// It expects the route to be admin-only.
func ClaimsFromContext(ctx context.Context) (*security.AdminClaims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*security.AdminClaims)
	if !ok || claims == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
