package httpx

import (
	"context"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
)

// claimsKey is an unexported context key type for authenticated claims.
type claimsKey struct{}

// SetClaimsInContext stores the verified token claims in the context.
func SetClaimsInContext(ctx context.Context, claims domainauth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the verified claims placed by the auth middleware.
// The second return is false on unauthenticated requests.
func ClaimsFromContext(ctx context.Context) (domainauth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domainauth.Claims)
	return claims, ok
}
