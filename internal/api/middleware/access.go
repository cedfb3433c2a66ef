package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spacehq/space-auth/internal/api/metrics"
	"github.com/spacehq/space-auth/internal/core/domain"
)

// AccessPolicy is a static route classification. Public prefixes are always
// allowed, protected prefixes require an authenticated request, and anything
// else is denied. Public prefixes win when a path matches both.
type AccessPolicy struct {
	Public    []string
	Protected []string
}

// DefaultAccessPolicy classifies the auth endpoints and operational probes
// as public and everything under /api as protected.
func DefaultAccessPolicy() AccessPolicy {
	return AccessPolicy{
		Public:    []string{"/api/v1/auth", "/health", "/metrics"},
		Protected: []string{"/api"},
	}
}

// Decide returns nil when the request may proceed and ErrUnauthorized when
// it must be rejected.
func (p AccessPolicy) Decide(path string, authenticated bool) error {
	for _, prefix := range p.Public {
		if strings.HasPrefix(path, prefix) {
			return nil
		}
	}
	for _, prefix := range p.Protected {
		if strings.HasPrefix(path, prefix) {
			if authenticated {
				return nil
			}
			return domain.ErrUnauthorized
		}
	}
	// Unclassified routes are denied regardless of authentication state.
	return domain.ErrUnauthorized
}

// RequireAccess enforces the policy against the identity state decided by
// Authenticate. It must run after Authenticate in the middleware pipeline.
func RequireAccess(policy AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, authenticated := IdentityFrom(c)

			state := "unauthenticated"
			if authenticated {
				state = "authenticated"
			}
			metrics.AuthRequestsTotal.WithLabelValues(state).Inc()

			if err := policy.Decide(c.Request().URL.Path, authenticated); err != nil {
				return err
			}
			return next(c)
		}
	}
}
