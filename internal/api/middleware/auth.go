package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/spacehq/space-auth/internal/api/metrics"
	"github.com/spacehq/space-auth/internal/core/domain"
	"github.com/spacehq/space-auth/internal/core/ports"
)

// IdentityKey is the echo context key the request identity is stored under.
const IdentityKey = "auth.identity"

// IdentityFrom returns the RequestIdentity attached by Authenticate, if any.
func IdentityFrom(c echo.Context) (*domain.RequestIdentity, bool) {
	ident, ok := c.Get(IdentityKey).(*domain.RequestIdentity)
	return ident, ok && ident != nil
}

// Authenticate resolves the Authorization header into a RequestIdentity.
// It never terminates the request: every path falls through to next, either
// authenticated or not, and the access policy downstream does the rejecting.
//
// A request is authenticated only when the bearer token carries a subject
// with a valid signature, the subject resolves to a known user, and the
// token passes full validation against that exact subject.
func Authenticate(tokens ports.TokenService, store ports.CredentialStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			tokenString := parts[1]

			subject, err := tokens.ExtractSubject(tokenString)
			if err != nil || subject == "" {
				log.Debug().Msg("bearer token unparseable, continuing unauthenticated")
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			// Idempotence guard: a previous filter pass already decided.
			if _, ok := IdentityFrom(c); ok {
				return next(c)
			}

			user, err := store.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				log.Warn().Str("email", subject).Msg("token subject unknown, continuing unauthenticated")
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			if !tokens.IsValid(tokenString, subject) {
				log.Warn().Str("email", subject).Msg("invalid or expired token, continuing unauthenticated")
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(IdentityKey, &domain.RequestIdentity{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.Role,
			})

			return next(c)
		}
	}
}
