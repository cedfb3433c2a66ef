package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spacehq/space-auth/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates HS256-signed bearer tokens. The signing
// secret is injected at construction and read-only afterwards; rotating it
// invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService signing with secret. A zero ttl
// falls back to defaultTokenTTL; a negative ttl is kept as-is and issues
// tokens that are already expired.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for subject valid from now until now + TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature, structure, and expiry and returns the
// embedded subject. Any failure maps to domain.ErrTokenInvalid.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims.Subject, nil
}

// ExtractSubject parses the token with time-claim validation disabled so the
// subject of an expired token remains readable for diagnostics. The
// signature is still verified.
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	return claims.Subject, nil
}

// IsValid reports whether the token is fully valid and bound to
// expectedSubject. The subject comparison guards against a valid token being
// replayed against a different identity.
func (s *TokenService) IsValid(tokenString, expectedSubject string) bool {
	subject, err := s.Validate(tokenString)
	return err == nil && subject != "" && subject == expectedSubject
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}
