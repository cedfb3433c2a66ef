package ports

// TokenService issues and validates signed, self-contained bearer tokens.
type TokenService interface {
	// Issue signs a new token binding subject to the configured validity
	// window and returns its compact serialization.
	Issue(subject string) (string, error)

	// Validate verifies signature, structure, and expiry, returning the
	// embedded subject on success.
	Validate(tokenString string) (string, error)

	// ExtractSubject returns the embedded subject without checking time
	// claims. The signature is still verified, so the result is usable for
	// diagnostics on an expired token but must not drive authorization.
	ExtractSubject(tokenString string) (string, error)

	// IsValid reports whether the token is fully valid and bound to
	// expectedSubject. This is the only call trusted for access decisions.
	IsValid(tokenString, expectedSubject string) bool
}
