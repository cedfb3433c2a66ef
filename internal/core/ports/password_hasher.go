package ports

// PasswordHasher provides one-way credential hashing. Two calls to Hash on
// the same plaintext produce different digests; Verify remains correct for
// any digest produced by Hash. A malformed digest reports a verification
// failure rather than an error.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
