package ports

import "context"

// LoginLimiter throttles repeated failed logins per email. Implementations
// fail open: an unavailable backend must not lock users out.
type LoginLimiter interface {
	// Allow reports whether a login attempt for email may proceed.
	Allow(ctx context.Context, email string) bool

	// RecordFailure counts one failed attempt against email.
	RecordFailure(ctx context.Context, email string)
}
