package ports

import (
	"context"

	"github.com/spacehq/space-auth/internal/core/domain"
)

// AuditRecorder persists authentication audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Implementations
// must not block the caller beyond a bounded buffer.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}
