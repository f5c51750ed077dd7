package ports

import (
	"context"

	"github.com/innowise/auth-service/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes a single audit event (persistence plus logging).
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder is the fire-and-forget entry point the auth services use to
// emit audit events without blocking on storage.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	// Allow reports whether a login attempt for the username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// Failure records a failed attempt.
	Failure(ctx context.Context, username string) error
	// Success clears the failure counter.
	Success(ctx context.Context, username string) error
}
