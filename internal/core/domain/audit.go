package domain

import "time"

// AuditAction identifies the auth operation an audit entry records.
type AuditAction string

const (
	AuditRegister     AuditAction = "register"
	AuditLoginSuccess AuditAction = "login_success"
	AuditLoginFailure AuditAction = "login_failure"
	AuditRefresh      AuditAction = "refresh"
	AuditPromote      AuditAction = "promote"
)

// AuditEvent represents a single auth operation for the audit trail.
// Entries are recorded best-effort and never block the request path.
type AuditEvent struct {
	Username  string
	UserID    int64 // zero when the subject could not be resolved
	Action    AuditAction
	Timestamp time.Time
	Detail    string // optional, e.g. the failure reason
}
