package domain

import "time"

// Role is the authorization level attached to a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the durable credential record and the source of truth for identity.
// Tokens are detached, time-bounded assertions about a User's identity and
// role at issuance time.
type User struct {
	ID                    int64     `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"`
	Role                  Role      `json:"role"`
	Enabled               bool      `json:"enabled"`
	AccountNonLocked      bool      `json:"account_non_locked"`
	AccountNonExpired     bool      `json:"account_non_expired"`
	CredentialsNonExpired bool      `json:"credentials_non_expired"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
