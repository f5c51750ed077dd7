package domain

// Identity is the trusted, per-request projection of a user derived from a
// validated token or a fresh credential check. It is never persisted.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// Principal is the tagged per-request actor: either anonymous (no credential
// supplied, or one that failed validation) or an authenticated identity.
// Callers branch on Authenticated instead of downcasting.
type Principal struct {
	Authenticated bool
	Identity      Identity
}

// Anonymous is the principal for requests without a usable bearer token.
var Anonymous = Principal{}

// AuthenticatedPrincipal wraps a resolved identity into a principal.
func AuthenticatedPrincipal(id Identity) Principal {
	return Principal{Authenticated: true, Identity: id}
}

// HasRole reports whether the principal is authenticated with the given role.
// Anonymous principals hold no role.
func (p Principal) HasRole(role Role) bool {
	return p.Authenticated && p.Identity.Role == role
}

// IdentityOf projects a stored user into its trusted identity summary.
func IdentityOf(u *User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Enabled:  u.Enabled,
	}
}
