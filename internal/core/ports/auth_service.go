package ports

import (
	"context"

	"github.com/innowise/auth-service/internal/core/domain"
)

// TokenPair carries the two token kinds issued on login and refresh.
type TokenPair struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	Identity     domain.Identity `json:"identity"`
}

// AuthService is the authentication decision flow: it turns external requests
// into identity and token outcomes.
type AuthService interface {
	// Register creates a new USER-role record. Conflict precedence is
	// deterministic: username is checked before email.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh validates a refresh token and issues a new access token using
	// the subject's current store role. The refresh token is returned
	// unchanged; refresh tokens are not rotated.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ValidateAccess validates an access token and re-resolves the subject,
	// returning the trusted identity summary.
	ValidateAccess(ctx context.Context, accessToken string) (domain.Identity, error)
}

// AdminService covers privileged account management.
type AdminService interface {
	// Promote raises a user to ADMIN. Idempotent: promoting an ADMIN returns
	// the record without a store write. Already-issued tokens keep their old
	// role claim until they expire or are refreshed.
	Promote(ctx context.Context, userID int64) (*domain.User, error)
}
