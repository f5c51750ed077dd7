package ports

import (
	"context"

	"github.com/innowise/auth-service/internal/core/domain"
)

// AuthRepository is the credential store: the durable mapping from
// username/email to user records. Lookups return domain.ErrUserNotFound when
// no record matches; any other error is a store failure that callers do not
// retry.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create persists a new record and returns it with its assigned ID and
	// timestamps. A uniqueness violation surfaces as ErrUsernameTaken or
	// ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets the role of an existing record and returns the updated
	// record.
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}
