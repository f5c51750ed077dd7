// Package seed creates the initial admin account at startup.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/password"
	"github.com/innowise/auth-service/internal/core/ports"
)

// Admin ensures an ADMIN account exists when seed credentials are configured.
// With incomplete credentials seeding is skipped; an existing username or
// email also skips silently, making the seed safe to run on every start.
func Admin(ctx context.Context, repo ports.AuthRepository, hasher password.Hasher, username, email, plain string, log zerolog.Logger) error {
	if username == "" || email == "" || plain == "" {
		log.Info().Msg("admin seed skipped: missing admin credentials")
		return nil
	}

	taken, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}
	if !taken {
		taken, err = repo.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("admin seed: %w", err)
		}
	}
	if taken {
		return nil
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:              username,
		Email:                 email,
		PasswordHash:          hash,
		Role:                  domain.RoleAdmin,
		Enabled:               true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if _, err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}

	log.Info().Str("username", username).Msg("admin user created")
	return nil
}
