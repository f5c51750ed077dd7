package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/ports"
)

// AdminService implements privileged account management.
type AdminService struct {
	repo  ports.AuthRepository
	audit ports.AuditRecorder // optional
	log   zerolog.Logger
}

func NewAdminService(repo ports.AuthRepository, audit ports.AuditRecorder, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, audit: audit, log: log}
}

// Promote raises the user to ADMIN. Promoting an existing ADMIN is a no-op
// that returns the current record without a store write. Already-issued
// tokens keep their old role claim until they expire or are refreshed.
func (s *AdminService) Promote(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return user, nil
	}

	updated, err := s.repo.UpdateRole(ctx, userID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Username:  updated.Username,
			UserID:    updated.ID,
			Action:    domain.AuditPromote,
			Timestamp: time.Now().UTC(),
		})
	}
	s.log.Info().Int64("user_id", userID).Str("username", updated.Username).Msg("user promoted to admin")
	return updated, nil
}
