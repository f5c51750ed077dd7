package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/password"
	"github.com/innowise/auth-service/internal/core/ports"
	"github.com/innowise/auth-service/internal/core/token"
)

const tokenTypeBearer = "Bearer"

// AuthService implements the authentication decision flow: registration,
// login, refresh, and stateless access-token validation.
type AuthService struct {
	repo       ports.AuthRepository
	hasher     password.Hasher
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	limiter    ports.LoginLimiter  // optional
	audit      ports.AuditRecorder // optional
	log        zerolog.Logger
}

// NewAuthService constructs an AuthService. limiter and audit may be nil;
// throttling and audit recording are then skipped.
func NewAuthService(
	repo ports.AuthRepository,
	hasher password.Hasher,
	codec *token.Codec,
	accessTTL, refreshTTL time.Duration,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		hasher:     hasher,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		limiter:    limiter,
		audit:      audit,
		log:        log,
	}
}

// Register creates a new USER-role record with all status flags set.
// Conflict precedence is deterministic: the username check must pass before
// the email check is issued.
func (s *AuthService) Register(ctx context.Context, username, email, plain string) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:              username,
		Email:                 email,
		PasswordHash:          hash,
		Role:                  domain.RoleUser,
		Enabled:               true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,
		CredentialsNonExpired: true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{Username: created.Username, UserID: created.ID, Action: domain.AuditRegister})
	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("credentials created")
	return created, nil
}

// Login verifies credentials and issues both token kinds carrying the user's
// current id and role. The not-found check runs before password verification,
// mirroring the upstream service contract.
func (s *AuthService) Login(ctx context.Context, username, plain string) (*ports.TokenPair, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable, proceeding")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(plain, user.PasswordHash) {
		if s.limiter != nil {
			_ = s.limiter.Failure(ctx, username)
		}
		s.record(domain.AuditEvent{Username: username, UserID: user.ID, Action: domain.AuditLoginFailure, Detail: "bad password"})
		return nil, domain.ErrLoginFailed
	}

	if s.limiter != nil {
		_ = s.limiter.Success(ctx, username)
	}

	pair, err := s.issuePair(domain.IdentityOf(user))
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{Username: user.Username, UserID: user.ID, Action: domain.AuditLoginSuccess})
	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return pair, nil
}

// Refresh validates the refresh token and issues a new access token using the
// subject's current store role, so a promotion takes effect on the next
// refresh. The refresh token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.codec.Parse(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshRejected, err)
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	identity := domain.IdentityOf(user)
	access, err := s.codec.Issue(identity, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	s.record(domain.AuditEvent{Username: user.Username, UserID: user.ID, Action: domain.AuditRefresh})
	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		Identity:     identity,
	}, nil
}

// ValidateAccess validates an access token and re-resolves the subject to
// confirm the account still exists and to fetch its current role and status.
// ErrUserNotFound is always surfaced distinctly; any other resolution failure
// is folded into ErrTokenValidation.
func (s *AuthService) ValidateAccess(ctx context.Context, accessToken string) (domain.Identity, error) {
	claims, err := s.codec.Parse(accessToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrAccessRejected, err)
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, err
		}
		s.log.Error().Err(err).Str("username", claims.Subject).Msg("subject resolution failed")
		return domain.Identity{}, domain.ErrTokenValidation
	}

	return domain.IdentityOf(user), nil
}

func (s *AuthService) issuePair(id domain.Identity) (*ports.TokenPair, error) {
	access, err := s.codec.Issue(id, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(id, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		Identity:     id,
	}, nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Record(event)
}
