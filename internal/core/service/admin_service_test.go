package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
)

func TestAdminService_Promote(t *testing.T) {
	repo := newStubAuthRepo()
	auth := newTestAuthService(repo)
	svc := NewAdminService(repo, nil, zerolog.Nop())

	registered, err := auth.Register(context.Background(), "bob", "b@x.com", "pw1234567")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	promoted, err := svc.Promote(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want ADMIN", promoted.Role)
	}
}

func TestAdminService_Promote_Idempotent(t *testing.T) {
	repo := newStubAuthRepo()
	auth := newTestAuthService(repo)
	svc := NewAdminService(repo, nil, zerolog.Nop())

	registered, _ := auth.Register(context.Background(), "bob", "b@x.com", "pw1234567")

	if _, err := svc.Promote(context.Background(), registered.ID); err != nil {
		t.Fatalf("first promote: %v", err)
	}
	again, err := svc.Promote(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("second promote: %v", err)
	}
	if again.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want ADMIN", again.Role)
	}
	if repo.updateRoleCalls != 1 {
		t.Fatalf("expected exactly one role write, got %d", repo.updateRoleCalls)
	}
}

func TestAdminService_Promote_NotFound(t *testing.T) {
	svc := NewAdminService(newStubAuthRepo(), nil, zerolog.Nop())

	if _, err := svc.Promote(context.Background(), 404); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
