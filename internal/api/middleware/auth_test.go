package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/innowise/auth-service/internal/core/domain"
	"github.com/innowise/auth-service/internal/core/ports"
)

// stubAuthService resolves one fixed token to one fixed identity.
type stubAuthService struct {
	token    string
	identity domain.Identity
}

func (s *stubAuthService) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Refresh(context.Context, string) (*ports.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) ValidateAccess(_ context.Context, token string) (domain.Identity, error) {
	if token == s.token {
		return s.identity, nil
	}
	return domain.Identity{}, domain.ErrAccessRejected
}

func runAuth(t *testing.T, svc ports.AuthService, header string) (domain.Principal, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal domain.Principal
	handler := Auth(svc)(func(c echo.Context) error {
		principal = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return principal, rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := &stubAuthService{
		token:    "good-token",
		identity: domain.Identity{UserID: 1, Username: "alice", Role: domain.RoleAdmin},
	}

	principal, rec := runAuth(t, svc, "Bearer good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !principal.Authenticated {
		t.Fatalf("expected authenticated principal")
	}
	if principal.Identity.Username != "alice" || principal.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", principal.Identity)
	}
}

func TestAuthMiddleware_MissingHeaderIsAnonymous(t *testing.T) {
	principal, rec := runAuth(t, &stubAuthService{}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", rec.Code)
	}
	if principal.Authenticated {
		t.Fatalf("expected anonymous principal")
	}
}

func TestAuthMiddleware_NonBearerSchemeIsAnonymous(t *testing.T) {
	principal, _ := runAuth(t, &stubAuthService{token: "abc"}, "Token abc")
	if principal.Authenticated {
		t.Fatalf("expected anonymous principal for non-Bearer scheme")
	}
}

func TestAuthMiddleware_RejectedTokenIsAnonymous(t *testing.T) {
	svc := &stubAuthService{token: "good-token"}
	principal, rec := runAuth(t, svc, "Bearer bad-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", rec.Code)
	}
	if principal.Authenticated {
		t.Fatalf("expected anonymous principal for rejected token")
	}
}
