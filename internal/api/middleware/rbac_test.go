package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/innowise/auth-service/internal/core/domain"
)

func runRequireRole(t *testing.T, principal *domain.Principal, roles ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	called := false
	handler := RequireRole(roles...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireRole_Allows(t *testing.T) {
	admin := domain.AuthenticatedPrincipal(domain.Identity{UserID: 1, Username: "root", Role: domain.RoleAdmin})

	rec, called := runRequireRole(t, &admin, domain.RoleAdmin)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_ForbidsWrongRole(t *testing.T) {
	user := domain.AuthenticatedPrincipal(domain.Identity{UserID: 2, Username: "alice", Role: domain.RoleUser})

	rec, called := runRequireRole(t, &user, domain.RoleAdmin)
	if called {
		t.Fatalf("next handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_RejectsAnonymous(t *testing.T) {
	anon := domain.Anonymous

	rec, called := runRequireRole(t, &anon, domain.RoleAdmin)
	if called {
		t.Fatalf("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_RejectsWhenAuthMiddlewareMissing(t *testing.T) {
	rec, called := runRequireRole(t, nil, domain.RoleAdmin)
	if called {
		t.Fatalf("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
