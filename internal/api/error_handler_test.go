package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innowise/auth-service/internal/core/domain"
)

func TestResolveError_Taxonomy(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	log := zerolog.Nop()

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"username conflict", domain.ErrUsernameTaken, http.StatusConflict, "username already taken"},
		{"email conflict", domain.ErrEmailTaken, http.StatusConflict, "email already taken"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"login failed", domain.ErrLoginFailed, http.StatusUnauthorized, "incorrect username or password"},
		{"access rejected", domain.ErrAccessRejected, http.StatusUnauthorized, "access token rejected"},
		{"refresh rejected", domain.ErrRefreshRejected, http.StatusUnauthorized, "refresh token rejected"},
		{"validation catch-all", domain.ErrTokenValidation, http.StatusBadRequest, "failed to validate token"},
		{"rate limited", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"store failure stays generic", errors.New("mongo: connection reset"), http.StatusInternalServerError, "unexpected error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := resolveError(tc.err, log, c)
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d", code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Fatalf("msg = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestResolveError_WrappedErrorsStillMap(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	// Service-layer wrapping must not break the status mapping.
	wrapped := errors.Join(domain.ErrRefreshRejected, errors.New("token expired"))
	code, _ := resolveError(wrapped, zerolog.Nop(), c)
	if code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", code)
	}
}
