package domain

import "errors"

// Registration conflicts, user-correctable and reported with the field named.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)

// ErrUserNotFound means the referenced account does not exist in the store.
// It is never masked by the token-validation catch-all.
var ErrUserNotFound = errors.New("user not found")

// ErrLoginFailed covers bad credentials. The message is deliberately generic;
// which internal check failed is not revealed to the caller.
var ErrLoginFailed = errors.New("incorrect username or password")

// Token failures as seen at the service boundary. Codec internals
// (ErrTokenMalformed, ErrTokenExpired, ErrClaimMissing) are translated into
// these before they reach a caller.
var (
	ErrAccessRejected  = errors.New("access token rejected")
	ErrRefreshRejected = errors.New("refresh token rejected")
)

// ErrTokenValidation is the catch-all for validate-path failures other than
// ErrUserNotFound.
var ErrTokenValidation = errors.New("failed to validate token")

// ErrTooManyAttempts indicates the login limiter has temporarily locked the
// account out after repeated failures.
var ErrTooManyAttempts = errors.New("too many login attempts")
