// Package token implements the signed bearer-token codec. It is the only
// component that touches the signing secret.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/innowise/auth-service/internal/core/domain"
)

// Codec-level failures. The service layer translates these into its own
// access/refresh rejection errors before they reach a caller.
var (
	// ErrTokenMalformed covers parse failures, bad signatures, unsupported
	// signing algorithms, and tokens without an expiry claim.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired means the signature verified but exp is not in the future.
	ErrTokenExpired = errors.New("token expired")

	// ErrClaimMissing means a required claim is absent or of the wrong type.
	ErrClaimMissing = errors.New("token claim missing")
)

// Claims is the typed payload of a validated token. All timestamps are epoch
// milliseconds, matching the wire contract.
type Claims struct {
	Subject   string // username
	UserID    int64
	Role      domain.Role
	IssuedAt  int64
	ExpiresAt int64
}

// Codec issues and validates HS256-signed compact tokens.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec returns a Codec signing and verifying with the given shared secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret, now: time.Now}
}

// Issue builds and signs a token asserting the identity for ttl. Timestamps
// are written as epoch milliseconds.
func (c *Codec) Issue(id domain.Identity, ttl time.Duration) (string, error) {
	now := c.now().UnixMilli()
	claims := jwt.MapClaims{
		"sub":    id.Username,
		"userId": id.UserID,
		"role":   string(id.Role),
		"iat":    now,
		"exp":    now + ttl.Milliseconds(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse verifies the signature and expiry of a compact token and decodes its
// claims exactly once.
//
// Failure order: anything that prevents trusting the payload (bad format, bad
// signature, foreign algorithm, missing exp) is ErrTokenMalformed; a trusted
// payload whose exp <= now is ErrTokenExpired (strict boundary: a token is
// already expired at the exact instant of its expiry); a trusted, unexpired
// payload missing sub, userId, or role is ErrClaimMissing.
func (c *Codec) Parse(compact string) (Claims, error) {
	raw := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(compact, raw, c.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// exp/iat are epoch ms, not the seconds the library expects;
		// expiry is enforced below instead.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	exp, ok := numericClaim(raw, "exp")
	if !ok {
		return Claims{}, fmt.Errorf("%w: no expiry", ErrTokenMalformed)
	}
	if exp <= c.now().UnixMilli() {
		return Claims{}, ErrTokenExpired
	}

	return decodeClaims(raw, exp)
}

func (c *Codec) keyfunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return c.secret, nil
}

// decodeClaims projects the raw claim map into the typed Claims struct,
// validating presence and type of every required claim.
func decodeClaims(raw jwt.MapClaims, exp int64) (Claims, error) {
	sub, ok := raw["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, fmt.Errorf("%w: sub", ErrClaimMissing)
	}

	userID, ok := numericClaim(raw, "userId")
	if !ok {
		return Claims{}, fmt.Errorf("%w: userId", ErrClaimMissing)
	}

	roleStr, ok := raw["role"].(string)
	if !ok || !domain.Role(roleStr).Valid() {
		return Claims{}, fmt.Errorf("%w: role", ErrClaimMissing)
	}

	// iat is informational; tolerate its absence in foreign tokens.
	iat, _ := numericClaim(raw, "iat")

	return Claims{
		Subject:   sub,
		UserID:    userID,
		Role:      domain.Role(roleStr),
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}

// numericClaim reads an integer claim that may arrive as float64 (JSON
// decoding) or as the int64 it was issued with.
func numericClaim(raw jwt.MapClaims, name string) (int64, bool) {
	switch v := raw[name].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
