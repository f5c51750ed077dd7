package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/innowise/auth-service/internal/core/domain"
)

var testIdentity = domain.Identity{
	UserID:   42,
	Username: "alice",
	Email:    "alice@example.com",
	Role:     domain.RoleUser,
}

func TestCodec_IssueParse_Roundtrip(t *testing.T) {
	c := NewCodec([]byte("secret"))

	compact, err := c.Issue(testIdentity, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := c.Parse(compact)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if claims.UserID != 42 {
		t.Fatalf("userId = %d, want 42", claims.UserID)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("role = %q, want USER", claims.Role)
	}
	if claims.ExpiresAt != claims.IssuedAt+time.Hour.Milliseconds() {
		t.Fatalf("exp %d is not iat %d + 1h", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestCodec_Parse_Expired(t *testing.T) {
	c := NewCodec([]byte("secret"))
	compact, err := c.Issue(testIdentity, time.Millisecond)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Move the verifier clock past the expiry instead of sleeping.
	c.now = func() time.Time { return time.Now().Add(time.Second) }

	if _, err := c.Parse(compact); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Parse_ExpiryBoundaryIsExpired(t *testing.T) {
	// A token whose exp equals the current instant is already expired:
	// the comparison is exp <= now, not exp < now.
	frozen := time.Now()
	c := NewCodec([]byte("secret"))
	c.now = func() time.Time { return frozen }

	compact, err := c.Issue(testIdentity, 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := c.Parse(compact); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at exact boundary, got %v", err)
	}
}

func TestCodec_Parse_WrongSecret(t *testing.T) {
	issuer := NewCodec([]byte("secret-a"))
	verifier := NewCodec([]byte("secret-b"))

	compact, err := issuer.Issue(testIdentity, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Parse(compact); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Parse_Garbage(t *testing.T) {
	c := NewCodec([]byte("secret"))
	if _, err := c.Parse("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Parse_ForeignAlgorithmRejected(t *testing.T) {
	c := NewCodec([]byte("secret"))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"sub":    "alice",
		"userId": 42,
		"role":   "USER",
		"exp":    time.Now().Add(time.Hour).UnixMilli(),
	})
	compact, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := c.Parse(compact); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for HS384 token, got %v", err)
	}
}

func TestCodec_Parse_MissingExpiry(t *testing.T) {
	c := NewCodec([]byte("secret"))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "alice",
		"userId": 42,
		"role":   "USER",
	})
	compact, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// A token without an expiry is never trusted, even with a valid signature.
	if _, err := c.Parse(compact); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for missing exp, got %v", err)
	}
}

func TestCodec_Parse_MissingClaims(t *testing.T) {
	c := NewCodec([]byte("secret"))
	exp := time.Now().Add(time.Hour).UnixMilli()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no subject", jwt.MapClaims{"userId": 42, "role": "USER", "exp": exp}},
		{"no userId", jwt.MapClaims{"sub": "alice", "role": "USER", "exp": exp}},
		{"no role", jwt.MapClaims{"sub": "alice", "userId": 42, "exp": exp}},
		{"unknown role", jwt.MapClaims{"sub": "alice", "userId": 42, "role": "ROOT", "exp": exp}},
		{"userId wrong type", jwt.MapClaims{"sub": "alice", "userId": "42", "role": "USER", "exp": exp}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims)
			compact, err := tok.SignedString([]byte("secret"))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if _, err := c.Parse(compact); !errors.Is(err, ErrClaimMissing) {
				t.Fatalf("expected ErrClaimMissing, got %v", err)
			}
		})
	}
}
