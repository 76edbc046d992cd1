package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerifyAccessToken_Valid(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signHS256(t, "secret", jwt.MapClaims{
		"uid": "u1",
		"iss": "auth-service",
		"exp": exp.Unix(),
	})

	claims, err := v.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("expected u1, got %q", claims.UserID)
	}
	if !claims.Exp.Equal(exp) {
		t.Fatalf("expected exp %v, got %v", exp, claims.Exp)
	}
}

func TestVerifyAccessToken_SubjectFallback(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	token := signHS256(t, "secret", jwt.MapClaims{
		"sub": "u2",
		"iss": "auth-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if claims.UserID != "u2" {
		t.Fatalf("expected subject fallback, got %q", claims.UserID)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	token := signHS256(t, "secret", jwt.MapClaims{
		"uid": "u1",
		"iss": "auth-service",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := v.VerifyAccessToken(token)
	if err == nil || err.Error() != "auth (token_expired): token is expired" {
		t.Fatalf("expected token_expired, got %v", err)
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	token := signHS256(t, "other", jwt.MapClaims{
		"uid": "u1",
		"iss": "auth-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.VerifyAccessToken(token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerifyAccessToken_WrongAlgRejected(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")

	// HS512 signed with the shared secret still fails the pinned method.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"uid": "u1",
		"iss": "auth-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := v.VerifyAccessToken(s); err == nil {
		t.Fatalf("expected error for wrong alg")
	}
}

func TestVerifyAccessToken_MissingIdentity(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	token := signHS256(t, "secret", jwt.MapClaims{
		"iss": "auth-service",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.VerifyAccessToken(token); err == nil {
		t.Fatalf("expected error for missing uid and sub")
	}
}

func TestVerifyAccessToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")
	token := signHS256(t, "secret", jwt.MapClaims{
		"uid": "u1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.VerifyAccessToken(token); err == nil {
		t.Fatalf("expected error for wrong issuer")
	}
}

func TestVerifyAccessToken_NoConfiguredIssuer_SkipsIssuerCheck(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "")
	token := signHS256(t, "secret", jwt.MapClaims{
		"uid": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.VerifyAccessToken(token); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	t.Parallel()

	v := NewJWTVerifier("secret", "auth-service")

	if _, err := v.VerifyAccessToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
