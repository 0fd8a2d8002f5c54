package auth

import (
	"errors"
	"testing"
	"time"
)

func TestLoginIssuesToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := Login(secret, "operator", "anything")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "operator" {
		t.Errorf("expected username 'operator', got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Error("expected a JTI")
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	tests := []struct {
		username, password string
	}{
		{"", ""},
		{"operator", ""},
		{"", "secret"},
	}

	for _, tt := range tests {
		_, err := Login("secret", tt.username, tt.password)
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("Login(%q, %q) error = %v, want ErrMissingCredentials", tt.username, tt.password, err)
		}
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", "operator")

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestSessionExpiry(t *testing.T) {
	token, _ := GenerateToken("test", "operator")
	claims, _ := ValidateToken("test", token)

	diff := time.Now().Add(SessionExpiry).Sub(claims.ExpiresAt.Time)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
	if since := time.Since(claims.LoginTime()); since < 0 || since > 5*time.Second {
		t.Errorf("unexpected login time %v", claims.LoginTime())
	}
}

func TestNewSecretRandom(t *testing.T) {
	a, err := NewSecret()
	if err != nil {
		t.Fatalf("NewSecret: %v", err)
	}
	b, _ := NewSecret()
	if a == b || len(a) != 64 {
		t.Errorf("expected two distinct 64-char secrets, got %q and %q", a, b)
	}
}
