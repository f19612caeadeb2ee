package auth

import (
	"strings"
	"testing"
)

func TestJWTRoundtrip(t *testing.T) {
	jwt := NewJWT("test-secret")

	token, err := jwt.Generate(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected three-part token, got %q", token)
	}

	claims, err := jwt.Validate(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Exp <= claims.Iat {
		t.Error("expected expiry after issue time")
	}
}

func TestJWTValidateRejects(t *testing.T) {
	jwt := NewJWT("test-secret")
	token, err := jwt.Generate(42)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	parts := strings.Split(token, ".")

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"two parts", parts[0] + "." + parts[1]},
		{"tampered payload", parts[0] + ".eyJ1c2VySWQiOjk5OX0." + parts[2]},
		{"wrong secret", func() string {
			other, _ := NewJWT("other-secret").Generate(42)
			return other
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := jwt.Validate(tt.token); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}

	t.Run("wrong secret validator", func(t *testing.T) {
		if _, err := NewJWT("other-secret").Validate(token); err == nil {
			t.Error("expected validation to fail")
		}
	})
}
