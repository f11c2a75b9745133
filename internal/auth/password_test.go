package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"too short", "short", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"minimum length", "12345678", nil},
		{"normal", "correct horse battery", nil},
		{"over bcrypt limit", strings.Repeat("a", 73), ErrPasswordTooLong},
		{"at bcrypt limit", strings.Repeat("a", 72), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter22hunter22" {
		t.Fatal("hash must not equal the password")
	}
	if !VerifyPassword("hunter22hunter22", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPasswordRejectsPolicyViolations(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("got %v, want ErrPasswordTooShort", err)
	}
}
