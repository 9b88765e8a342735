package utils

import "testing"

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken(32) error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("expected 64 hex chars for 32 bytes, got %d", len(token))
	}

	other, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken(32) error: %v", err)
	}
	if token == other {
		t.Error("two generated tokens should not collide")
	}
}

func TestGenerateSecureTokenRejectsBadLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := GenerateSecureToken(length); err == nil {
			t.Errorf("GenerateSecureToken(%d) should fail", length)
		}
	}
}
