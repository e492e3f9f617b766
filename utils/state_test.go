package utils

import (
	"encoding/hex"
	"testing"
)

func TestGenerateStateToken(t *testing.T) {
	state, err := GenerateStateToken()
	if err != nil {
		t.Fatalf("GenerateStateToken failed: %v", err)
	}
	if state == "" {
		t.Fatal("state should not be empty")
	}
	if len(state) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(state))
	}
	if _, err := hex.DecodeString(state); err != nil {
		t.Errorf("state is not valid hex: %v", err)
	}
}

func TestGenerateStateTokenDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		state, err := GenerateStateToken()
		if err != nil {
			t.Fatalf("GenerateStateToken failed: %v", err)
		}
		if seen[state] {
			t.Fatalf("duplicate state generated: %s", state)
		}
		seen[state] = true
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("short"); got != "****" {
		t.Errorf("Expected **** for short value, got %s", got)
	}
	if got := MaskValue("abcdefghijkl"); got != "abcd****ijkl" {
		t.Errorf("Expected abcd****ijkl, got %s", got)
	}
}
