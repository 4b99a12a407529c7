package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCodeLength(t *testing.T) {
	for _, length := range []int{4, 8, 16} {
		code, err := GenerateInviteCode(length)
		if err != nil {
			t.Fatalf("GenerateInviteCode(%d) returned error: %v", length, err)
		}
		if len(code) != length {
			t.Errorf("GenerateInviteCode(%d) returned %q (len %d)", length, code, len(code))
		}
	}
}

func TestGenerateInviteCodeDefaultsLength(t *testing.T) {
	code, err := GenerateInviteCode(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Errorf("expected default length 8, got %d", len(code))
	}
}

func TestGenerateInviteCodeAlphabet(t *testing.T) {
	code, err := GenerateInviteCode(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range code {
		if !strings.ContainsRune(inviteCodeAlphabet, r) {
			t.Errorf("code contains out-of-alphabet rune %q", r)
		}
	}
}

func TestGenerateInviteCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateInviteCode(8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("expected distinct codes across generations")
	}
}
