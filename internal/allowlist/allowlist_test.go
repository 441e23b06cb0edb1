package allowlist

import (
	"testing"

	"go.uber.org/zap"
)

func TestIsAllowed(t *testing.T) {
	checker := NewChecker([]string{"Corp.Example", " trusted.org "}, zap.NewNop())

	tests := []struct {
		sender string
		want   bool
	}{
		{"boss@corp.example", true},
		{"boss@CORP.EXAMPLE", true},
		{"dev@mail.corp.example", true},
		{"dev@trusted.org", true},
		{"attacker@evil.example", false},
		{"attacker@corp.example.evil.example", false},
		{"not-an-address", false},
		{"two@ats@corp.example", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := checker.IsAllowed(tt.sender); got != tt.want {
			t.Errorf("IsAllowed(%q) = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

func TestIsAllowedEmptyList(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop())
	if checker.IsAllowed("anyone@anywhere.example") {
		t.Error("empty allowlist must not allow anyone")
	}
}
