package whitelist

import (
	"testing"

	"go.uber.org/zap"
)

func TestIsTrusted(t *testing.T) {
	c := NewChecker([]string{"VM-HDFC", " ad-icici ", ""}, zap.NewNop())

	tests := []struct {
		sender string
		want   bool
	}{
		{"VM-HDFC", true},
		{"vm-hdfc", true},
		{"  VM-HDFC  ", true},
		{"AD-ICICI", true},
		{"AX-UNKWN", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.IsTrusted(tt.sender); got != tt.want {
			t.Errorf("IsTrusted(%q) = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

func TestEmptyCheckerTrustsNobody(t *testing.T) {
	c := NewChecker(nil, zap.NewNop())
	if c.IsTrusted("VM-HDFC") {
		t.Fatal("empty checker must not trust any sender")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	c := NewChecker([]string{"VM-HDFC"}, nil)
	if !c.IsTrusted("VM-HDFC") {
		t.Fatal("expected trusted sender")
	}
}
