package parser

import (
	"strings"
	"testing"
)

func TestDepthFromPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   int
	}{
		{prefix: "", want: 0},
		{prefix: "├", want: 0},
		{prefix: "│   └", want: 1},
		{prefix: "│   │   ", want: 2},
		{prefix: "│       └", want: 2},
		{prefix: "\u00a0\u00a0\u00a0\u00a0", want: 1},
		{prefix: "     ", want: 1},
		{prefix: "        ", want: 2},
		{prefix: "\t\t", want: 2},
		{prefix: "\t    ", want: 2},
		{prefix: "|   |   ", want: 2},
		{prefix: "    ", want: 1},
	}

	for _, tt := range tests {
		if got := DepthFromPrefix(tt.prefix); got != tt.want {
			t.Errorf("DepthFromPrefix(%q) = %d, want %d", tt.prefix, got, tt.want)
		}
	}
}

// TestDepthCountsBars checks that k bars with no tabs or four-space runs give depth k
func TestDepthCountsBars(t *testing.T) {
	for k := 0; k <= 8; k++ {
		prefix := strings.Repeat("│  ", k)
		if got := DepthFromPrefix(prefix); got != k {
			t.Errorf("DepthFromPrefix(%q) = %d, want %d", prefix, got, k)
		}
		prefix = strings.Repeat("│   ", k)
		if got := DepthFromPrefix(prefix); got != k {
			t.Errorf("DepthFromPrefix(%q) = %d, want %d", prefix, got, k)
		}
	}
}

func TestLineDepth(t *testing.T) {
	if got := LineDepth("", false); got != 0 {
		t.Errorf("root line depth = %d, want 0", got)
	}
	if got := LineDepth("├", true); got != 1 {
		t.Errorf("top-level branch depth = %d, want 1", got)
	}
	if got := LineDepth("│   └", true); got != 2 {
		t.Errorf("nested branch depth = %d, want 2", got)
	}
	if got := LineDepth("    ", false); got != 1 {
		t.Errorf("indented line depth = %d, want 1", got)
	}
}
