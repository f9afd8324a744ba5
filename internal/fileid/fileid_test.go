package fileid

import (
	"strings"
	"testing"
)

func TestFileDocID(t *testing.T) {
	a := FileDocID("/docs/report.txt")
	b := FileDocID("/docs/report.txt")
	if a != b {
		t.Errorf("same path produced different IDs: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "file:") {
		t.Errorf("missing prefix: %s", a)
	}
	if FileDocID("/docs/other.txt") == a {
		t.Error("different paths produced the same ID")
	}
	// Clean-equivalent paths map to the same document.
	if FileDocID("/docs//report.txt") != a {
		t.Error("unclean path produced a different ID")
	}
	if FileDocID("/docs/sub/../report.txt") != a {
		t.Error("dot-dot path produced a different ID")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/docs/report.txt", "/docs/report.txt"},
		{"/docs//report.txt", "/docs/report.txt"},
		{"/docs/./report.txt", "/docs/report.txt"},
		{"/docs/sub/../report.txt", "/docs/report.txt"},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
