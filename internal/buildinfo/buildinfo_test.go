package buildinfo

import (
	"strings"
	"testing"
)

func TestShortPrefersVersion(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "abcdef0123456789"
	if got := Short(); got != "v1.2.3" {
		t.Fatalf("Short() = %q", got)
	}
	Version = "dev"
	if got := Short(); got != "abcdef012345" {
		t.Fatalf("Short() = %q, want truncated commit", got)
	}
}

func TestStringNamesBinary(t *testing.T) {
	if s := String(); !strings.HasPrefix(s, "wavefield ") {
		t.Fatalf("String() = %q", s)
	}
}
