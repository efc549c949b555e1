package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	Version, Commit = "v1.2.3", "abc1234"
	t.Cleanup(func() { Version, Commit = "dev", "none" })

	got := String("linkbatch")
	if !strings.HasPrefix(got, "linkbatch v1.2.3 (commit abc1234, built ") {
		t.Errorf("String() = %q", got)
	}
	if !strings.HasSuffix(got, GoVersion+")") {
		t.Errorf("String() = %q, want go version suffix", got)
	}
}
