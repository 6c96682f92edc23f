package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	orig := Version
	t.Cleanup(func() { Version = orig })

	cases := map[string]string{
		"0.1.0-dev":     "0.1.0-dev",
		"1.2.3":         "1.2.3",
		"1.2.3+build.7": "1.2.3+build.7",
		"nightly":       "nightly",
	}
	for in, want := range cases {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLine(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	origCommit, origDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = origCommit, origDate })

	GitCommit, BuildDate = "abc123", "2024-01-15"
	line := Line()
	for _, want := range []string{"enumgen ", "(abc123)", "built 2024-01-15"} {
		if !strings.Contains(line, want) {
			t.Fatalf("Line() = %q, missing %q", line, want)
		}
	}
}
