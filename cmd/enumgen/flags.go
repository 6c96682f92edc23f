package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"enumkit/internal/diag"
	"enumkit/pkg/enum"
)

func errInvalidFlag(flag, value, expected string) error {
	return fmt.Errorf("invalid %s value %q (expected %s)", flag, value, expected)
}

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	minSeverity    diag.Severity
	ui             uiMode
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	root := cmd.Root().PersistentFlags()
	var g globalFlags
	var err error
	if g.quiet, err = root.GetBool("quiet"); err != nil {
		return g, err
	}
	if g.timings, err = root.GetBool("timings"); err != nil {
		return g, err
	}
	if g.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return g, err
	}
	if g.diagFormat, err = root.GetString("diag-format"); err != nil {
		return g, err
	}
	switch g.diagFormat {
	case "pretty", "json", "sarif":
	default:
		return g, errInvalidFlag("--diag-format", g.diagFormat, "pretty|json|sarif")
	}
	sevValue, err := root.GetString("min-severity")
	if err != nil {
		return g, err
	}
	if g.minSeverity, err = diag.ParseSeverity(sevValue); err != nil {
		return g, err
	}
	if g.quiet {
		g.minSeverity = diag.SevError
	}
	uiValue, err := root.GetString("ui")
	if err != nil {
		return g, err
	}
	if g.ui, err = readUIMode(uiValue); err != nil {
		return g, err
	}
	return g, nil
}

// parseWindow reads "min,max" or "min:max".
func parseWindow(s string) (*enum.Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	sep := strings.IndexAny(s, ",:")
	if sep <= 0 {
		return nil, errInvalidFlag("--window", s, "min,max")
	}
	lo, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return nil, errInvalidFlag("--window", s, "min,max")
	}
	hi, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return nil, errInvalidFlag("--window", s, "min,max")
	}
	w := enum.Window{Min: lo, Max: hi}
	return &w, nil
}

// splitTypes accepts both repeated flags and comma-separated lists.
func splitTypes(values []string) []string {
	var out []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
