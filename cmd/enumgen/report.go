package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumkit/internal/diag"
	"enumkit/internal/diagfmt"
	"enumkit/internal/observ"
	"enumkit/internal/source"
	"enumkit/internal/version"
)

// printDiagnostics drops diagnostics below --min-severity and writes the rest
// in the --diag-format. Pretty output goes to stderr, machine formats to
// stdout.
func printDiagnostics(cmd *cobra.Command, g globalFlags, bag *diag.Bag, base string, args []string) error {
	bag.Filter(g.minSeverity)
	switch g.diagFormat {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), bag, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			BaseDir:          base,
			Max:              g.maxDiagnostics,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(cmd.OutOrStdout(), bag, diagfmt.SarifRunMeta{
			ToolName:       "enumgen",
			ToolVersion:    version.Version,
			InvocationArgs: append([]string{cmd.CommandPath()}, args...),
		}, base)
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, source.NewFileSet(), diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			Context:   1,
			PathMode:  diagfmt.PathModeAuto,
			BaseDir:   base,
			ShowNotes: true,
		})
		return nil
	}
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprintln(w, timer.Summary())
}

func countSeverity(bag *diag.Bag, sev diag.Severity) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
