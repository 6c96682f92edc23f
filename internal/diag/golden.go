package diag

import (
	"fmt"
	"sort"
	"strings"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Where    string
	Message  string
}

// FormatShort renders diagnostics one per line in a stable order:
//
//	error INS3001 pkg/fruit.go:3:6 type "Fruit" not found
//
// Notes follow their diagnostic when includeNotes is set. Multi-line
// messages are folded. The result is empty when diags is.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Primary, sorted[j].Primary
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})

	lines := make([]string, 0, len(sorted))
	for _, d := range sorted {
		lines = append(lines, render(shortDiagnostic{
			Severity: strings.ToLower(d.Severity.String()),
			Code:     d.Code.ID(),
			Where:    d.Primary.String(),
			Message:  d.Message,
		}))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, render(shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Where:    n.Span.String(),
				Message:  n.Msg,
			}))
		}
	}
	return strings.Join(lines, "\n")
}

func render(d shortDiagnostic) string {
	msg := strings.Join(strings.Fields(d.Message), " ")
	return fmt.Sprintf("%s %s %s %s", d.Severity, d.Code, d.Where, msg)
}
