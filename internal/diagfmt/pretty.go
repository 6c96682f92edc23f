package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"enumkit/internal/diag"
	"enumkit/internal/source"
)

type palette struct {
	err, warn, info, code, loc, gutter, caret, note func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		loc:    mk(color.FgWhite, color.Faint),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err(s.String())
	case diag.SevWarning:
		return p.warn(s.String())
	default:
		return p.info(s.String())
	}
}

// Pretty writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  12 | const Pluto Planet = 900
//	     |       ^
//	  note: <path>:<line>:<col>: <note>
//
// Items are printed in Bag order; call bag.Sort first. Source lines are
// read through fs, loading files on first use.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.loc(spanLabel(d.Primary, opts.PathMode, opts.BaseDir)),
			p.severity(d.Severity), p.code(d.Code.ID()), d.Message)
		writeSnippet(w, p, fs, d.Primary, opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			loc := ""
			if !n.Span.Empty() && n.Span != d.Primary {
				loc = spanLabel(n.Span, opts.PathMode, opts.BaseDir) + ": "
			}
			fmt.Fprintf(w, "  %s %s%s\n", p.note("note:"), p.loc(loc), n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span, context int8) {
	if fs == nil || sp.File == "" || sp.Line == 0 {
		return
	}
	f, ok := fs.Get(sp.File)
	if !ok {
		var err error
		if f, err = fs.Load(sp.File); err != nil {
			return
		}
	}
	first := sp.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	width := len(fmt.Sprint(sp.Line))
	for n := first; n <= sp.Line; n++ {
		fmt.Fprintf(w, "  %s %s\n", p.gutter(fmt.Sprintf("%*d |", width, n)), expandTabs(f.Line(n)))
	}
	if sp.Col == 0 {
		return
	}
	line := f.Line(sp.Line)
	col := int(sp.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	fmt.Fprintf(w, "  %s %s%s\n", p.gutter(strings.Repeat(" ", width)+" |"), strings.Repeat(" ", pad), p.caret("^"))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
