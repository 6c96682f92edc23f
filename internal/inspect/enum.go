package inspect

import (
	"enumkit/internal/source"
	"enumkit/pkg/enum"
)

// Member is one declared constant of the inspected type.
type Member struct {
	Name  string
	Value Value
	Span  source.Span
	Doc   string // first line of the doc or line comment
	Alias string // canonical name when an earlier constant has the same value
}

// Enum is the inspection result for one type. It is plain data so that the
// cache can store it.
type Enum struct {
	Package string // package name
	PkgPath string
	Dir     string
	Type    string
	Basic   string // underlying kind, e.g. "uint8"
	Signed  bool
	Span    source.Span // type declaration
	File    string      // file declaring the type
	Members []Member    // declaration order, aliases included
	Window  *enum.Window
	// External is set when a member value is computed from constants of
	// another package. Such results depend on more than the package's own
	// files.
	External bool
}

// Canonical returns the members that are not aliases, in declaration order.
func (e *Enum) Canonical() []Member {
	out := make([]Member, 0, len(e.Members))
	for _, m := range e.Members {
		if m.Alias == "" {
			out = append(out, m)
		}
	}
	return out
}

// Count is the number of distinct member values.
func (e *Enum) Count() int {
	n := 0
	for _, m := range e.Members {
		if m.Alias == "" {
			n++
		}
	}
	return n
}
