package source

import (
	"fmt"
	"go/token"
	"path/filepath"

	"fortio.org/safecast"
)

// Span points at a position inside a Go source file.
type Span struct {
	File string
	Line uint32 // 1-based, 0 when unknown
	Col  uint32 // 1-based, 0 when unknown
}

// FromPosition converts a go/token position. Invalid positions map to the
// zero Span.
func FromPosition(pos token.Position) Span {
	if !pos.IsValid() {
		return Span{File: pos.Filename}
	}
	line, err := safecast.Conv[uint32](pos.Line)
	if err != nil {
		line = 0
	}
	col, err := safecast.Conv[uint32](pos.Column)
	if err != nil {
		col = 0
	}
	return Span{File: normalizePath(pos.Filename), Line: line, Col: col}
}

// Empty reports whether the span carries no location at all.
func (s Span) Empty() bool {
	return s.File == "" && s.Line == 0
}

// Rel rewrites File relative to base when possible.
func (s Span) Rel(base string) Span {
	if s.File == "" || base == "" || !filepath.IsAbs(s.File) {
		return s
	}
	if rel, err := RelativePath(s.File, base); err == nil {
		s.File = rel
	}
	return s
}

func (s Span) String() string {
	switch {
	case s.File == "":
		return "-"
	case s.Line == 0:
		return s.File
	case s.Col == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}
