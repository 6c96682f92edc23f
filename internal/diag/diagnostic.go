package diag

import (
	"enumkit/internal/source"
)

// Note adds context at a secondary location.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of the generator.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
