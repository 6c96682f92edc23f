package project

import (
	"strings"

	"enumkit/pkg/enum"
)

//go:generate go run enumkit/cmd/enumgen generate --type Transform --trimprefix Transform --transform lower

// Transform rewrites member identifiers into their rendered names.
type Transform uint8

const (
	TransformNone Transform = iota
	TransformLower
	TransformUpper
	TransformTitle
	TransformSnake
	TransformKebab
)

// ParseTransform matches s against the rendered transform names.
// The empty string means TransformNone.
func ParseTransform(s string) (Transform, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TransformNone, true
	}
	for _, t := range enum.Values[Transform]() {
		if t.String() == s {
			return t, true
		}
	}
	return TransformNone, false
}

// TransformNames lists the accepted spellings for help texts.
func TransformNames() []string {
	values := enum.Values[Transform]()
	out := make([]string, len(values))
	for i, t := range values {
		out[i] = t.String()
	}
	return out
}
