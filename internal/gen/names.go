package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"enumkit/internal/project"
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
	titleCaser = cases.Title(language.Und)
)

// DisplayName is the string String() returns for a member identifier.
func DisplayName(ident, trimPrefix string, t project.Transform) string {
	name := ident
	if trimPrefix != "" && name != trimPrefix {
		name = strings.TrimPrefix(name, trimPrefix)
	}
	switch t {
	case project.TransformLower:
		return lowerCaser.String(strings.Join(Words(name), ""))
	case project.TransformUpper:
		return upperCaser.String(strings.Join(Words(name), ""))
	case project.TransformTitle:
		return titleCaser.String(lowerCaser.String(strings.Join(Words(name), " ")))
	case project.TransformSnake:
		return lowerCaser.String(strings.Join(Words(name), "_"))
	case project.TransformKebab:
		return lowerCaser.String(strings.Join(Words(name), "-"))
	default:
		return name
	}
}

// Words splits an identifier at underscores and case changes:
// "HTTPServer" -> [HTTP Server], "max_retry2Count" -> [max retry2 Count].
func Words(ident string) []string {
	runes := []rune(ident)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if r == '_' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		if unicode.IsUpper(r) {
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(i)
				start = i
			}
		}
	}
	flush(len(runes))
	return words
}
