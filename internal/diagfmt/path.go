package diagfmt

import (
	"path/filepath"
	"strings"

	"enumkit/internal/source"
)

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if base == "" {
			return path
		}
		if rel, err := source.RelativePath(path, base); err == nil {
			return rel
		}
		return path
	default:
		if base == "" || !filepath.IsAbs(path) {
			return path
		}
		rel, err := source.RelativePath(path, base)
		if err != nil || strings.HasPrefix(rel, "..") {
			return path
		}
		return rel
	}
}

func spanLabel(sp source.Span, mode PathMode, base string) string {
	sp.File = formatPath(sp.File, mode, base)
	return sp.String()
}
