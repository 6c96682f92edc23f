package inspect

import (
	"go/build"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"enumkit/internal/source"
)

// IsLocalPattern reports whether pattern names a directory rather than an
// import path or a wildcard.
func IsLocalPattern(pattern string) bool {
	if strings.Contains(pattern, "...") {
		return false
	}
	return pattern == "." || pattern == ".." || filepath.IsAbs(pattern) ||
		strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../")
}

// SourceFiles lists the Go files of the package in dir, as the go command
// would select them for the given tags, with their contents. Files for which
// skip reports true are left out; callers use it to drop their own output so
// that rewriting it does not change the result. Other generated files stay:
// they may declare members.
func SourceFiles(dir string, tags []string, skip func(content []byte) bool) (*source.FileSet, error) {
	ctxt := build.Default
	ctxt.BuildTags = append(slices.Clone(ctxt.BuildTags), tags...)
	bp, err := ctxt.ImportDir(dir, build.ImportComment)
	if err != nil {
		return nil, err
	}
	names := append(slices.Clone(bp.GoFiles), bp.CgoFiles...)
	slices.Sort(names)

	fs := source.NewFileSet()
	for _, name := range names {
		path := filepath.Join(bp.Dir, name)
		// #nosec G304 -- path comes from go/build
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if skip != nil && skip(content) {
			continue
		}
		fs.Add(path, content)
	}
	return fs, nil
}
