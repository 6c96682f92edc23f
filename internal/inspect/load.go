package inspect

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"enumkit/internal/diag"
	"enumkit/internal/source"
)

// Package is the part of a loaded package that inspection needs.
type Package struct {
	Name    string
	PkgPath string
	Dir     string
	Fset    *token.FileSet
	Syntax  []*ast.File
	Types   *types.Package
	Info    *types.Info
}

// Loader loads packages with go/packages.
type Loader struct {
	Dir  string   // working directory for patterns; "" is the process cwd
	Tags []string // build tags
	Env  []string // nil inherits the process environment
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedSyntax

// Load resolves pattern to exactly one package. Problems are reported to r
// and yield a nil package.
func (l *Loader) Load(ctx context.Context, pattern string, r diag.Reporter) *Package {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     l.Dir,
		Env:     l.Env,
		Tests:   false,
	}
	if len(l.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(l.Tags, ",")}
	}
	if cfg.Env == nil {
		cfg.Env = os.Environ()
	}

	at := source.Span{File: pattern}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		diag.ReportError(r, diag.LoadPackageError, at, fmt.Sprintf("loading %s: %v", pattern, err)).Emit()
		return nil
	}
	switch len(pkgs) {
	case 0:
		diag.ReportError(r, diag.LoadNoPackage, at, fmt.Sprintf("pattern %s matched no package", pattern)).Emit()
		return nil
	case 1:
	default:
		b := diag.ReportError(r, diag.LoadManyPackages, at,
			fmt.Sprintf("pattern %s matched %d packages, expected one", pattern, len(pkgs)))
		for _, p := range pkgs {
			b.WithNote(at, "matched "+p.PkgPath)
		}
		b.Emit()
		return nil
	}

	p := pkgs[0]
	if len(p.Errors) > 0 {
		for _, e := range p.Errors {
			diag.ReportError(r, diag.LoadPackageError, spanOfError(e), e.Msg).Emit()
		}
		return nil
	}
	if p.Types == nil || len(p.Syntax) == 0 {
		diag.ReportError(r, diag.LoadNoPackage, at, fmt.Sprintf("pattern %s has no Go files", pattern)).Emit()
		return nil
	}

	dir := ""
	if len(p.GoFiles) > 0 {
		dir = filepath.Dir(p.GoFiles[0])
	}
	return &Package{
		Name:    p.Name,
		PkgPath: p.PkgPath,
		Dir:     dir,
		Fset:    p.Fset,
		Syntax:  p.Syntax,
		Types:   p.Types,
		Info:    p.TypesInfo,
	}
}

// spanOfError parses the "file:line:col" position of a packages.Error.
func spanOfError(e packages.Error) source.Span {
	pos := e.Pos
	if pos == "" || pos == "-" {
		return source.Span{}
	}
	parts := strings.Split(pos, ":")
	var tp token.Position
	// the file part may itself contain ':' on Windows
	for len(parts) > 1 {
		n, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			break
		}
		tp.Column, tp.Line = tp.Line, n
		parts = parts[:len(parts)-1]
	}
	tp.Filename = strings.Join(parts, ":")
	return source.FromPosition(tp)
}
