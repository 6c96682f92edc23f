package inspect

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"enumkit/internal/diag"
	"enumkit/internal/source"
	"enumkit/pkg/enum"
)

// Options tunes one inspection.
type Options struct {
	// Window drops members outside it, with a warning per member.
	Window *enum.Window
	// Output is the file enumgen writes for this type. Methods declared in
	// it, or in any file marked as generated, do not conflict.
	Output string
}

// Inspect finds typeName in pkg and collects its members. The result is
// nil when an error was reported.
func Inspect(pkg *Package, typeName string, opts Options, r diag.Reporter) *Enum {
	at := source.Span{File: pkg.Dir}
	obj := pkg.Types.Scope().Lookup(typeName)
	tn, ok := obj.(*types.TypeName)
	if !ok {
		b := diag.ReportError(r, diag.InsTypeNotFound, at,
			fmt.Sprintf("type %s not found in package %s", typeName, pkg.PkgPath))
		if cands := integerTypes(pkg); len(cands) > 0 {
			b.WithNote(at, "integer types in this package: "+strings.Join(cands, ", "))
		}
		b.Emit()
		return nil
	}
	typeSpan := pkg.span(tn.Pos())
	if tn.IsAlias() {
		diag.ReportError(r, diag.InsNotNamed, typeSpan,
			fmt.Sprintf("%s is an alias of %s; declare a defined type instead", typeName, tn.Type())).Emit()
		return nil
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		diag.ReportError(r, diag.InsNotNamed, typeSpan, fmt.Sprintf("%s is not a defined type", typeName)).Emit()
		return nil
	}
	if named.TypeParams().Len() > 0 {
		diag.ReportError(r, diag.InsGenericType, typeSpan,
			fmt.Sprintf("%s has type parameters", typeName)).Emit()
		return nil
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsInteger == 0 {
		diag.ReportError(r, diag.InsNotInteger, typeSpan,
			fmt.Sprintf("%s has underlying type %s, want an integer type", typeName, named.Underlying())).Emit()
		return nil
	}

	generated := pkg.generatedFiles(opts.Output)
	for i := range named.NumMethods() {
		m := named.Method(i)
		if !writtenMethods[m.Name()] {
			continue
		}
		pos := pkg.Fset.Position(m.Pos())
		if generated[filepath.Clean(pos.Filename)] {
			continue
		}
		diag.ReportError(r, diag.InsHasString, source.FromPosition(pos),
			fmt.Sprintf("%s already declares %s; enumgen cannot add one", typeName, m.Name())).
			WithNote(typeSpan, "type declared here").
			Emit()
		return nil
	}

	e := &Enum{
		Package: pkg.Name,
		PkgPath: pkg.PkgPath,
		Dir:     pkg.Dir,
		Type:    typeName,
		Basic:   basic.Name(),
		Signed:  basic.Info()&types.IsUnsigned == 0,
		Span:    typeSpan,
		File:    filepath.Clean(pkg.Fset.Position(tn.Pos()).Filename),
		Window:  opts.Window,
	}
	if !pkg.collect(e, named, opts.Window, r) {
		return nil
	}
	if e.Count() == 0 {
		msg := fmt.Sprintf("%s has no members", typeName)
		if opts.Window != nil {
			msg += " inside window " + opts.Window.String()
		}
		diag.ReportWarning(r, diag.InsNoMembers, typeSpan, msg).Emit()
	}
	return e
}

// writtenMethods are the methods a generated file declares.
var writtenMethods = map[string]bool{"String": true, "EnumMembers": true, "EnumRange": true}

// collect walks constant declarations in file order and appends members of
// named to e.
func (pkg *Package) collect(e *Enum, named *types.Named, w *enum.Window, r diag.Reporter) bool {
	files := slices.Clone(pkg.Syntax)
	slices.SortFunc(files, func(a, b *ast.File) int {
		return cmp.Compare(pkg.Fset.Position(a.Pos()).Filename, pkg.Fset.Position(b.Pos()).Filename)
	})

	ok := true
	canonical := make(map[Value]Member)
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, isGen := decl.(*ast.GenDecl)
			if !isGen || gd.Tok != token.CONST {
				continue
			}
			// a spec without values repeats the previous expression list
			var exprs []ast.Expr
			for _, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				if len(vs.Values) > 0 {
					exprs = vs.Values
				}
				for _, ident := range vs.Names {
					if ident.Name == "_" {
						continue
					}
					c, isConst := pkg.Info.Defs[ident].(*types.Const)
					if !isConst || !types.Identical(c.Type(), named) {
						continue
					}
					sp := pkg.span(ident.Pos())
					val, exact := ValueOf(c.Val())
					if !exact {
						diag.ReportError(r, diag.InsValueOverflow, sp,
							fmt.Sprintf("%s = %s does not fit in 64 bits", ident.Name, c.Val().ExactString())).Emit()
						ok = false
						continue
					}
					if w != nil {
						n, fits := val.Int()
						if !fits || !enum.Contains(*w, n) {
							diag.ReportWarning(r, diag.InsOutsideWindow, sp,
								fmt.Sprintf("%s = %s lies outside window %s and is not a member", ident.Name, val, w)).Emit()
							continue
						}
					}
					if !e.External {
						if other := pkg.foreignPackage(exprs); other != nil {
							e.External = true
							diag.ReportInfo(r, diag.InsInfo, sp,
								fmt.Sprintf("%s uses constants of %s", ident.Name, other.Path())).Emit()
						}
					}
					m := Member{Name: ident.Name, Value: val, Span: sp, Doc: docLine(gd, vs)}
					if first, dup := canonical[val]; dup {
						m.Alias = first.Name
						diag.ReportInfo(r, diag.InsAlias, sp,
							fmt.Sprintf("%s has the same value as %s and becomes its alias", m.Name, first.Name)).
							WithNote(first.Span, first.Name+" declared here").
							Emit()
					} else {
						canonical[val] = m
					}
					e.Members = append(e.Members, m)
				}
			}
		}
	}
	return ok
}

// foreignPackage returns the first package other than pkg that exprs refer
// to, or nil.
func (pkg *Package) foreignPackage(exprs []ast.Expr) *types.Package {
	var found *types.Package
	for _, x := range exprs {
		ast.Inspect(x, func(n ast.Node) bool {
			if found != nil {
				return false
			}
			if id, ok := n.(*ast.Ident); ok {
				if obj := pkg.Info.Uses[id]; obj != nil && obj.Pkg() != nil && obj.Pkg() != pkg.Types {
					found = obj.Pkg()
				}
			}
			return found == nil
		})
	}
	return found
}

func (pkg *Package) span(pos token.Pos) source.Span {
	return source.FromPosition(pkg.Fset.Position(pos))
}

// generatedFiles returns the files whose declarations enumgen may replace.
func (pkg *Package) generatedFiles(output string) map[string]bool {
	out := make(map[string]bool)
	if output != "" {
		out[filepath.Clean(output)] = true
	}
	for _, f := range pkg.Syntax {
		if ast.IsGenerated(f) {
			out[filepath.Clean(pkg.Fset.Position(f.Pos()).Filename)] = true
		}
	}
	return out
}

// integerTypes lists the defined integer types of pkg, for hints.
func integerTypes(pkg *Package) []string {
	var out []string
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		if b, ok := tn.Type().Underlying().(*types.Basic); ok && b.Info()&types.IsInteger != 0 {
			out = append(out, name)
		}
	}
	return out
}

func docLine(gd *ast.GenDecl, vs *ast.ValueSpec) string {
	groups := []*ast.CommentGroup{vs.Doc, vs.Comment}
	if len(gd.Specs) == 1 {
		groups = append(groups, gd.Doc)
	}
	for _, g := range groups {
		if g == nil {
			continue
		}
		text := strings.TrimSpace(g.Text())
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		if text != "" {
			return text
		}
	}
	return ""
}
