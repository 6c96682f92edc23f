// Package gen renders the Go file that gives an inspected type its String
// method and the member table the enum runtime reads through EnumMembers.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"
	"text/template"

	"enumkit/internal/inspect"
	"enumkit/internal/project"
	"enumkit/pkg/enum"
)

// RuntimeImport is the import path of the runtime package.
const RuntimeImport = "enumkit/pkg/enum"

// Header marks generated files; go/ast recognizes it.
const Header = "// Code generated by enumgen; DO NOT EDIT."

// Options controls rendering of one type.
type Options struct {
	Transform  project.Transform
	TrimPrefix string
	Runtime    string // defaults to RuntimeImport
}

type caseData struct {
	Ident   string
	Display string
}

type memberData struct {
	Ident string
}

type fileData struct {
	Header   string
	Package  string
	Runtime  string
	Type     string
	Cases    []caseData
	Members  []memberData
	Window   *enum.Window
	Format   string // strconv function rendering invalid values
	Widen    string // conversion applied before Format
	Receiver string
}

var fileTemplate = template.Must(template.New("enum").Parse(`{{.Header}}

package {{.Package}}

import (
	"strconv"

	"{{.Runtime}}"
)

func ({{.Receiver}} {{.Type}}) String() string {
{{- if .Cases}}
	switch {{.Receiver}} {
{{- range .Cases}}
	case {{.Ident}}:
		return {{printf "%q" .Display}}
{{- end}}
	}
{{- end}}
	return "{{.Type}}(" + strconv.{{.Format}}({{.Widen}}({{.Receiver}}), 10) + ")"
}
{{if .Window}}
// EnumRange reports the scan window of {{.Type}}.
func ({{.Type}}) EnumRange() (min, max int) { return {{.Window.Min}}, {{.Window.Max}} }
{{end}}
// EnumMembers lists every declared constant of {{.Type}}.
func ({{.Type}}) EnumMembers() []enum.Member[{{.Type}}] {
	return []enum.Member[{{.Type}}]{
{{- range .Members}}
		{Name: {{printf "%q" .Ident}}, Value: {{.Ident}}},
{{- end}}
	}
}
`))

// Render returns the formatted source of the generated file for e.
func Render(e *inspect.Enum, opts Options) ([]byte, error) {
	data := fileData{
		Header:   Header,
		Package:  e.Package,
		Runtime:  opts.Runtime,
		Type:     e.Type,
		Window:   e.Window,
		Format:   "FormatInt",
		Widen:    "int64",
		Receiver: receiverName(e),
	}
	if data.Runtime == "" {
		data.Runtime = RuntimeImport
	}
	if !e.Signed {
		data.Format, data.Widen = "FormatUint", "uint64"
	}
	for _, m := range e.Members {
		data.Members = append(data.Members, memberData{Ident: m.Name})
		if m.Alias != "" {
			continue
		}
		data.Cases = append(data.Cases, caseData{
			Ident:   m.Name,
			Display: DisplayName(m.Name, opts.TrimPrefix, opts.Transform),
		})
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("gen: execute template: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("gen: format %s: %w", e.Type, err)
	}
	return out, nil
}

// IsOutput reports whether content is a file enumgen wrote. Such files hold
// methods only, never constants, so inspections do not depend on them.
func IsOutput(content []byte) bool {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	line, _, _ := bytes.Cut(content, []byte("\n"))
	return string(bytes.TrimSuffix(line, []byte("\r"))) == Header
}

// OutputPath is where the file for e goes: output when set (relative to the
// package directory), else <type>_enum.go next to the type declaration.
func OutputPath(e *inspect.Enum, output, suffix string) string {
	if output != "" {
		if filepath.IsAbs(output) {
			return output
		}
		return filepath.Join(e.Dir, output)
	}
	if suffix == "" {
		suffix = project.DefaultSuffix
	}
	dir := e.Dir
	if e.File != "" {
		dir = filepath.Dir(e.File)
	}
	return filepath.Join(dir, strings.ToLower(e.Type)+suffix)
}

// receiverName picks a receiver that no member identifier shadows.
func receiverName(e *inspect.Enum) string {
	name := "v"
	for _, r := range strings.ToLower(e.Type) {
		if r >= 'a' && r <= 'z' {
			name = string(r)
			break
		}
	}
	taken := make(map[string]bool, len(e.Members)+2)
	for _, m := range e.Members {
		taken[m.Name] = true
	}
	taken["strconv"], taken["enum"] = true, true
	for taken[name] {
		name += "v"
	}
	return name
}
