package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"enumkit/internal/diag"
	"enumkit/internal/source"
)

const planetSrc = "package p\n\ntype Planet int16\n\nconst Pluto Planet = 900\n"

func planetBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	fs.Add("/home/user/project/p/planet.go", []byte(planetSrc))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.InsOutsideWindow,
		source.Span{File: "/home/user/project/p/planet.go", Line: 5, Col: 7},
		"Pluto = 900 lies outside window [-128, 128] and is not a member").
		WithNote(source.Span{File: "/home/user/project/p/planet.go", Line: 3, Col: 6}, "type declared here"))
	bag.Add(diag.NewError(diag.CfgBadWindow, source.Span{File: "/home/user/project/enumkit.toml"}, "enum[0]: window [5, 5] requires max > min"))
	return bag, fs
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs := planetBag()
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/p/planet.go:5:7"},
		{"relative", PathModeRelative, "p/planet.go:5:7"},
		{"basename", PathModeBasename, "planet.go:5:7"},
		{"auto", PathModeAuto, "p/planet.go:5:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "WARNING INS3004") || !strings.Contains(out, "ERROR CFG1001") {
				t.Fatalf("missing severity or code:\n%s", out)
			}
		})
	}
}

func TestPrettySnippetAndNotes(t *testing.T) {
	bag, fs := planetBag()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true, PathMode: PathModeBasename})
	out := buf.String()
	want := "  4 | \n  5 | const Pluto Planet = 900\n    |       ^\n  note: planet.go:3:6: type declared here\n"
	if !strings.Contains(out, want) {
		t.Fatalf("snippet mismatch, got:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := planetBag()
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes")
	}
}

func TestJSON(t *testing.T) {
	bag, _ := planetBag()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "INS3004" || d.Severity != "WARNING" || d.Location.File != "planet.go" || d.Location.Line != 5 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Line != 3 {
		t.Fatalf("unexpected notes %+v", d.Notes)
	}
}

func TestSarif(t *testing.T) {
	bag, _ := planetBag()
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "enumgen", ToolVersion: "0.1.0", InvocationArgs: []string{"generate"}}
	if err := Sarif(&buf, bag, meta, "/home/user/project"); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	run := log.Runs[0]
	if len(run.Results) != 2 || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected run %+v", run)
	}
	if run.Tool.Driver.Rules[0].ID != "CFG1001" {
		t.Fatalf("rules must be sorted by code: %+v", run.Tool.Driver.Rules)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("a bag with errors is not a successful run")
	}
	uri := run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI
	if uri != filepath.ToSlash(filepath.Join("p", "planet.go")) {
		t.Fatalf("uri = %q", uri)
	}
}
