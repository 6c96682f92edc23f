package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"enumkit/internal/project"
	"enumkit/pkg/enum"
)

func TestParseWindow(t *testing.T) {
	cases := []struct {
		in      string
		want    *enum.Window
		wantErr bool
	}{
		{"", nil, false},
		{"0,5", &enum.Window{Min: 0, Max: 5}, false},
		{"-10:10", &enum.Window{Min: -10, Max: 10}, false},
		{" -1 , 3 ", &enum.Window{Min: -1, Max: 3}, false},
		{"5", nil, true},
		{",5", nil, true},
		{"a,b", nil, true},
	}
	for _, tc := range cases {
		got, err := parseWindow(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseWindow(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if tc.wantErr {
			continue
		}
		if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
			t.Fatalf("parseWindow(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSplitTypes(t *testing.T) {
	got := splitTypes([]string{"Fruit, Color", "", "Shape"})
	want := []string{"Fruit", "Color", "Shape"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("splitTypes = %v, want %v", got, want)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit ui modes must be honoured")
	}
}

func TestProbeTexts(t *testing.T) {
	got := probeTexts([]string{"main.Apple", "Fruit(42)", "-3", "_hidden"}, 0)
	want := []probeResult{
		{Text: "main.Apple", Name: "Apple", Member: true},
		{Text: "Fruit(42)"},
		{Text: "-3"},
		{Text: "_hidden", Name: "_hidden", Member: true},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("probeTexts[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	trimmed := probeTexts([]string{"Apple]", "]"}, 1)
	if trimmed[0].Name != "Apple" || trimmed[1].Member {
		t.Fatalf("probeTexts with trim = %+v", trimmed)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := writeManifest(dir, "Fruit", false)
	if err != nil {
		t.Fatalf("writeManifest: %v", err)
	}
	cfg, err := project.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Enums) != 1 || cfg.Enums[0].Type != "Fruit" {
		t.Fatalf("unexpected manifest: %+v", cfg)
	}

	if _, err := writeManifest(dir, "Fruit", false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, err := writeManifest(dir, "Color", true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(data), `type = "Color"`) {
		t.Fatalf("forced overwrite kept old content:\n%s", data)
	}
}

func TestResolveTargetsFromFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	f := &targetFlags{types: []string{"Fruit,Color"}, window: "0,8", transform: "lower"}
	s, err := resolveTargets(f, []string{"./a"}, 10)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if s.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", s.bag.Items())
	}
	if len(s.targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(s.targets))
	}
	for _, tg := range s.targets {
		if tg.Package != "./a" || tg.Transform != project.TransformLower {
			t.Fatalf("unexpected target %+v", tg)
		}
		if tg.Window == nil || *tg.Window != (enum.Window{Min: 0, Max: 8}) {
			t.Fatalf("window not applied: %+v", tg.Window)
		}
	}

	bad := &targetFlags{types: []string{"Fruit"}, transform: "shouting"}
	s, err = resolveTargets(bad, nil, 10)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if !s.bag.HasErrors() || len(s.targets) != 0 {
		t.Fatal("an unknown transform must be reported and drop the target")
	}

	if _, err := resolveTargets(&targetFlags{}, nil, 10); !errors.Is(err, errNoTargets) {
		t.Fatalf("err = %v, want errNoTargets", err)
	}
	multi := &targetFlags{types: []string{"A", "B"}, output: "x.go"}
	if _, err := resolveTargets(multi, nil, 10); err == nil {
		t.Fatal("--output with several types must fail")
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "enumgen" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.BuildDate != "" {
		t.Fatalf("build date should be omitted, got %q", payload.BuildDate)
	}
}

func TestRenderListPretty(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	renderListPretty(&buf, []listEnum{{
		Package: "example.com/fruit",
		Type:    "Fruit",
		Basic:   "uint8",
		Count:   2,
		Members: []listMember{
			{Name: "Apple", Value: "1", Display: "apple"},
			{Name: "Kiwi", Value: "10", Display: "kiwi", Doc: "green"},
			{Name: "Malus", Value: "1", Display: "apple", AliasOf: "Apple"},
		},
	}})
	want := "example.com/fruit.Fruit (uint8, 2 members)\n" +
		"  Apple   1  apple\n" +
		"  Kiwi   10  kiwi  // green\n" +
		"  Malus   1  apple  alias of Apple\n"
	if buf.String() != want {
		t.Fatalf("renderListPretty:\n%s\nwant:\n%s", buf.String(), want)
	}
}
