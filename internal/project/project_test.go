package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enumkit/internal/diag"
	"enumkit/internal/source"
)

func writeManifest(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("FindManifest = %q, want %q", got, want)
	}
	dir, ok, err := FindRoot(nested)
	if err != nil || !ok || dir != root {
		t.Fatalf("FindRoot = %q %v %v", dir, ok, err)
	}
}

func TestLoadManifestTargets(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[generate]
transform = "lower"
jobs = 2

[[enum]]
package = "./fruit"
type = "Fruit"

[[enum]]
package = "./level"
type = "Level"
transform = "kebab"
trim_prefix = "Level"
window = [-10, 10]
`)
	m, ok, err := LoadManifest(root)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	bag := diag.NewBag(10)
	targets := m.Targets(diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diag.FormatShort(bag.Items(), true))
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets", len(targets))
	}
	fruit, level := targets[0], targets[1]
	if fruit.Transform != TransformLower || fruit.Window != nil || fruit.Dir != root {
		t.Fatalf("unexpected fruit target %+v", fruit)
	}
	if level.Transform != TransformKebab || level.TrimPrefix != "Level" {
		t.Fatalf("unexpected level target %+v", level)
	}
	if level.Window == nil || level.Window.Min != -10 || level.Window.Max != 10 {
		t.Fatalf("unexpected window %+v", level.Window)
	}
	if level.WindowKey() != "[-10, 10]" || fruit.WindowKey() != "" {
		t.Fatalf("unexpected window keys %q %q", level.WindowKey(), fruit.WindowKey())
	}
	if !m.Config.Generate.CacheEnabled() || m.Config.Generate.OutputSuffix() != DefaultSuffix {
		t.Fatalf("unexpected generate defaults %+v", m.Config.Generate)
	}
}

func TestTargetsReportProblems(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[[enum]]
type = "A"
window = [5, 5]

[[enum]]
package = "."

[[enum]]
type = "B"
transform = "shouting"

[[enum]]
type = "C"
window = [1]

[[enum]]
type = "D"

[[enum]]
type = "D"
`)
	m, _, err := LoadManifest(root)
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(20)
	targets := m.Targets(diag.BagReporter{Bag: bag})
	if len(targets) != 1 || targets[0].Type != "D" {
		t.Fatalf("unexpected targets %+v", targets)
	}
	var codes []string
	for _, d := range bag.Items() {
		codes = append(codes, d.Code.ID())
	}
	want := []string{"CFG1001", "CFG1002", "CFG1003", "CFG1001", "CFG1004"}
	if strings.Join(codes, " ") != strings.Join(want, " ") {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[generate]\nsufix = \"_x.go\"\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "generate.sufix") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestTemplateDecodes(t *testing.T) {
	cfg, err := DecodeConfig(Template("./color", "Color"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Enums) != 1 || cfg.Enums[0].Type != "Color" || cfg.Enums[0].Package != "./color" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	_, ok := ValidateTarget(diag.NopReporter{}, source.Span{}, "enum[0]", cfg.Enums[0], cfg.Generate)
	if !ok {
		t.Fatalf("template target must validate")
	}
}

func TestParseTransform(t *testing.T) {
	for _, name := range TransformNames() {
		tr, ok := ParseTransform(strings.ToUpper(name))
		if !ok || tr.String() != name {
			t.Fatalf("ParseTransform(%q) = %v, %v", name, tr, ok)
		}
	}
	if tr, ok := ParseTransform(""); !ok || tr != TransformNone {
		t.Fatalf("empty transform must be none")
	}
	if _, ok := ParseTransform("camel"); ok {
		t.Fatalf("camel is not supported")
	}
	if Transform(42).String() != "Transform(42)" {
		t.Fatalf("invalid transform renders %q", Transform(42).String())
	}
}

func TestDigest(t *testing.T) {
	a := DigestOf([][32]byte{{1}, {2}}, "Fruit", "")
	b := DigestOf([][32]byte{{1}, {2}}, "Fruit", "")
	c := DigestOf([][32]byte{{1}, {2}}, "Fruit", "[0, 3]")
	if a != b || a == c {
		t.Fatalf("digest must depend on files and key only")
	}
	if len(a.Short()) != 12 || len(a.String()) != 64 {
		t.Fatalf("unexpected digest rendering %s", a)
	}
	if Combine(a) == Combine(a, c) {
		t.Fatalf("Combine must mix deps")
	}
}
