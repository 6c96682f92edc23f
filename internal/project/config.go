package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"enumkit/internal/diag"
	"enumkit/internal/source"
	"enumkit/pkg/enum"
)

// DefaultSuffix names generated files: fruit.go -> fruit_enum.go.
const DefaultSuffix = "_enum.go"

// Manifest is a parsed enumkit.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Enums    []EnumConfig   `toml:"enum"`
}

// GenerateConfig holds defaults shared by every [[enum]] entry.
type GenerateConfig struct {
	Suffix    string `toml:"suffix"`
	Transform string `toml:"transform"`
	Jobs      int    `toml:"jobs"`
	Cache     *bool  `toml:"cache"`
	CacheDir  string `toml:"cache_dir"`
	Tags      string `toml:"tags"`
}

// EnumConfig is one generation target.
type EnumConfig struct {
	Package    string `toml:"package"`
	Type       string `toml:"type"`
	Output     string `toml:"output"`
	Transform  string `toml:"transform"`
	TrimPrefix string `toml:"trim_prefix"`
	Window     []int  `toml:"window"`
}

// Target is a validated EnumConfig with defaults applied.
type Target struct {
	Dir        string // directory package patterns are resolved from
	Package    string
	Type       string
	Output     string // empty: derived from the declaring file
	Transform  Transform
	TrimPrefix string
	Window     *enum.Window
}

// Key identifies a target for duplicate detection and cache keys.
func (t Target) Key() string {
	return t.Package + "." + t.Type
}

// WindowKey renders the window for cache keys, "" when unset.
func (t Target) WindowKey() string {
	if t.Window == nil {
		return ""
	}
	return t.Window.String()
}

// LoadManifest finds and parses enumkit.toml starting at startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses the manifest at path without validating targets.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// DecodeConfig parses manifest text; used by tests and `enumgen init`.
func DecodeConfig(text string) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// CacheEnabled reports the [generate].cache setting, true by default.
func (c GenerateConfig) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// OutputSuffix returns the configured suffix or DefaultSuffix.
func (c GenerateConfig) OutputSuffix() string {
	if c.Suffix == "" {
		return DefaultSuffix
	}
	return c.Suffix
}

// Targets validates every [[enum]] entry and reports problems into r.
// Entries with errors are left out of the result. Package patterns are
// resolved from the manifest root.
func (m *Manifest) Targets(r diag.Reporter) []Target {
	at := source.Span{File: m.Path}
	seen := make(map[string]struct{}, len(m.Config.Enums))
	out := make([]Target, 0, len(m.Config.Enums))
	for i, ec := range m.Config.Enums {
		t, ok := ValidateTarget(r, at, fmt.Sprintf("enum[%d]", i), ec, m.Config.Generate)
		if !ok {
			continue
		}
		t.Dir = m.Root
		if _, dup := seen[t.Key()]; dup {
			diag.ReportError(r, diag.CfgDuplicateTarget, at,
				fmt.Sprintf("type %s in %s is configured twice", t.Type, t.Package)).Emit()
			continue
		}
		seen[t.Key()] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ValidateTarget checks one target definition. where names the entry in
// messages, e.g. "enum[2]" or "flags".
func ValidateTarget(r diag.Reporter, at source.Span, where string, ec EnumConfig, defaults GenerateConfig) (Target, bool) {
	ok := true
	pkg := ec.Package
	if pkg == "" {
		pkg = "."
	}
	t := Target{
		Package:    pkg,
		Type:       strings.TrimSpace(ec.Type),
		Output:     ec.Output,
		TrimPrefix: ec.TrimPrefix,
	}
	if t.Type == "" {
		diag.ReportError(r, diag.CfgMissingType, at, where+": missing type").Emit()
		ok = false
	}

	name := ec.Transform
	if name == "" {
		name = defaults.Transform
	}
	tr, known := ParseTransform(name)
	if !known {
		diag.ReportError(r, diag.CfgBadTransform, at,
			fmt.Sprintf("%s: unknown transform %q", where, name)).
			WithNote(at, "expected one of: "+strings.Join(TransformNames(), ", ")).
			Emit()
		ok = false
	}
	t.Transform = tr

	switch len(ec.Window) {
	case 0:
	case 2:
		w := enum.Window{Min: ec.Window[0], Max: ec.Window[1]}
		if err := w.Validate(); err != nil {
			diag.ReportError(r, diag.CfgBadWindow, at,
				fmt.Sprintf("%s: window %s requires max > min", where, w)).Emit()
			ok = false
		} else {
			t.Window = &w
		}
	default:
		diag.ReportError(r, diag.CfgBadWindow, at,
			fmt.Sprintf("%s: window must be [min, max], got %d values", where, len(ec.Window))).Emit()
		ok = false
	}
	return t, ok
}

// Template is the manifest written by `enumgen init`.
func Template(pkg, typ string) string {
	if pkg == "" {
		pkg = "."
	}
	if typ == "" {
		typ = "Color"
	}
	return fmt.Sprintf(`# enumgen configuration.

[generate]
# suffix = %q
# transform = "none"   # none | lower | upper | title | snake | kebab
# jobs = 0             # 0 means one per CPU
# cache = true

[[enum]]
package = %q
type = %q
# output = "color_enum.go"
# trim_prefix = %q
# window = [-128, 128]
`, DefaultSuffix, pkg, typ, typ)
}
