package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"enumkit/internal/cache"
	"enumkit/internal/diag"
	"enumkit/internal/project"
	"enumkit/internal/source"
)

var errNoTargets = errors.New("no --type given and no " + project.ManifestName + " found")

// targetFlags are the per-invocation target options shared by generate and
// list.
type targetFlags struct {
	types      []string
	output     string
	trimPrefix string
	transform  string
	window     string
	tags       string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.types, "type", "t", nil, "type names to process (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file name (single type only)")
	cmd.Flags().StringVar(&f.trimPrefix, "trimprefix", "", "prefix trimmed from member names in String output")
	cmd.Flags().StringVar(&f.transform, "transform", "", "String output case ("+strings.Join(project.TransformNames(), "|")+")")
	cmd.Flags().StringVar(&f.window, "window", "", "restrict members to min,max and emit EnumRange")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated build tags")
}

// session is the resolved input of one generate or list run.
type session struct {
	cwd      string
	manifest *project.Manifest
	targets  []project.Target
	bag      *diag.Bag
	defaults project.GenerateConfig
}

// resolveTargets builds targets from flags, or from enumkit.toml when no
// --type was given. Configuration problems land in the session bag.
func resolveTargets(f *targetFlags, args []string, maxDiagnostics int) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, _, err := project.LoadManifest(cwd)
	if err != nil {
		return nil, err
	}
	s := &session{cwd: cwd, manifest: manifest, bag: diag.NewBag(maxDiagnostics)}
	if manifest != nil {
		s.defaults = manifest.Config.Generate
	}
	r := diag.BagReporter{Bag: s.bag}

	types := splitTypes(f.types)
	if len(types) == 0 {
		if manifest == nil {
			return nil, errNoTargets
		}
		s.targets = manifest.Targets(r)
		return s, nil
	}

	if f.output != "" && (len(types) > 1 || len(args) > 1) {
		return nil, errors.New("--output requires exactly one type and package")
	}
	w, err := parseWindow(f.window)
	if err != nil {
		return nil, err
	}
	var window []int
	if w != nil {
		window = []int{w.Min, w.Max}
	}
	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	at := source.Span{File: "command line"}
	for _, pkg := range patterns {
		for _, typ := range types {
			t, ok := project.ValidateTarget(r, at, typ, project.EnumConfig{
				Package:    pkg,
				Type:       typ,
				Output:     f.output,
				Transform:  f.transform,
				TrimPrefix: f.trimPrefix,
				Window:     window,
			}, s.defaults)
			if !ok {
				continue
			}
			t.Dir = cwd
			s.targets = append(s.targets, t)
		}
	}
	return s, nil
}

// buildTags merges the --tags flag with the manifest default.
func (s *session) buildTags(flag string) []string {
	value := flag
	if value == "" {
		value = s.defaults.Tags
	}
	return strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' })
}

// openCache honours --no-cache and [generate].cache/cache_dir. A cache that
// cannot be opened only disables caching.
func (s *session) openCache(cmd *cobra.Command, disabled bool) *cache.Disk {
	if disabled || !s.defaults.CacheEnabled() {
		return nil
	}
	dir, err := cacheDir(s.manifest)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		return nil
	}
	c, err := cache.Open(dir)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		return nil
	}
	return c
}

// cacheDir is [generate].cache_dir relative to the manifest, or the user
// cache directory.
func cacheDir(m *project.Manifest) (string, error) {
	if m != nil && m.Config.Generate.CacheDir != "" {
		dir := m.Config.Generate.CacheDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.Root, dir)
		}
		return dir, nil
	}
	return cache.DefaultDir("enumgen")
}
