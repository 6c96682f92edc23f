package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"enumkit/internal/driver"
	"enumkit/internal/gen"
)

var listCmd = &cobra.Command{
	Use:   "list [packages]",
	Short: "List the declared members of integer types",
	Example: `  enumgen list --type Fruit
  enumgen list --format yaml`,
	RunE: runList,
}

var (
	listTargets targetFlags
	listFormat  string
)

func init() {
	listTargets.register(listCmd)
	listCmd.Flags().StringVar(&listFormat, "format", "pretty", "output format (pretty|json|yaml)")
}

type listEnum struct {
	Package string       `json:"package" yaml:"package"`
	Type    string       `json:"type" yaml:"type"`
	Basic   string       `json:"basic" yaml:"basic"`
	Window  string       `json:"window,omitempty" yaml:"window,omitempty"`
	Count   int          `json:"count" yaml:"count"`
	Members []listMember `json:"members" yaml:"members"`
}

type listMember struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Display  string `json:"display" yaml:"display"`
	AliasOf  string `json:"alias_of,omitempty" yaml:"alias_of,omitempty"`
	Doc      string `json:"doc,omitempty" yaml:"doc,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(listFormat)
	switch format {
	case "pretty", "json", "yaml":
	default:
		return errInvalidFlag("--format", listFormat, "pretty|json|yaml")
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	s, err := resolveTargets(&listTargets, args, g.maxDiagnostics)
	if err != nil {
		return err
	}

	res, err := driver.Generate(cmd.Context(), driver.Options{
		Targets:        s.targets,
		MaxDiagnostics: g.maxDiagnostics,
		Tags:           s.buildTags(listTargets.tags),
		Through:        driver.StageInspect,
	})
	if err != nil {
		return err
	}
	res.Bag.Merge(s.bag)
	res.Bag.Sort()
	// machine formats keep stdout for the listing
	g.diagFormat = "pretty"
	if err := printDiagnostics(cmd, g, res.Bag, s.cwd, args); err != nil {
		return err
	}

	enums := collectListing(s.cwd, res)
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(enums); err != nil {
			return err
		}
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(enums); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		renderListPretty(out, enums)
	}
	if res.Bag.HasErrors() {
		return errors.New("inspection failed")
	}
	return nil
}

func collectListing(base string, res *driver.Result) []listEnum {
	enums := make([]listEnum, 0, len(res.Targets))
	for _, r := range res.Targets {
		if r.Enum == nil {
			continue
		}
		e := r.Enum
		le := listEnum{
			Package: e.PkgPath,
			Type:    e.Type,
			Basic:   e.Basic,
			Count:   e.Count(),
			Members: make([]listMember, 0, len(e.Members)),
		}
		if e.Window != nil {
			le.Window = e.Window.String()
		}
		for _, m := range e.Members {
			display := gen.DisplayName(m.Name, r.Target.TrimPrefix, r.Target.Transform)
			if m.Alias != "" {
				display = gen.DisplayName(m.Alias, r.Target.TrimPrefix, r.Target.Transform)
			}
			pos := ""
			if !m.Span.Empty() {
				pos = m.Span.Rel(base).String()
			}
			le.Members = append(le.Members, listMember{
				Name:     m.Name,
				Value:    m.Value.String(),
				Display:  display,
				AliasOf:  m.Alias,
				Doc:      m.Doc,
				Position: pos,
			})
		}
		enums = append(enums, le)
	}
	return enums
}

// renderListPretty prints one aligned table per type.
func renderListPretty(w io.Writer, enums []listEnum) {
	title := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	for i, e := range enums {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("%s.%s", e.Package, e.Type)
		meta := fmt.Sprintf("(%s, %d members", e.Basic, e.Count)
		if e.Window != "" {
			meta += ", window " + e.Window
		}
		fmt.Fprintf(w, "%s %s\n", title(header), dim(meta+")"))

		nameWidth, valueWidth := 0, 0
		for _, m := range e.Members {
			nameWidth = max(nameWidth, runewidth.StringWidth(m.Name))
			valueWidth = max(valueWidth, runewidth.StringWidth(m.Value))
		}
		for _, m := range e.Members {
			line := "  " + runewidth.FillRight(m.Name, nameWidth) + "  " +
				runewidth.FillLeft(m.Value, valueWidth) + "  " + m.Display
			if m.AliasOf != "" {
				line += dim("  alias of " + m.AliasOf)
			}
			if m.Doc != "" {
				line += dim("  // " + m.Doc)
			}
			fmt.Fprintln(w, line)
		}
	}
}
