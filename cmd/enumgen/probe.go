package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumkit/pkg/enum"
)

var probeCmd = &cobra.Command{
	Use:   "probe TEXT...",
	Short: "Show the member name a rendering resolves to",
	Long: `Probe applies the runtime name extraction to each argument, as if it were
the rendering of a value. A rendering that does not end in an identifier
means the value is not a member.`,
	Example: `  enumgen probe main.Apple 'Fruit(42)'
  enumgen probe --trim 1 'Apple]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProbe,
}

var (
	probeTrim   int
	probeFormat string
)

func init() {
	probeCmd.Flags().IntVar(&probeTrim, "trim", 0, "bytes dropped from the end of each rendering first")
	probeCmd.Flags().StringVar(&probeFormat, "format", "pretty", "output format (pretty|json)")
}

type probeResult struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Member bool   `json:"member"`
}

func probeTexts(texts []string, trim int) []probeResult {
	p := enum.NewProber(func(i int) string { return texts[i] }, enum.WithSuffixTrim(trim))
	out := make([]probeResult, len(texts))
	for i, text := range texts {
		name := p.Name(i)
		out[i] = probeResult{Text: text, Name: name, Member: name != ""}
	}
	return out
}

func runProbe(cmd *cobra.Command, args []string) error {
	if probeTrim < 0 {
		return errInvalidFlag("--trim", fmt.Sprint(probeTrim), "a non-negative byte count")
	}
	results := probeTexts(args, probeTrim)
	out := cmd.OutOrStdout()
	switch strings.ToLower(probeFormat) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "pretty":
		ok := color.New(color.FgGreen).SprintFunc()
		miss := color.New(color.FgRed).SprintFunc()
		for _, r := range results {
			if r.Member {
				fmt.Fprintf(out, "%q -> %s\n", r.Text, ok(r.Name))
			} else {
				fmt.Fprintf(out, "%q -> %s\n", r.Text, miss("not a member"))
			}
		}
		return nil
	default:
		return errInvalidFlag("--format", probeFormat, "pretty|json")
	}
}
