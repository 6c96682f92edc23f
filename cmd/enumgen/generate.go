package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enumkit/internal/diag"
	"enumkit/internal/driver"
	"enumkit/internal/gen"
	"enumkit/internal/observ"
)

var generateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Generate String methods and member tables",
	Long: `Generate inspects the named integer types and writes a <type>_enum.go file
next to each declaration. Without --type the targets come from enumkit.toml.`,
	Example: `  enumgen generate --type Fruit
  enumgen generate ./internal/... --type Color,Shape --transform lower
  enumgen generate --check`,
	RunE: runGenerate,
}

var (
	generateTargets targetFlags
	generateJobs    int
	generateCheck   bool
	generateNoCache bool
)

func init() {
	generateTargets.register(generateCmd)
	generateCmd.Flags().IntVarP(&generateJobs, "jobs", "j", 0, "packages processed in parallel (0 = GOMAXPROCS)")
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "report out-of-date files without writing them")
	generateCmd.Flags().BoolVar(&generateNoCache, "no-cache", false, "ignore the inspection cache")
}

var errStale = errors.New("generated files are out of date")

func runGenerate(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	var timer *observ.Timer
	if g.timings {
		timer = observ.NewTimer()
	}
	phase := timer.Begin("resolve")
	s, err := resolveTargets(&generateTargets, args, g.maxDiagnostics)
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d targets", len(s.targets)))
	jobs := generateJobs
	if jobs == 0 {
		jobs = s.defaults.Jobs
	}
	opts := driver.Options{
		Targets:        s.targets,
		Suffix:         s.defaults.OutputSuffix(),
		Jobs:           jobs,
		MaxDiagnostics: g.maxDiagnostics,
		Tags:           s.buildTags(generateTargets.tags),
		Runtime:        gen.RuntimeImport,
		Cache:          s.openCache(cmd, generateNoCache),
		Timer:          timer,
		Check:          generateCheck,
	}

	res, err := runPipeline(cmd, g, "enumgen generate", opts)
	if err != nil {
		dumpTraceRing(cmd)
		return err
	}
	res.Bag.Merge(s.bag)
	res.Bag.Sort()

	phase = timer.Begin("report")
	if err := printDiagnostics(cmd, g, res.Bag, s.cwd, args); err != nil {
		return err
	}
	if !g.quiet && g.diagFormat == "pretty" {
		printGenerateSummary(cmd, s.cwd, res, generateCheck)
	}
	timer.End(phase, "")
	if g.timings {
		printTimings(cmd.ErrOrStderr(), timer)
	}

	if res.Bag.HasErrors() {
		dumpTraceRing(cmd)
		return fmt.Errorf("generation failed with %d error(s)", countSeverity(res.Bag, diag.SevError))
	}
	if generateCheck && res.Changed() > 0 {
		return fmt.Errorf("%w: %d file(s)", errStale, res.Changed())
	}
	return nil
}

// runPipeline runs the driver with the progress UI when it is enabled.
func runPipeline(cmd *cobra.Command, g globalFlags, title string, opts driver.Options) (*driver.Result, error) {
	if !g.quiet && g.diagFormat == "pretty" && len(opts.Targets) > 0 && shouldUseTUI(g.ui) {
		return runWithUI(cmd.Context(), title, opts)
	}
	return driver.Generate(cmd.Context(), opts)
}

func printGenerateSummary(cmd *cobra.Command, base string, res *driver.Result, check bool) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	for _, r := range res.Targets {
		if r.Failed() || r.Output == "" {
			continue
		}
		path := r.Output
		if rel, err := filepath.Rel(base, path); err == nil {
			path = rel
		}
		switch {
		case r.Changed && check:
			fmt.Fprintf(out, "%s %s (%s)\n", yellow("stale"), path, r.Target.Key())
		case r.Changed:
			fmt.Fprintf(out, "%s %s (%s)\n", green("wrote"), path, r.Target.Key())
		}
	}
	if res.Changed() == 0 {
		fmt.Fprintf(out, "%d target(s) up to date\n", len(res.Targets))
	}
}
