// Package driver runs enumgen's generation pipeline: load each package once,
// inspect the requested types, render their files and write the ones that
// changed. Targets of different packages run in parallel.
package driver

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"enumkit/internal/cache"
	"enumkit/internal/diag"
	"enumkit/internal/gen"
	"enumkit/internal/inspect"
	"enumkit/internal/observ"
	"enumkit/internal/project"
	"enumkit/internal/source"
	"enumkit/internal/trace"
	"enumkit/internal/version"
)

// Options configures one run.
type Options struct {
	Targets        []project.Target
	Suffix         string
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	Tags           []string
	Runtime        string // import path of the enum runtime in generated files
	Cache          *cache.Disk
	Progress       ProgressSink
	Timer          *observ.Timer
	// Through is the last stage to run; zero means StageWrite.
	Through Stage
	// Check renders and compares but never writes.
	Check bool
}

// TargetResult is the outcome of one target.
type TargetResult struct {
	Target  project.Target
	Enum    *inspect.Enum
	Output  string
	Source  []byte
	Changed bool // output differs from the file on disk
	Cached  bool // inspection came from the cache
	Done    Stages
	Bag     *diag.Bag
}

// Failed reports whether the target reported errors.
func (r *TargetResult) Failed() bool { return r.Bag.HasErrors() }

// Result collects every target in input order plus the merged diagnostics.
type Result struct {
	Targets []*TargetResult
	Bag     *diag.Bag
}

// Changed counts targets whose output differs from disk.
func (r *Result) Changed() int {
	n := 0
	for _, t := range r.Targets {
		if t.Changed {
			n++
		}
	}
	return n
}

// CacheEntry is what the cache stores per target.
type CacheEntry struct {
	Enum  *inspect.Enum
	Diags []diag.Diagnostic
}

// CacheKey digests the sources of a package, leaving out enumgen's own
// outputs, together with the settings that change an inspection. Enums whose
// values come from other packages are never stored under it.
func CacheKey(t project.Target, files *source.FileSet) project.Digest {
	return project.DigestOf(files.Hashes(), version.Version, t.Type, t.WindowKey(), t.Output)
}

type group struct {
	dir     string
	pattern string
	results []*TargetResult
}

// Generate runs the pipeline. The error is non-nil only when ctx is
// cancelled; everything else is reported through the bags.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Through == 0 {
		opts.Through = StageWrite
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "generate")
	defer span.End("")
	span.WithExtra("targets", fmt.Sprint(len(opts.Targets)))

	res := &Result{Bag: diag.NewBag(opts.MaxDiagnostics)}
	groups := groupTargets(opts, res)
	for _, r := range res.Targets {
		opts.emit(Event{Target: r.Target.Key(), Status: StatusQueued})
	}
	if len(groups) == 0 {
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(groups)))
	for _, grp := range groups {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			runGroup(gctx, opts, grp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	for _, r := range res.Targets {
		res.Bag.Merge(r.Bag)
	}
	res.Bag.Sort()
	res.Bag.Dedup()
	span.WithExtra("changed", fmt.Sprint(res.Changed()))
	return res, nil
}

// groupTargets buckets targets by package so that each package loads once.
func groupTargets(opts Options, res *Result) []*group {
	var groups []*group
	index := make(map[string]*group)
	for _, t := range opts.Targets {
		r := &TargetResult{Target: t, Bag: diag.NewBag(opts.MaxDiagnostics)}
		res.Targets = append(res.Targets, r)
		key := t.Dir + "\x00" + t.Package
		grp, ok := index[key]
		if !ok {
			grp = &group{dir: t.Dir, pattern: t.Package}
			index[key] = grp
			groups = append(groups, grp)
		}
		grp.results = append(grp.results, r)
	}
	slices.SortStableFunc(groups, func(a, b *group) int { return cmp.Compare(a.pattern, b.pattern) })
	return groups
}

func runGroup(ctx context.Context, opts Options, grp *group) {
	ctx, span := trace.Start(ctx, trace.ScopeTarget, "package:"+grp.pattern)
	defer span.End("")

	pending := grp.results
	var files *source.FileSet
	if opts.Cache != nil && inspect.IsLocalPattern(grp.pattern) {
		dir := grp.pattern
		if !filepath.IsAbs(dir) && grp.dir != "" {
			dir = filepath.Join(grp.dir, dir)
		}
		fs, err := inspect.SourceFiles(dir, opts.Tags, gen.IsOutput)
		if err == nil {
			files = fs
			pending = pending[:0:0]
			for _, r := range grp.results {
				if !lookupCache(ctx, opts, r, files) {
					pending = append(pending, r)
				}
			}
		}
	}

	if len(pending) > 0 {
		pkg := loadPackage(ctx, opts, grp, pending)
		for _, r := range pending {
			if pkg == nil {
				opts.emit(Event{Target: r.Target.Key(), Stage: StageLoad, Status: StatusError})
				continue
			}
			inspectTarget(ctx, opts, pkg, r)
			if files != nil && r.Enum != nil {
				storeCache(ctx, opts, r, files)
			}
		}
	}

	for _, r := range grp.results {
		if r.Enum == nil || r.Failed() {
			continue
		}
		if opts.Through >= StageRender && !renderTarget(ctx, opts, r) {
			continue
		}
		if opts.Through >= StageWrite {
			writeTarget(ctx, opts, r)
		}
		status := StatusDone
		if r.Failed() {
			status = StatusError
		}
		opts.emit(Event{Target: r.Target.Key(), Status: status})
	}
}

func loadPackage(ctx context.Context, opts Options, grp *group, pending []*TargetResult) *inspect.Package {
	for _, r := range pending {
		opts.emit(Event{Target: r.Target.Key(), Stage: StageLoad, Status: StatusWorking})
	}
	_, span := trace.Start(ctx, trace.ScopeStage, "load")
	start := time.Now()
	bag := diag.NewBag(opts.MaxDiagnostics)
	l := &inspect.Loader{Dir: grp.dir, Tags: opts.Tags}
	// the same import error surfaces once per dependent package
	pkg := l.Load(ctx, grp.pattern, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	elapsed := time.Since(start)
	opts.Timer.Add(StageLoad.String(), elapsed)
	detail := ""
	if pkg == nil {
		detail = "failed"
	}
	span.WithExtra("pattern", grp.pattern).End(detail)

	for _, r := range pending {
		r.Bag.Merge(bag)
		if pkg != nil {
			mark(ctx, &r.Done, StageLoad)
		}
	}
	return pkg
}

func inspectTarget(ctx context.Context, opts Options, pkg *inspect.Package, r *TargetResult) {
	key := r.Target.Key()
	opts.emit(Event{Target: key, Stage: StageInspect, Status: StatusWorking})
	_, span := trace.Start(ctx, trace.ScopeStage, "inspect")
	start := time.Now()

	output := r.Target.Output
	if output != "" && !filepath.IsAbs(output) {
		output = filepath.Join(pkg.Dir, output)
	}
	r.Enum = inspect.Inspect(pkg, r.Target.Type, inspect.Options{Window: r.Target.Window, Output: output}, diag.BagReporter{Bag: r.Bag})

	elapsed := time.Since(start)
	opts.Timer.Add(StageInspect.String(), elapsed)
	if r.Enum == nil {
		span.End("failed")
		opts.emit(Event{Target: key, Stage: StageInspect, Status: StatusError, Elapsed: elapsed})
		return
	}
	for _, m := range r.Enum.Members {
		trace.Point(trace.FromContext(ctx), trace.ScopeMember, "member", m.Name, span.ID(), "value", m.Value.String())
	}
	span.WithExtra("members", fmt.Sprint(r.Enum.Count())).End("")
	mark(ctx, &r.Done, StageInspect)
}

func lookupCache(ctx context.Context, opts Options, r *TargetResult, files *source.FileSet) bool {
	var entry CacheEntry
	key := CacheKey(r.Target, files)
	ok, err := opts.Cache.Get(key, &entry)
	if err != nil {
		diag.ReportInfo(diag.BagReporter{Bag: r.Bag}, diag.GenCacheFailed, source.Span{File: opts.Cache.Dir()},
			"ignoring cache entry: "+err.Error()).Emit()
		return false
	}
	if !ok || entry.Enum == nil {
		return false
	}
	r.Enum = entry.Enum
	r.Cached = true
	for _, d := range entry.Diags {
		r.Bag.Add(d)
	}
	mark(ctx, &r.Done, StageLoad)
	mark(ctx, &r.Done, StageInspect)
	trace.Point(trace.FromContext(ctx), trace.ScopeStage, "cache-hit", r.Target.Key(), trace.CurrentSpan(ctx), "key", key.Short())
	opts.emit(Event{Target: r.Target.Key(), Stage: StageInspect, Status: StatusCached})
	return true
}

func storeCache(ctx context.Context, opts Options, r *TargetResult, files *source.FileSet) {
	if r.Enum.External {
		diag.ReportInfo(diag.BagReporter{Bag: r.Bag}, diag.GenInfo, r.Enum.Span,
			"not cached: member values depend on constants of other packages").Emit()
		trace.Point(trace.FromContext(ctx), trace.ScopeStage, "cache-skip", r.Target.Key(), trace.CurrentSpan(ctx))
		return
	}
	entry := CacheEntry{Enum: r.Enum, Diags: r.Bag.Items()}
	if err := opts.Cache.Put(CacheKey(r.Target, files), &entry); err != nil {
		diag.ReportInfo(diag.BagReporter{Bag: r.Bag}, diag.GenCacheFailed, source.Span{File: opts.Cache.Dir()},
			"cannot store cache entry: "+err.Error()).Emit()
	}
}

func renderTarget(ctx context.Context, opts Options, r *TargetResult) bool {
	key := r.Target.Key()
	opts.emit(Event{Target: key, Stage: StageRender, Status: StatusWorking})
	_, span := trace.Start(ctx, trace.ScopeStage, "render")
	start := time.Now()
	defer func() { opts.Timer.Add(StageRender.String(), time.Since(start)) }()

	r.Output = gen.OutputPath(r.Enum, r.Target.Output, opts.Suffix)
	src, err := gen.Render(r.Enum, gen.Options{
		Transform:  r.Target.Transform,
		TrimPrefix: r.Target.TrimPrefix,
		Runtime:    opts.Runtime,
	})
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: r.Bag}, diag.GenFormatFailed, r.Enum.Span, err.Error()).Emit()
		span.End("failed")
		opts.emit(Event{Target: key, Stage: StageRender, Status: StatusError})
		return false
	}
	r.Source = src
	span.WithExtra("bytes", fmt.Sprint(len(src))).End("")
	mark(ctx, &r.Done, StageRender)
	return true
}

func writeTarget(ctx context.Context, opts Options, r *TargetResult) {
	key := r.Target.Key()
	opts.emit(Event{Target: key, Stage: StageWrite, Status: StatusWorking})
	_, span := trace.Start(ctx, trace.ScopeStage, "write")
	start := time.Now()
	defer func() { opts.Timer.Add(StageWrite.String(), time.Since(start)) }()

	changed, err := writeIfChanged(r.Output, r.Source, opts.Check)
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: r.Bag}, diag.GenWriteFailed, source.Span{File: r.Output}, err.Error()).Emit()
		span.End("failed")
		return
	}
	r.Changed = changed
	detail := "unchanged"
	if changed {
		detail = "written"
		if opts.Check {
			detail = "stale"
		}
	}
	span.End(detail)
	mark(ctx, &r.Done, StageWrite)
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}

func mark(ctx context.Context, done *Stages, s Stage) {
	next, err := done.Add(s)
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeStage, "mark-failed", err.Error(), trace.CurrentSpan(ctx))
		return
	}
	*done = next
}
