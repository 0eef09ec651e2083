package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hlview/hl/internal/config"
	"github.com/hlview/hl/internal/debuglog"
	"github.com/hlview/hl/internal/format"
	"github.com/hlview/hl/internal/input"
	"github.com/hlview/hl/internal/merge"
	"github.com/hlview/hl/internal/pager"
	"github.com/hlview/hl/internal/profile"
	"github.com/hlview/hl/internal/query"
	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/sink"
	"github.com/hlview/hl/internal/theme"
)

// defaultTimeTemplate is used for display when --time-format/-t is unset.
const defaultTimeTemplate = "%Y-%m-%dT%H:%M:%S.%3N%z"

// run wires C1-C10 together per SPEC_FULL §6: parse/validate the resolved
// configuration, resolve inputs, theme, and output sink, then dispatch to
// one of the three execution modes.
func run(cfg *config.Config, debugCfg *debuglog.Config, profCfg *profile.Config, args []string) error {
	if cfg.ListThemes {
		return listThemes(cfg.ThemeDir)
	}

	prof := profCfg.NewProfiler()
	if err := prof.Start(); err != nil {
		return &exitError{code: 2, err: fmt.Errorf("starting profiling: %w", err)}
	}

	defer func() {
		if err := prof.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "hl: stop profiling: %v\n", err)
		}
	}()

	dlog, err := debugCfg.Open()
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	defer func() {
		if err := dlog.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "hl: closing debug log: %v\n", err)
		}
	}()

	paths, err := resolveInputs(args)
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	if err := validateInputs(paths); err != nil {
		return &exitError{code: 1, err: err}
	}

	opts, err := resolveOptions(cfg)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	outSink, err := openSink(cfg, opts.colorMode)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	opts.formatCfg.ShowInputBadge = len(paths) > 1
	opts.formatCfg.TerminalSupportsUnicode = terminalSupportsUnicode()
	formatter := format.New(opts.formatCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	installInterruptHandler(ctx, cancel, cfg.InterruptIgnoreCount)

	if cfg.Follow && !opts.timeRange.Until.IsZero() {
		if d := time.Until(opts.timeRange.Until); d <= 0 {
			cancel()
		} else {
			timer := time.AfterFunc(d, cancel)
			defer timer.Stop()
		}
	}

	p := pipeline{
		cfg:       cfg,
		dlog:      dlog,
		formatter: formatter,
		packs:     opts.packs,
		minLevel:  opts.minLevel,
		filters:   opts.filters,
		query:     opts.query,
		timeRange: opts.timeRange,
		delim:     input.ParseDelimiterFlag(cfg.Delimiter),
		maxSize:   cfg.MaxMessageSize,
		recCfg:    opts.recordCfg,
		sink:      outSink,
	}

	switch {
	case cfg.Follow:
		err = p.runFollow(ctx, paths)
	case cfg.Sort:
		err = p.runSort(ctx, paths)
	default:
		err = p.runConcatenate(ctx, paths)
	}

	// The sink (in particular a pager's Wait) can itself fail or report a
	// broken pipe after every write has already succeeded, so its Close
	// error is classified the same way a mid-pipeline error is rather than
	// discarded (SPEC_FULL §6 exit code 141, "pager crash ... in follow
	// mode").
	if closeErr := outSink.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		if sink.IsBrokenPipe(err) || errors.Is(err, context.Canceled) {
			if cfg.Follow {
				return &exitError{code: 141}
			}

			return nil
		}

		return &exitError{code: 2, err: err}
	}

	return nil
}

// listThemes implements `--list-themes`: print every theme name the
// loader can resolve (stock plus custom directory) and exit.
func listThemes(themeDir string) error {
	loader := theme.NewLoader(themeDir)

	for _, name := range loader.List() {
		fmt.Println(name)
	}

	return nil
}

// resolveInputs applies SPEC_FULL §4.7's "a bare `-` argument, or no
// arguments at all, reads stdin" rule.
func resolveInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if sink.IsInputTerminal() {
		return nil, errors.New("no input files given and stdin is a terminal")
	}

	return []string{input.StdinSentinel}, nil
}

// validateInputs stats every non-stdin path up front so a missing or
// unreadable file fails before any output is produced (SPEC_FULL §6 exit
// code 1, "file-validation failure before any output").
func validateInputs(paths []string) error {
	for _, p := range paths {
		if p == input.StdinSentinel {
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		if info.IsDir() {
			return fmt.Errorf("%s: is a directory", p)
		}
	}

	return nil
}

// terminalSupportsUnicode is a best-effort detector for whether the
// environment's locale can render the box-drawing glyphs used in expanded
// rendering (SPEC_FULL §4.9 `--ascii auto`), following the common
// LC_ALL/LC_CTYPE/LANG precedence shells themselves use.
func terminalSupportsUnicode() bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(key); v != "" {
			up := strings.ToUpper(v)

			return strings.Contains(up, "UTF-8") || strings.Contains(up, "UTF8")
		}
	}

	return false
}

// installInterruptHandler cancels ctx once more than ignoreCount SIGINTs
// have arrived (SPEC_FULL §6 `--interrupt-ignore-count`, "number of
// interrupts to absorb in pager scenarios": a pager's own search/less
// prompt can itself pass along an interrupt hl should not die on).
func installInterruptHandler(ctx context.Context, cancel context.CancelFunc, ignoreCount int) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		defer signal.Stop(sigCh)

		seen := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				seen++
				if seen > ignoreCount {
					cancel()

					return
				}
			}
		}
	}()
}

// resolvedOptions bundles every parsed/validated piece of configuration
// run needs, separated out so run itself stays a thin dispatcher.
type resolvedOptions struct {
	minLevel  record.Level
	filters   []query.Filter
	query     query.Node
	timeRange query.TimeRange
	colorMode sink.ColorMode
	formatCfg format.Config
	packs     [5]theme.StylePack
	recordCfg record.Config
}

func resolveOptions(cfg *config.Config) (resolvedOptions, error) {
	var opts resolvedOptions

	minLevel, ok := record.ParseLevel(record.String(cfg.Level, false))
	if !ok {
		return opts, fmt.Errorf("unrecognized level %q", cfg.Level)
	}

	opts.minLevel = minLevel

	for _, raw := range cfg.Filters {
		flt, err := query.ParseFilter(raw)
		if err != nil {
			return opts, fmt.Errorf("parsing filter %q: %w", raw, err)
		}

		opts.filters = append(opts.filters, flt)
	}

	if cfg.Query != "" {
		node, err := query.Parse(cfg.Query)
		if err != nil {
			return opts, fmt.Errorf("parsing query: %w", err)
		}

		opts.query = node
	}

	now := time.Now()

	if cfg.Since != "" {
		t, err := query.ParseTimeBound(cfg.Since, now)
		if err != nil {
			return opts, fmt.Errorf("parsing --since: %w", err)
		}

		opts.timeRange.Since = t
	}

	if cfg.Until != "" {
		t, err := query.ParseTimeBound(cfg.Until, now)
		if err != nil {
			return opts, fmt.Errorf("parsing --until: %w", err)
		}

		opts.timeRange.Until = t
	}

	expansion, ok := format.ParseExpansionMode(cfg.Expansion)
	if !ok {
		return opts, fmt.Errorf("unrecognized expansion mode %q", cfg.Expansion)
	}

	flatten, ok := format.ParseFlattenMode(cfg.Flatten)
	if !ok {
		return opts, fmt.Errorf("unrecognized flatten mode %q", cfg.Flatten)
	}

	ascii, ok := format.ParseASCIIMode(cfg.ASCII)
	if !ok {
		return opts, fmt.Errorf("unrecognized ascii mode %q", cfg.ASCII)
	}

	colorMode, ok := sink.ParseColorMode(cfg.Color)
	if !ok {
		return opts, fmt.Errorf("unrecognized color mode %q", cfg.Color)
	}

	opts.colorMode = colorMode

	loc, err := resolveLocation(cfg)
	if err != nil {
		return opts, err
	}

	timeTemplate := cfg.TimeFormat
	if timeTemplate == "" {
		timeTemplate = defaultTimeTemplate
	}

	var visibility format.Visibility
	for _, raw := range cfg.Hide {
		visibility.Rules = append(visibility.Rules, format.ParseVisibilityRule(raw))
	}

	opts.formatCfg = format.Config{
		Expansion:       expansion,
		Flatten:         flatten,
		ASCII:           ascii,
		Location:        loc,
		TimeTemplate:    timeTemplate,
		HideEmptyFields: cfg.HideEmpty && !cfg.ShowEmpty,
		Raw:             cfg.Raw,
		RawFields:       cfg.RawFields,
		Visibility:      visibility,
	}

	loader := theme.NewLoader(cfg.ThemeDir)

	for lvl := record.LevelTrace; lvl <= record.LevelError; lvl++ {
		pack, err := loader.Resolve(cfg.Theme, lvl)
		if err != nil {
			return opts, err
		}

		opts.packs[lvl] = pack
	}

	opts.recordCfg = record.DefaultConfig()
	opts.recordCfg.Detect.AllowPrefix = cfg.AllowPrefix

	return opts, nil
}

func resolveLocation(cfg *config.Config) (*time.Location, error) {
	switch {
	case cfg.TimeZone != "":
		loc, err := time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("loading time zone %q: %w", cfg.TimeZone, err)
		}

		return loc, nil
	case cfg.Local:
		return time.Local, nil
	default:
		return time.UTC, nil
	}
}

// openSink resolves output to a file (`-o`), a pager, or plain stdout, in
// that precedence (SPEC_FULL §4.10/§4.11).
func openSink(cfg *config.Config, colorMode sink.ColorMode) (*sink.Sink, error) {
	if cfg.Output != "" {
		return sink.OpenFile(cfg.Output)
	}

	p, err := resolvePager(cfg)
	if err != nil {
		return nil, err
	}

	return sink.Open(colorMode, p)
}

// resolvePager decides whether a pager subprocess should wrap output, and
// which one, honoring `--no-pager`, `--paging`, and the `HL_PAGER`/
// `HL_FOLLOW_PAGER`/`PAGER` environment candidates (SPEC_FULL §6, §4.11).
func resolvePager(cfg *config.Config) (*pager.Profile, error) {
	if cfg.NoPager {
		return nil, nil
	}

	switch cfg.Paging {
	case "never":
		return nil, nil
	case "always":
	default: // "auto"
		if !sink.IsOutputTerminal() {
			return nil, nil
		}
	}

	candidates := []string{"HL_PAGER", "PAGER"}
	if cfg.Follow {
		candidates = append([]string{"HL_FOLLOW_PAGER"}, candidates...)
	}

	env := make(pager.MapEnviron)

	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}

	p, err := pager.Resolve(candidates, env, pager.ProfileSet{}, cfg.Follow, cfg.PagerDelimiter)
	if err != nil {
		var unresolved *pager.UnresolvedError
		if errors.As(err, &unresolved) {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

// shouldKeep applies the level/filter/query/time-range predicates common
// to every execution mode (SPEC_FULL §4.5/§4.6/§4.8). applyTimeRange is
// false in concatenation mode, which never consults --since/--until
// (SPEC_FULL §4.6).
func shouldKeep(rec *record.Record, minLevel record.Level, filters []query.Filter, q query.Node, tr query.TimeRange, applyTimeRange bool) bool {
	if rec.HasLevel && rec.Level < minLevel {
		return false
	}

	if !query.MatchAll(filters, rec) {
		return false
	}

	if q != nil && !query.Eval(q, rec) {
		return false
	}

	if applyTimeRange && !tr.IsZero() && !tr.Match(rec) {
		return false
	}

	return true
}

// packFor returns the StylePack for rec's level, defaulting to info for
// records with no resolved level.
func packFor(packs [5]theme.StylePack, rec *record.Record) theme.StylePack {
	if rec.HasLevel {
		return packs[rec.Level]
	}

	return packs[record.LevelInfo]
}

// classifyError maps a per-segment error from [input.Source]/[input.Tailer]
// onto a [debuglog.Kind] for diagnostic logging (SPEC_FULL §7). Decode
// failures that are not a known sentinel are logged as JSON syntax
// errors, the majority case in practice; this is a coarser classification
// than the five-way split SPEC_FULL's error table draws, a simplification
// recorded in DESIGN.md.
func classifyError(err error) debuglog.Kind {
	var derr *input.DecompressError

	switch {
	case errors.Is(err, input.ErrMessageTooLarge):
		return debuglog.KindMessageTooLarge
	case errors.As(err, &derr):
		return debuglog.KindDecompress
	default:
		return debuglog.KindJSONSyntax
	}
}

// pipeline holds everything the three execution-mode methods share.
type pipeline struct {
	cfg       *config.Config
	dlog      *debuglog.Logger
	formatter *format.Formatter
	packs     [5]theme.StylePack
	minLevel  record.Level
	filters   []query.Filter
	query     query.Node
	timeRange query.TimeRange
	delim     input.Delimiter
	maxSize   int
	recCfg    record.Config
	sink      *sink.Sink
}

// runConcatenate reads each path fully in argument order, applying no
// cross-source ordering (SPEC_FULL §4.7 "Concatenation (default)").
func (p *pipeline) runConcatenate(ctx context.Context, paths []string) error {
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		src, err := input.OpenFileSource(ctx, path, i, p.delim, p.maxSize, p.recCfg)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}

		src.OnSegmentError = func(err error) { p.dlog.RecordError(classifyError(err), path, err) }

		err = p.drainReader(ctx, src, false)

		closeErr := src.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if closeErr != nil {
			return closeErr
		}
	}

	return nil
}

// runSort performs the full-file k-way chronological merge (SPEC_FULL
// §4.7 "Batch merge (sort mode)"), opening each source with
// [input.OpenFileSourceSince] so a --since bound can skip a leading
// prefix of each file without parsing it.
func (p *pipeline) runSort(ctx context.Context, paths []string) error {
	readers := make([]merge.Reader, len(paths))
	sources := make([]*input.Source, len(paths))

	for i, path := range paths {
		src, err := input.OpenFileSourceSince(ctx, path, i, p.delim, p.maxSize, p.recCfg, p.timeRange.Since)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}

		capturedPath := path
		src.OnSegmentError = func(err error) { p.dlog.RecordError(classifyError(err), capturedPath, err) }

		readers[i] = src
		sources[i] = src
	}

	defer func() {
		for _, src := range sources {
			src.Close()
		}
	}()

	bm := merge.NewBatchMerger(readers)
	bm.OnSourceError = func(sourceIndex int, err error) {
		if !errors.Is(err, io.EOF) {
			p.dlog.RecordError(classifyError(err), paths[sourceIndex], err)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := bm.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := p.emit(rec, true); err != nil {
			return err
		}
	}
}

// runFollow implements SPEC_FULL §4.7 "Follow mode": one goroutine per
// source feeds a shared [merge.Follower], whose single merger goroutine
// emits records in sync-window-local chronological order.
func (p *pipeline) runFollow(ctx context.Context, paths []string) error {
	g, gctx := errgroup.WithContext(ctx)

	ins := make([]<-chan merge.Message, len(paths))
	out := make(chan *record.Record, 64)

	for i, path := range paths {
		ch := make(chan merge.Message, 64)
		ins[i] = ch

		idx := i
		srcPath := path

		if srcPath == input.StdinSentinel {
			src, err := input.OpenFileSource(gctx, srcPath, idx, p.delim, p.maxSize, p.recCfg)
			if err != nil {
				return fmt.Errorf("opening %s: %w", srcPath, err)
			}

			src.OnSegmentError = func(err error) { p.dlog.RecordError(classifyError(err), srcPath, err) }

			g.Go(func() error {
				defer close(ch)
				defer src.Close()

				src.Run(gctx, ch)

				return nil
			})

			continue
		}

		tailer, err := input.NewTailer(srcPath, p.delim, p.maxSize, p.recCfg, idx, p.cfg.Tail)
		if err != nil {
			return fmt.Errorf("watching %s: %w", srcPath, err)
		}

		g.Go(func() error {
			defer close(ch)

			tailer.Run(gctx, ch)

			return nil
		})
	}

	follower := merge.NewFollower(time.Duration(p.cfg.SyncIntervalMS) * time.Millisecond)

	g.Go(func() error {
		follower.Run(gctx, ins, out)

		return nil
	})

	g.Go(func() error {
		for rec := range out {
			if !shouldKeep(rec, p.minLevel, p.filters, p.query, p.timeRange, true) {
				continue
			}

			if err := p.sink.WriteLine(p.renderLine(rec, format.IndicatorSync)); err != nil {
				return err
			}
		}

		return nil
	})

	err := g.Wait()
	if err != nil && errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// drainReader reads src to completion (or ctx cancellation), emitting
// kept records with no sync indicator, since concatenation mode -- the
// only caller -- never shows one.
func (p *pipeline) drainReader(ctx context.Context, src *input.Source, applyTimeRange bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := src.Next()
		if err != nil {
			return err
		}

		if err := p.emitMode(rec, applyTimeRange, format.IndicatorNone); err != nil {
			return err
		}
	}
}

// emit writes rec through the sync-indicator rendering path used by sort
// mode.
func (p *pipeline) emit(rec *record.Record, applyTimeRange bool) error {
	return p.emitMode(rec, applyTimeRange, format.IndicatorSync)
}

func (p *pipeline) emitMode(rec *record.Record, applyTimeRange bool, indicator format.IndicatorState) error {
	if !shouldKeep(rec, p.minLevel, p.filters, p.query, p.timeRange, applyTimeRange) {
		return nil
	}

	return p.sink.WriteLine(p.renderLine(rec, indicator))
}

func (p *pipeline) renderLine(rec *record.Record, indicator format.IndicatorState) string {
	pack := packFor(p.packs, rec)

	return p.formatter.InputBadgeText(pack, rec.Badge) + p.formatter.Format(rec, pack, indicator)
}

