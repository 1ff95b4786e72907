package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/cache"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state, so multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render runs the complete load → build → render pipeline. Artifacts found
// in the cache are not drawn again; when every format is cached the result
// has no pick function.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	start := time.Now()
	doc, data, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.DocumentHash = cache.Hash(data)
	result.Stats.LoadTime = time.Since(start)
	result.Stats.SeriesCount = len(doc.Series)
	if result.Width, result.Height, err = opts.size(doc); err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded document",
		"source", opts.source(),
		"series", result.Stats.SeriesCount,
		"duration", result.Stats.LoadTime)

	missing := r.fromCache(ctx, opts, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		opts.Logger.Debug("all artifacts cached", "formats", opts.Formats)
		return result, nil
	}

	// Stage 2: Build
	start = time.Now()
	chart, err := Build(doc)
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(start)

	// Stage 3: Render
	start = time.Now()
	artifacts, pick, err := Render(ctx, chart, result.Width, result.Height, missing, opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(start)
	result.Pick = pick
	for format, out := range artifacts {
		result.Artifacts[format] = out
		r.store(ctx, opts, result, format, out)
	}

	opts.Logger.Info("rendered chart",
		"formats", missing,
		"size", fmt.Sprintf("%dx%d", result.Width, result.Height),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Draw renders opts as SVG without consulting the cache, so the result
// always carries a pick function. Interactive hosts use it.
func (r *Runner) Draw(ctx context.Context, opts Options) (*Result, error) {
	opts.Formats = []string{sink.FormatSVG}
	opts.Refresh = true
	opts.NoCache = true
	return r.Render(ctx, opts)
}

// Pick renders opts and reports what lies under (x, y) in chart units.
func (r *Runner) Pick(ctx context.Context, opts Options, x, y float64) (Pick, bool, error) {
	res, err := r.Draw(ctx, opts)
	if err != nil {
		return Pick{}, false, err
	}
	p, ok := Query(ctx, res.Pick, x, y)
	return p, ok, nil
}

// Query asks pick about (x, y) and reports the query to the pipeline hooks.
func Query(ctx context.Context, pick PickFn, x, y float64) (Pick, bool) {
	start := time.Now()
	p, ok := pick(canvas.Point{X: x, Y: y})
	observability.Pipeline().OnPick(ctx, p.Kind.String(), time.Since(start))
	return p, ok
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare validates opts and applies defaults, including the runner's
// logger.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.setDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// fromCache fills result with cached artifacts and returns the formats
// still to render. Cache failures are logged and count as misses.
func (r *Runner) fromCache(ctx context.Context, opts Options, result *Result) []string {
	if opts.NoCache || opts.Refresh {
		return opts.Formats
	}
	hooks := observability.Cache()
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.DocumentHash, opts.artifactKeyOpts(format, result.Width, result.Height))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, format)
			missing = append(missing, format)
			continue
		}
		hooks.OnCacheHit(ctx, format)
		result.Artifacts[format] = data
		result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
	}
	return missing
}

func (r *Runner) store(ctx context.Context, opts Options, result *Result, format string, data []byte) {
	if opts.NoCache {
		return
	}
	key := r.Keyer.ArtifactKey(result.DocumentHash, opts.artifactKeyOpts(format, result.Width, result.Height))
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}
