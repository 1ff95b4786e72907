// Package pipeline provides the load → build → render pipeline for chartgrid.
//
// The CLI and the HTTP server both go through a [Runner], so documents are
// decoded, validated, cached and rendered the same way everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode and validate a TOML or JSON chart document
//  2. Build: turn the document into a chart renderable
//  3. Render: draw the chart once per requested format (SVG, PNG, PDF)
//
// Rendering also yields the chart's pick function, which answers which
// part of the chart lies under a point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Path:    "latency.toml",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Answer a single pick query:
//
//	p, ok, err := runner.Pick(ctx, opts, 400, 300)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/cache"
	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/chart/renderable"
	"github.com/matzehuels/chartgrid/pkg/document"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
)

// Defaults shared by the CLI and the server.
const (
	// DefaultWidth is the output width when neither the options nor the
	// document set one.
	DefaultWidth = 800

	// DefaultHeight is the output height when neither the options nor the
	// document set one.
	DefaultHeight = 600

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = sink.FormatSVG

	// DefaultScale is the PNG pixel ratio.
	DefaultScale = 2.0
)

// Pick is what a chart reports under a point.
type Pick = layout.Pick[float64, float64]

// PickFn answers pick queries against a rendered chart.
type PickFn = renderable.PickFn[Pick]

// Options configures one pipeline run.
type Options struct {
	// Path is the document file. It is ignored when Data is set.
	Path string `json:"path,omitempty"`
	// Data is an in-memory document, encoded as Format.
	Data   []byte          `json:"-"`
	Format document.Format `json:"format,omitempty"`

	Formats []string `json:"formats,omitempty"`
	// Width and Height override the document's preferred size.
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`
	// NoCache skips the cache entirely.
	NoCache bool `json:"no_cache,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded document.
	Document *document.Document

	// DocumentHash is the content hash of the document bytes.
	DocumentHash string

	// Width and Height are the size the chart was drawn at.
	Width, Height int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Pick answers pick queries against the rendered chart. It is nil
	// when every artifact came from the cache.
	Pick PickFn

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	LoadTime    time.Duration
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for a run.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from the cache
	Hits      []string // Formats served from the cache
}

// ValidateFormat checks that a format is one of svg, png or pdf.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, sink.Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// source names the document in logs and hooks.
func (o *Options) source() string {
	if o.Data == nil && o.Path != "" {
		return o.Path
	}
	return "inline"
}

// setDefaults fills in formats, scale and logger. Formats are lowercased
// and deduplicated.
func (o *Options) setDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(f)
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// size resolves the output size: options first, then the document, then
// the defaults.
func (o *Options) size(doc *document.Document) (int, int, error) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = doc.Width
	}
	if h == 0 {
		h = doc.Height
	}
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	if err := errors.ValidateSize(w, h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// artifactKeyOpts returns cache key options for one format.
func (o *Options) artifactKeyOpts(format string, w, h int) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Width: w, Height: h}
	if format == sink.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
