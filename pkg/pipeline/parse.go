package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/chartgrid/pkg/document"
	"github.com/matzehuels/chartgrid/pkg/observability"
)

// Load decodes and validates the document named by opts. It returns the
// raw bytes too; they identify the document in cache keys.
func Load(ctx context.Context, opts Options) (*document.Document, []byte, error) {
	src := opts.source()
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, src)
	start := time.Now()

	doc, data, err := load(opts)

	n := 0
	if doc != nil {
		n = len(doc.Series)
	}
	hooks.OnParseComplete(ctx, src, n, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

func load(opts Options) (*document.Document, []byte, error) {
	if opts.Data == nil {
		return document.Load(opts.Path)
	}
	format := opts.Format
	if format == "" {
		format = document.FormatFromPath(opts.Path)
	}
	doc, err := document.Parse(opts.Data, format)
	if err != nil {
		return nil, nil, err
	}
	return doc, opts.Data, nil
}
