package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/document"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

const chartTOML = `
title = "Latency"

[[series]]
title = "p50"
points = [[0, 12], [1, 14], [2, 11]]
`

// memCache is an in-memory cache.Cache that counts calls.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func inline(formats ...string) Options {
	return Options{Data: []byte(chartTOML), Format: document.FormatTOML, Formats: formats}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"SVG", false}, // case-insensitive
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSetDefaults(t *testing.T) {
	o := Options{Formats: []string{"SVG", "png", "svg"}}
	if err := o.setDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 2 || o.Formats[0] != "svg" || o.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	o = Options{}
	if err := o.setDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", o.Formats, DefaultFormat)
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		doc          document.Document
		wantW, wantH int
		wantErr      bool
	}{
		{"defaults", Options{}, document.Document{}, DefaultWidth, DefaultHeight, false},
		{"document", Options{}, document.Document{Width: 300, Height: 200}, 300, 200, false},
		{"options win", Options{Width: 640}, document.Document{Width: 300, Height: 200}, 640, 200, false},
		{"negative", Options{Width: -1}, document.Document{}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := tt.opts.size(&tt.doc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("size() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSize) {
					t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidSize)
				}
				return
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRunnerRender(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	res, err := r.Render(ctx, inline("svg", "png"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact missing <svg")
	}
	if !bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact missing PNG signature")
	}
	if res.Pick == nil {
		t.Error("fresh render should carry a pick function")
	}
	if res.CacheInfo.RenderHit {
		t.Error("first render should miss the cache")
	}
	if res.Width != DefaultWidth || res.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", res.Width, res.Height, DefaultWidth, DefaultHeight)
	}
	if res.Stats.SeriesCount != 1 {
		t.Errorf("SeriesCount = %d, want 1", res.Stats.SeriesCount)
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}

	again, err := r.Render(ctx, inline("svg", "png"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second render should hit the cache")
	}
	if again.Pick != nil {
		t.Error("cached render has no pick function")
	}
	if !bytes.Equal(again.Artifacts["svg"], res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	// A new size is a new key.
	opts := inline("svg")
	opts.Width = 400
	sized, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if sized.CacheInfo.RenderHit {
		t.Error("different size should miss the cache")
	}
}

func TestRunnerNoCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := inline("svg")
	opts.NoCache = true
	if _, err := r.Render(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("cache used with NoCache: gets=%d sets=%d", c.gets, c.sets)
	}
}

func TestRunnerRefresh(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	if _, err := r.Render(ctx, inline("svg")); err != nil {
		t.Fatal(err)
	}
	opts := inline("svg")
	opts.Refresh = true
	res, err := r.Render(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit || res.Pick == nil {
		t.Error("refresh should render again")
	}
	if c.sets != 2 {
		t.Errorf("cache sets = %d, want 2", c.sets)
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"bad format", inline("gif"), errors.ErrCodeInvalidFormat},
		{"bad document", Options{Data: []byte(`title = 3`)}, errors.ErrCodeInvalidDocument},
		{"missing file", Options{Path: "testdata/missing.toml"}, errors.ErrCodeNotFound},
		{"bad size", Options{Data: []byte(chartTOML), Width: 100000}, errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(ctx, tt.opts)
			if err == nil {
				t.Fatal("Render() should fail")
			}
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("code = %s, want %s (%v)", got, tt.want, err)
			}
		})
	}
}

func TestRunnerPick(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	ctx := context.Background()

	p, ok, err := r.Pick(ctx, inline(), DefaultWidth/2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || p.Kind != layout.PickTitle || p.Text != "Latency" {
		t.Errorf("Pick() = %v, %v, want title \"Latency\"", p, ok)
	}

	p, ok, err = r.Pick(ctx, inline(), DefaultWidth/2, DefaultHeight/2)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || p.Kind != layout.PickPlotArea {
		t.Errorf("Pick() = %v, %v, want plot area", p, ok)
	}

	if _, ok, _ := r.Pick(ctx, inline(), -5, -5); ok {
		t.Error("Pick() outside the chart should miss")
	}
}

func TestDrawIgnoresCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	res, err := r.Draw(context.Background(), inline("png"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Pick == nil {
		t.Error("Draw() should always carry a pick function")
	}
	if _, ok := res.Artifacts["svg"]; !ok {
		t.Error("Draw() renders svg")
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("Draw() used the cache: gets=%d sets=%d", c.gets, c.sets)
	}
}

func TestExampleCharts(t *testing.T) {
	paths, err := filepath.Glob("../../examples/charts/*")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example charts found")
	}
	r := NewRunner(nil, nil, nil)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			res, err := r.Draw(context.Background(), Options{Path: path})
			if err != nil {
				t.Fatalf("Draw(%s) error = %v", path, err)
			}
			if res.Stats.SeriesCount == 0 {
				t.Error("SeriesCount = 0")
			}
			if _, ok := res.Pick(canvas.Point{X: float64(res.Width) / 2, Y: float64(res.Height) / 2}); !ok {
				t.Error("the middle of the chart should pick something")
			}
		})
	}
}
