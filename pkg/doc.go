// Package pkg provides the core libraries for Chartgrid, a declarative 2D
// charting engine.
//
// # Overview
//
// A chart is described as data (a TOML or JSON document), laid out on a
// weighted grid of plots, axes, legend and title, and drawn to any canvas.
// Every drawn chart also yields a pick function that reports which element
// lies under a point. The pkg directory is organized into these areas:
//
//  1. [chart] - Chart core (grid, axes, legend, plots, layout)
//  2. [render] - Canvases and output sinks (SVG, PNG, PDF)
//  3. [document] - Chart documents and their validation
//  4. [pipeline] - Orchestration (load → build → render)
//  5. [server] and [session] - HTTP rendering and pick sessions
//  6. [cache] - Artifact caching (file, Redis)
//
// # Architecture
//
// The typical data flow through Chartgrid:
//
//	TOML/JSON document
//	         ↓
//	    [document] package (parse + validate)
//	         ↓
//	    [chart/layout] package (chart grid → renderable)
//	         ↓
//	    [render/sink] package (draw + pick)
//	         ↓
//	    SVG/PNG/PDF output, pick function
//
// # Quick Start
//
// Render a document and ask what lies under a point:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chartgrid/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Draw(context.Background(), pipeline.Options{Path: "latency.toml"})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//	p, ok := res.Pick(canvas.Point{X: 400, Y: 300})
//
// # Main Packages
//
// ## Chart Core
//
// [chart/grid] - Weighted grid layout. Cells report minimum sizes and
// baselines; spare space goes to rows and columns in proportion to their
// weights.
//
// [chart/axis] - Axes as grid cells: ticks, tick labels, titles and the
// overhang their end labels need.
//
// [chart/legend] - Legend entries grouped by title and wrapped into columns.
//
// [chart/plot] - Plot primitives (lines, points, bands, reference lines)
// drawn against a pair of axes.
//
// [chart/layout] - Assembles title, axes, plots and legend into one grid and
// answers picks.
//
// ## Rendering
//
// [render/canvas] - The drawing interface with [render/canvas/vector] for SVG
// and [render/canvas/raster] for PNG.
//
// [render/sink] - RenderSVG, RenderPNG and RenderPDF, plus PickMap for text
// maps of a chart.
//
// ## Infrastructure
//
// [cache] - Content-addressed artifact cache with file, Redis and null
// backends.
//
// [observability] - Hooks for parse, render, pick, cache and HTTP events.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
package pkg
