package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs); "-" writes to stdout
	formats []string // output formats: "svg", "png", "pdf"
	width   int      // chart width, 0 uses the document's or the default
	height  int      // chart height, 0 uses the document's or the default
	scale   float64  // PNG pixel ratio
	noCache bool     // bypass the artifact cache
	refresh bool     // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart document to SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("stdout output takes a single format, got %d", len(opts.formats))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width (default: document width, else 800)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height (default: document height, else 600)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixels per chart unit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender renders input to every requested format and writes the files.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "Rendering "+input)
	spin.Start()
	res, err := runner.Render(ctx, pipeline.Options{
		Path:    input,
		Formats: opts.formats,
		Width:   opts.width,
		Height:  opts.height,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		NoCache: opts.noCache,
		Logger:  logger,
	})
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	prog.done("Rendered "+input, "size", fmt.Sprintf("%dx%d", res.Width, res.Height), "cached", res.CacheInfo.RenderHit)

	if opts.output == "-" {
		_, err := stdout.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats))
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(res.Artifacts[format]))
		printFile(stdout, path, len(res.Artifacts[format]))
	}
	fmt.Fprintln(stdout, statsLine(res.Stats.SeriesCount, res.Width, res.Height, res.CacheInfo.RenderHit))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(sink.Formats, strings.ToLower(strings.TrimPrefix(ext, "."))) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file one format is written to. A single format
// goes to output as given; several formats share a base path.
func outputPath(output, input, format string, n int) string {
	if output != "" && n == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
