package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/server"
)

// pickOpts holds the command-line flags for the pick command.
type pickOpts struct {
	x, y   float64
	width  int
	height int
	json   bool
}

// pickCommand creates the pick command, which reports what lies under a
// point of a rendered chart.
func (c *CLI) pickCommand() *cobra.Command {
	var opts pickOpts

	cmd := &cobra.Command{
		Use:   "pick [file]",
		Short: "Report the chart element under a point",
		Long: `Render a chart document and report which element lies under the point (x, y).

Coordinates are chart units with the origin at the top left, the same units
as --width and --height.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", 0, "x coordinate")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "y coordinate")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width (default: document width, else 800)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "chart height (default: document height, else 600)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, w io.Writer, input string, opts pickOpts) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	p, ok, err := runner.Pick(ctx, pipeline.Options{
		Path:   input,
		Width:  opts.width,
		Height: opts.height,
		Logger: loggerFromContext(ctx),
	}, opts.x, opts.y)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(server.NewPickResult(p, ok))
	}
	if !ok {
		_, err = fmt.Fprintln(w, "none")
		return err
	}
	_, err = fmt.Fprintln(w, p.String())
	return err
}
