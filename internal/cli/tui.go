package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
	"github.com/matzehuels/chartgrid/pkg/render/sink"
)

// Chart units per terminal cell. Cells are about twice as tall as wide.
const (
	cellWidth  = 10
	cellHeight = 20

	// chromeLines are the terminal lines taken by everything but the map.
	chromeLines = 11
)

var (
	mapStyle    = lipgloss.NewStyle().Foreground(colorGray)
	cursorStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

// exploreCommand creates the explore command, an interactive pick host.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Explore a chart interactively",
		Long: `Draw a coarse map of a chart in the terminal and report what lies under
the cursor. The chart is redrawn to fit whenever the terminal is resized.

Keys: arrows or hjkl move, mouse moves the cursor, r redraws, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			m := newExploreModel(cmd.Context(), runner, pipeline.Options{Path: args[0]})
			_, err := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			).Run()
			return err
		},
	}
}

// drawnMsg carries a finished draw back to the model.
type drawnMsg struct {
	res *pipeline.Result
	err error
}

// exploreModel is the bubbletea model of the explore command. Each resize
// draws the chart again and keeps the new pick function; each cursor move
// queries it.
type exploreModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	cols, rows int // map size in cells
	cx, cy     int // cursor cell

	res  *pipeline.Result
	grid []string
	pick pipeline.Pick
	hit  bool
	err  error
}

func newExploreModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) exploreModel {
	return exploreModel{ctx: ctx, runner: runner, opts: opts, cols: 60, rows: 15}
}

func (m exploreModel) Init() tea.Cmd {
	return m.draw()
}

// draw renders the chart at the size of the map.
func (m exploreModel) draw() tea.Cmd {
	opts := m.opts
	opts.Width, opts.Height = m.cols*cellWidth, m.rows*cellHeight
	return func() tea.Msg {
		res, err := m.runner.Draw(m.ctx, opts)
		return drawnMsg{res: res, err: err}
	}
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.cy--
		case "down", "j":
			m.cy++
		case "left", "h":
			m.cx--
		case "right", "l":
			m.cx++
		case "r":
			return m, m.draw()
		default:
			return m, nil
		}
		m.query()
	case tea.MouseMsg:
		// The map starts below the header, one cell in from the border.
		m.cx, m.cy = msg.X-1, msg.Y-3
		m.query()
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 10)
		m.rows = max(msg.Height-chromeLines, 5)
		return m, m.draw()
	case drawnMsg:
		m.res, m.err = msg.res, msg.err
		if msg.err == nil {
			// The terminal may have been resized since the draw started.
			m.cols, m.rows = msg.res.Width/cellWidth, msg.res.Height/cellHeight
			size := canvas.Size{W: float64(msg.res.Width), H: float64(msg.res.Height)}
			m.grid = sink.PickMap(msg.res.Pick, size, m.cols, m.rows, glyph)
		}
		m.query()
	}
	return m, nil
}

// query clamps the cursor to the map and picks at the centre of its cell.
func (m *exploreModel) query() {
	m.cx = min(max(m.cx, 0), m.cols-1)
	m.cy = min(max(m.cy, 0), m.rows-1)
	if m.res == nil || m.res.Pick == nil {
		return
	}
	x := (float64(m.cx) + 0.5) * float64(m.res.Width) / float64(m.cols)
	y := (float64(m.cy) + 0.5) * float64(m.res.Height) / float64(m.rows)
	m.pick, m.hit = pipeline.Query(m.ctx, m.res.Pick, x, y)
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("chartgrid explore"))
	b.WriteString(" " + StyleDim.Render(m.opts.Path))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n\n" + StyleDim.Render("r redraw  q quit"))
		return b.String()
	}
	if m.grid == nil {
		b.WriteString(StyleDim.Render("drawing..."))
		return b.String()
	}

	var rows strings.Builder
	for j, row := range m.grid {
		if j > 0 {
			rows.WriteString("\n")
		}
		if j != m.cy || m.cx >= len([]rune(row)) {
			rows.WriteString(mapStyle.Render(row))
			continue
		}
		r := []rune(row)
		rows.WriteString(mapStyle.Render(string(r[:m.cx])))
		rows.WriteString(cursorStyle.Render(string(r[m.cx])))
		rows.WriteString(mapStyle.Render(string(r[m.cx+1:])))
	}
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Render(rows.String()))
	b.WriteString("\n")

	b.WriteString(pickTable(m.pick, m.hit))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%dx%d  T title  A axis title  - | axes  L legend  ' ' plot  %c nothing",
		m.res.Width, m.res.Height, sink.Miss)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓/←/→ move  r redraw  q quit"))
	return b.String()
}

// pickTable shows the pick under the cursor as a one-row table.
func pickTable(p pipeline.Pick, hit bool) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	kind, text, x, y := "none", "", "", ""
	if hit {
		kind, text = p.Kind.String(), p.Text
		switch p.Kind {
		case layout.PickXBottomAxis, layout.PickXTopAxis:
			x = fmt.Sprintf("%.4g", p.X)
		case layout.PickYLeftAxis:
			y = fmt.Sprintf("%.4g", p.YLeft)
		case layout.PickYRightAxis:
			y = fmt.Sprintf("%.4g", p.YRight)
		case layout.PickPlotArea:
			x = fmt.Sprintf("%.4g", p.X)
			y = fmt.Sprintf("%.4g / %.4g", p.YLeft, p.YRight)
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Text", "X", "Y").
		Row(kind, text, x, y).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		}).
		Render()
}

// glyph is the map character for a pick.
func glyph(p pipeline.Pick) rune {
	switch p.Kind {
	case layout.PickTitle:
		return 'T'
	case layout.PickLegend:
		return 'L'
	case layout.PickXBottomAxisTitle, layout.PickXTopAxisTitle, layout.PickYLeftAxisTitle, layout.PickYRightAxisTitle:
		return 'A'
	case layout.PickXBottomAxis, layout.PickXTopAxis:
		return '-'
	case layout.PickYLeftAxis, layout.PickYRightAxis:
		return '|'
	case layout.PickPlotArea:
		return ' '
	}
	return sink.Miss
}
