package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ripplegrid/pkg/anim"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
	"github.com/matzehuels/ripplegrid/pkg/pipeline"
)

const (
	// frameInterval is the player's redraw rate (~30 fps).
	frameInterval = 33 * time.Millisecond

	// cellWidth and cellHeight size one box in terminal cells.
	cellWidth  = 10
	cellHeight = 4
)

// shades maps opacity to a block glyph, faintest first.
var shades = []string{"░", "▒", "▓", "█"}

var (
	playBox       = lipgloss.NewStyle().Foreground(colorWhite).Background(colorPurple)
	playHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// playCommand creates the play command for watching the reveal in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var flags gridFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the ripple reveal in the terminal",
		Long: `Play the ripple reveal in the terminal.

Keys:
  r  replay with a freshly mounted grid
  q  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runPlay(cmd.Context(), opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts pipeline.Options) error {
	m, err := newPlayModel(ctx, c.newRunner(), opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// PlayModel - Terminal reveal player
// =============================================================================

type tickMsg time.Time

// playModel is the bubbletea model for the terminal player. Each replay
// mounts a new grid, so every run gets its own one-shot trigger.
type playModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	opts    pipeline.Options
	flow    layout.Flow
	grid    *grid.Grid
	ease    anim.Ease
	start   time.Time
	now     time.Time
	replays int
}

func newPlayModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (playModel, error) {
	ease, err := anim.ParseEase(opts.Ease)
	if err != nil {
		return playModel{}, err
	}
	m := playModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		flow:   pipeline.Layout(opts),
		ease:   ease,
	}
	if err := m.mount(time.Now()); err != nil {
		return m, err
	}
	return m, nil
}

// mount replaces the grid with a freshly mounted one whose reveal starts at now.
func (m *playModel) mount(now time.Time) error {
	g, err := m.runner.Mount(m.ctx, m.flow, m.opts)
	if err != nil {
		return err
	}
	m.grid = g
	m.start, m.now = now, now
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m playModel) Init() tea.Cmd {
	return tick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if err := m.mount(m.now); err != nil {
				return m, tea.Quit
			}
			m.replays++
		}
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

// elapsed returns seconds since the current grid's reveal was triggered.
func (m playModel) elapsed() float64 {
	return m.now.Sub(m.start).Seconds()
}

// done reports whether every box has finished revealing.
func (m playModel) done() bool {
	return m.elapsed() >= m.grid.MaxDelay()+m.opts.Duration
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Ripple reveal"))
	b.WriteString("\n\n")
	b.WriteString(m.cells())
	b.WriteString("\n\n")

	status := fmt.Sprintf("t=%.2fs  max delay %.3fs", m.elapsed(), m.grid.MaxDelay())
	if m.done() {
		status += "  done"
	}
	if m.replays > 0 {
		status += fmt.Sprintf("  replay %d", m.replays)
	}
	b.WriteString(playHelpStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(playHelpStyle.Render("r replay  q quit"))
	return b.String()
}

// cells draws the current grid with the configured reveal transition.
func (m playModel) cells() string {
	return renderCells(m.flow, m.grid, func(it *grid.Item) anim.Variant {
		return it.VariantWith(m.elapsed(), m.opts.Duration, m.ease)
	})
}

// renderCells draws the grid as rows of terminal cells, asking variant for
// each box's appearance. Detached boxes leave no cell.
func renderCells(f layout.Flow, g *grid.Grid, variant func(*grid.Item) anim.Variant) string {
	columns := max(f.Columns, 1)
	var rows, row []string
	for _, it := range g.Items() {
		b, ok := f.Box(it.Index())
		if !ok || b.Detached {
			continue
		}
		row = append(row, renderCell(variant(it)))
		if len(row) == columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell draws one box. Opacity picks the glyph and scale shrinks the
// block about the cell's centre.
func renderCell(v anim.Variant) string {
	inner := ""
	if v.Opacity > 0 {
		w := max(int(math.Round(float64(cellWidth-2)*v.Scale)), 1)
		h := max(int(math.Round(float64(cellHeight-1)*v.Scale)), 1)
		line := strings.Repeat(shade(v.Opacity), w)
		inner = playBox.Render(strings.TrimSuffix(strings.Repeat(line+"\n", h), "\n"))
	}
	return lipgloss.Place(cellWidth, cellHeight, lipgloss.Center, lipgloss.Center, inner,
		lipgloss.WithWhitespaceBackground(colorPurple))
}

// shade returns the glyph for opacity in (0, 1].
func shade(opacity float64) string {
	i := int(math.Ceil(opacity*float64(len(shades)))) - 1
	return shades[min(max(i, 0), len(shades)-1)]
}
