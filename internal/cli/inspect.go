package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints every box's
// measured offset, its distance from the origin, and its delay.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags gridFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print each box's offset, distance and delay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), opts)
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options) error {
	runner := c.newRunner()
	f := runner.Layout(ctx, opts)
	g, err := runner.Mount(ctx, f, opts)
	if err != nil {
		return err
	}
	s := g.Snapshot()

	fmt.Println(StyleTitle.Render("Ripple grid"))
	printKeyValue("items", strconv.Itoa(len(s.Items)))
	printKeyValue("delay per pixel", fmt.Sprintf("%gs", s.DelayPerPixel))
	printKeyValue("origin index", originLabel(s))
	printKeyValue("origin offset", fmt.Sprintf("top %.0f, left %.0f", s.Origin.Top, s.Origin.Left))
	printKeyValue("max delay", fmt.Sprintf("%.3fs", s.MaxDelay()))
	fmt.Println()
	fmt.Println(delayTable(s).Render())
	return nil
}

// originLabel describes the configured origin and whether it was published.
func originLabel(s grid.Snapshot) string {
	if s.OriginPublished {
		return strconv.Itoa(s.OriginIndex)
	}
	return fmt.Sprintf("%d (not in grid, measuring from corner)", s.OriginIndex)
}

// delayTable builds a table of index, top, left, distance and delay.
func delayTable(s grid.Snapshot) *table.Table {
	rows := make([][]string, 0, len(s.Items))
	for _, it := range s.Items {
		distance := "—"
		if it.Attached {
			distance = fmt.Sprintf("%.1f", grid.Distance(it.Offset, s.Origin))
		}
		rows = append(rows, []string{
			strconv.Itoa(it.Index),
			fmt.Sprintf("%.0f", it.Offset.Top),
			fmt.Sprintf("%.0f", it.Offset.Left),
			distance,
			fmt.Sprintf("%.3fs", it.Delay),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Top", "Left", "Distance", "Delay").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(s.Items) {
				it := s.Items[row]
				switch {
				case it.Origin:
					return cellStyle.Foreground(colorGreen).Bold(true)
				case !it.Attached:
					return cellStyle.Foreground(colorDim)
				case col == 4:
					return cellStyle.Foreground(colorCyan)
				}
			}
			return cellStyle
		})
}
