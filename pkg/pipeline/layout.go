package pipeline

import (
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
)

// =============================================================================
// Layout and Mount
// =============================================================================

// Layout flows opts.ItemCount boxes into the container.
func Layout(opts Options) layout.Flow {
	var layoutOpts []layout.Option
	if opts.ContainerWidth > 0 {
		layoutOpts = append(layoutOpts, layout.WithContainerWidth(opts.ContainerWidth))
	}
	if len(opts.Detached) > 0 {
		layoutOpts = append(layoutOpts, layout.WithDetached(opts.Detached...))
	}
	return layout.Build(opts.ItemCount, layoutOpts...)
}

// NewGrid creates an unmounted grid from opts.
func NewGrid(opts Options) (*grid.Grid, error) {
	return grid.New(opts.DelayPerPixel, opts.ItemCount, grid.WithOriginIndex(opts.OriginIndex))
}
