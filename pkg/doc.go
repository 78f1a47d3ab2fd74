// Package pkg provides ripplegrid, a ripple-reveal grid animator.
//
// A grid holds a fixed number of boxes. When the grid is started every box
// animates from hidden to visible after a delay proportional to its distance
// from an origin box, so the reveal spreads outward like a ripple.
//
// # Architecture
//
// Rendering runs in three stages:
//
//  1. Layout: place the boxes in a flow grid ([layout])
//  2. Mount: measure box offsets, compute delays and start ([grid])
//  3. Render: produce SVG, JSON or WebP frames ([render/sink])
//
// The stages are composed by [pipeline], which both the CLI and tests drive.
//
// # Quick Start
//
//	f := layout.Build(9)
//
//	g, _ := grid.New(0.002, 9, grid.WithOriginIndex(4))
//	g.Mount(f)
//
//	svg := sink.RenderSVG(f, g.Snapshot())
//
// # Main Packages
//
// [grid] - The ripple grid. Measure collects the origin offset, Compute
// assigns a delay to every item and Start fires the hidden to visible
// transition exactly once.
//
// [anim] - Animation states and the timed transition between them.
//
// [layout] - Flow layout that wraps fixed-size boxes into rows.
//
// [render/sink] - Output formats: animated SVG, JSON and WebP frames.
//
// [pipeline] - Layout, mount and render with validated options.
//
// [config] - TOML and YAML configuration files.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks fired at each pipeline stage.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/grid
// [anim]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/anim
// [layout]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/ripplegrid/pkg/observability
package pkg
