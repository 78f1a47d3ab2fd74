// Package sink renders a mounted grid into output formats.
//
// # Formats
//
//   - [RenderSVG]: an animated SVG document. Every box is a rounded <rect>
//     whose CSS animation-delay is the item's reveal delay, so the ripple
//     plays in any browser that opens the file.
//   - [RenderWebP]: a single raster frame of the reveal at a chosen instant,
//     encoded as WebP. [RenderFrames] samples the whole reveal.
//   - [RenderJSON]: the measured offsets and computed delays.
//
// All renderers take the [layout.Flow] the grid was mounted on and a
// [grid.Snapshot]; they never mutate the grid.
//
//	f := layout.Build(9)
//	g, _ := grid.New(0.002, 9)
//	g.Mount(f)
//
//	svg := sink.RenderSVG(f, g.Snapshot(), sink.WithDebug())
//	frame, err := sink.RenderWebP(f, g.Snapshot(), 0.25, sink.WithScale(2))
package sink
