// Package grid models a ripple-reveal grid: a fixed sequence of items that
// become visible with a delay proportional to their distance from an origin
// item.
//
// # Overview
//
// A [Grid] owns its [Item] values and a single shared origin offset. Delays
// are derived in two explicit passes over all items:
//
//  1. Measure: every item asks the [Surface] for its offset. The origin item
//     additionally publishes its offset into the Grid's origin slot.
//  2. Compute: every item derives its delay from the published origin.
//
// Every item finishes the measure pass before any item starts the compute
// pass. [Grid.Compute] refuses to run until a measure pass has completed, so
// no item can read an unpublished origin.
//
// # Usage
//
//	g, err := grid.New(grid.DefaultDelayPerPixel, 9, grid.WithOriginIndex(4))
//	if err != nil {
//	    return err
//	}
//	g.Mount(surface) // measure, compute, then start the reveal
//
//	for _, it := range g.Items() {
//	    fmt.Printf("%d: %.3fs\n", it.Index(), it.Delay())
//	}
//
// # Origin Resolution
//
// When the configured origin index is outside [0, itemCount), nothing is
// published and every delay is measured from the zero point {0, 0}. The one
// exception is a grid with a single item, which is always its own origin.
//
// # Reveal
//
// [Grid.Start] moves every item from [Hidden] to [Visible] exactly once. Each
// item's [Item.Transition] carries its delay; the delay shifts the start of
// the transition, never its duration.
package grid
