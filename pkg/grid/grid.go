package grid

import (
	"math"

	"github.com/matzehuels/ripplegrid/pkg/errors"
)

const (
	// DefaultDelayPerPixel is the reveal delay added per pixel of distance, in seconds.
	DefaultDelayPerPixel = 0.002

	// DefaultItemCount is the number of items in a grid.
	DefaultItemCount = 9

	// DefaultOriginIndex is the origin index the grid ships with. It lies
	// outside a default grid, so delays ripple out from the container's
	// top-left corner.
	DefaultOriginIndex = 26
)

// phase tracks how far the current layout pass has progressed.
type phase int

const (
	phaseIdle phase = iota
	phaseMeasured
	phaseComputed
)

// Option configures a Grid.
type Option func(*Grid)

// WithOriginIndex sets the index of the distance-zero item.
func WithOriginIndex(i int) Option {
	return func(g *Grid) { g.originIndex = i }
}

// Grid owns a fixed sequence of items and the origin offset they share.
type Grid struct {
	delayPerPixel float64
	originIndex   int
	items         []*Item
	origin        originSlot
	surface       Surface
	phase         phase
	started       bool
}

// New creates a grid of itemCount hidden items.
// delayPerPixel must be a finite, non-negative number and itemCount positive.
func New(delayPerPixel float64, itemCount int, opts ...Option) (*Grid, error) {
	if err := validateDelayPerPixel(delayPerPixel); err != nil {
		return nil, err
	}
	if itemCount <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "item count must be positive, got %d", itemCount)
	}

	g := &Grid{
		delayPerPixel: delayPerPixel,
		originIndex:   DefaultOriginIndex,
	}
	for _, opt := range opts {
		opt(g)
	}

	origin := g.resolveOrigin(itemCount)
	g.items = make([]*Item, itemCount)
	for i := range g.items {
		g.items[i] = &Item{index: i, origin: i == origin}
	}
	return g, nil
}

func validateDelayPerPixel(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "delay per pixel must be a non-negative number, got %v", v)
	}
	return nil
}

// resolveOrigin returns the index of the origin item, or -1 if there is none.
func (g *Grid) resolveOrigin(itemCount int) int {
	if g.originIndex >= 0 && g.originIndex < itemCount {
		return g.originIndex
	}
	if itemCount == 1 {
		return 0
	}
	return -1
}

// Mount measures every item against s, computes every delay, and starts the reveal.
func (g *Grid) Mount(s Surface) {
	g.layoutPass(s)
	g.Start()
}

// layoutPass runs the measure pass, then the compute pass. Compute cannot
// fail here because the measure pass has just completed.
func (g *Grid) layoutPass(s Surface) {
	g.Measure(s)
	_ = g.Compute()
}

// Measure records every item's offset on s and republishes the origin.
// A nil surface leaves every item unattached.
func (g *Grid) Measure(s Surface) {
	g.surface = s
	g.origin.reset()
	for _, it := range g.items {
		it.measure(s, &g.origin)
	}
	g.phase = phaseMeasured
}

// Compute derives every item's delay from the published origin.
// It fails with ErrCodePhaseOrder if no measure pass has completed.
func (g *Grid) Compute() error {
	if g.phase < phaseMeasured {
		return &errors.PhaseError{Op: "compute", Requires: "measure"}
	}
	origin := g.origin.Get()
	for _, it := range g.items {
		it.computeDelay(origin, g.delayPerPixel)
	}
	g.phase = phaseComputed
	return nil
}

// Start reveals every item. It fires at most once per grid and only after
// delays have been computed; it reports whether this call fired.
func (g *Grid) Start() bool {
	if g.started || g.phase != phaseComputed {
		return false
	}
	for _, it := range g.items {
		it.reveal()
	}
	g.started = true
	return true
}

// SetDelayPerPixel changes the delay factor and recomputes offsets and delays
// against the last mounted surface. Unchanged values are a no-op.
func (g *Grid) SetDelayPerPixel(v float64) error {
	if err := validateDelayPerPixel(v); err != nil {
		return err
	}
	if v == g.delayPerPixel {
		return nil
	}
	g.delayPerPixel = v
	if g.phase != phaseIdle {
		g.layoutPass(g.surface)
	}
	return nil
}

// DelayPerPixel returns the delay factor in seconds per pixel.
func (g *Grid) DelayPerPixel() float64 { return g.delayPerPixel }

// ItemCount returns the number of items.
func (g *Grid) ItemCount() int { return len(g.items) }

// OriginIndex returns the configured origin index, which may be out of range.
func (g *Grid) OriginIndex() int { return g.originIndex }

// Origin returns the shared origin offset.
func (g *Grid) Origin() Offset { return g.origin.Get() }

// OriginPublished reports whether the last measure pass published an origin.
func (g *Grid) OriginPublished() bool { return g.origin.published }

// Started reports whether the reveal has been triggered.
func (g *Grid) Started() bool { return g.started }

// Items returns the items in index order.
func (g *Grid) Items() []*Item {
	out := make([]*Item, len(g.items))
	copy(out, g.items)
	return out
}

// Item returns the item at index i.
func (g *Grid) Item(i int) (*Item, bool) {
	if i < 0 || i >= len(g.items) {
		return nil, false
	}
	return g.items[i], true
}

// MaxDelay returns the largest item delay.
func (g *Grid) MaxDelay() float64 {
	var m float64
	for _, it := range g.items {
		m = max(m, it.delay)
	}
	return m
}
