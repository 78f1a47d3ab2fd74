// Package layout places grid boxes the way inline-block elements flow inside
// a fixed-width container: left to right, wrapping onto a new row when the
// next box would overflow.
//
// A [Flow] is the surface a grid measures itself against. [Flow.Offset]
// answers the same question an element's offsetTop/offsetLeft would: where
// the box's border edge sits relative to the container.
//
//	f := layout.Build(9)                   // 3 columns of 100px boxes, 10px margins
//	o, ok := f.Offset(4)                   // {Top: 130, Left: 130}, true
//	g.Mount(f)
package layout

import (
	"math"

	"github.com/matzehuels/ripplegrid/pkg/grid"
)

// Fixed box styling, matching the stylesheet the component shipped with.
const (
	DefaultBoxSize = 100.0
	DefaultMargin  = 10.0
	DefaultRadius  = 10.0
	DefaultColumns = 3
)

// Flow is the computed placement of every box in a container.
// All coordinates are in pixels relative to the container's top-left corner.
type Flow struct {
	Boxes   []Box   // one per item, in index order
	Width   float64 // container width
	Height  float64 // container height, enough to hold every attached row
	BoxSize float64
	Margin  float64
	Radius  float64
	Columns int
}

type config struct {
	boxSize  float64
	margin   float64
	radius   float64
	columns  int
	width    float64
	detached map[int]bool
}

// Option configures Build.
type Option func(*config)

// WithBoxSize sets the width and height of every box.
func WithBoxSize(s float64) Option { return func(c *config) { c.boxSize = s } }

// WithMargin sets the margin around every box.
func WithMargin(m float64) Option { return func(c *config) { c.margin = m } }

// WithRadius sets the corner radius of every box.
func WithRadius(r float64) Option { return func(c *config) { c.radius = r } }

// WithColumns sets how many boxes fit on a row.
func WithColumns(n int) Option { return func(c *config) { c.columns = n } }

// WithContainerWidth derives the column count from a container width,
// as many boxes as fit including their margins, at least one.
func WithContainerWidth(w float64) Option { return func(c *config) { c.width = w } }

// WithDetached leaves the given items off the surface. They take up no
// space and report no offset.
func WithDetached(indices ...int) Option {
	return func(c *config) {
		for _, i := range indices {
			c.detached[i] = true
		}
	}
}

// Build lays out n boxes.
func Build(n int, opts ...Option) Flow {
	c := config{
		boxSize:  DefaultBoxSize,
		margin:   DefaultMargin,
		radius:   DefaultRadius,
		columns:  DefaultColumns,
		detached: map[int]bool{},
	}
	for _, opt := range opts {
		opt(&c)
	}

	pitch := c.boxSize + 2*c.margin
	if c.width > 0 {
		c.columns = int(math.Floor(c.width / pitch))
	}
	c.columns = max(c.columns, 1)

	f := Flow{
		Boxes:   make([]Box, max(n, 0)),
		BoxSize: c.boxSize,
		Margin:  c.margin,
		Radius:  c.radius,
		Columns: c.columns,
		Width:   float64(c.columns) * pitch,
	}
	if c.width > 0 {
		f.Width = c.width
	}

	slot := 0
	for i := range f.Boxes {
		b := Box{Index: i, Width: c.boxSize, Height: c.boxSize}
		if c.detached[i] {
			b.Detached = true
			f.Boxes[i] = b
			continue
		}
		row, col := slot/c.columns, slot%c.columns
		b.Left = c.margin + float64(col)*pitch
		b.Top = c.margin + float64(row)*pitch
		f.Boxes[i] = b
		slot++
	}

	rows := (slot + c.columns - 1) / c.columns
	f.Height = float64(rows) * pitch
	return f
}

// Offset implements grid.Surface.
func (f Flow) Offset(index int) (grid.Offset, bool) {
	b, ok := f.Box(index)
	if !ok || b.Detached {
		return grid.Offset{}, false
	}
	return grid.Offset{Top: b.Top, Left: b.Left}, true
}

// Box returns the box for item index.
func (f Flow) Box(index int) (Box, bool) {
	if index < 0 || index >= len(f.Boxes) {
		return Box{}, false
	}
	return f.Boxes[index], true
}

// Attached returns the number of boxes placed on the surface.
func (f Flow) Attached() int {
	n := 0
	for _, b := range f.Boxes {
		if !b.Detached {
			n++
		}
	}
	return n
}

var _ grid.Surface = Flow{}
