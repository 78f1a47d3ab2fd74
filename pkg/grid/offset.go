package grid

import "math"

// Offset is a position relative to the grid container, in pixels.
type Offset struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Offset) float64 {
	dx := math.Abs(a.Left - b.Left)
	dy := math.Abs(a.Top - b.Top)
	return math.Sqrt(dx*dx + dy*dy)
}

// Surface reports where items were placed by a layout.
// ok is false when the item is not attached to a visible surface.
type Surface interface {
	Offset(index int) (o Offset, ok bool)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(index int) (Offset, bool)

// Offset calls f(index).
func (f SurfaceFunc) Offset(index int) (Offset, bool) { return f(index) }

// originSlot holds the origin offset shared by all items of a grid.
// Only the origin item writes it, and only during the measure pass.
type originSlot struct {
	offset    Offset
	published bool
}

// Get returns the published origin, or the zero offset if nothing was published.
func (s *originSlot) Get() Offset { return s.offset }

func (s *originSlot) publish(o Offset) {
	s.offset = o
	s.published = true
}

func (s *originSlot) reset() {
	*s = originSlot{}
}
