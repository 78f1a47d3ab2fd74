package grid

import (
	"time"

	"github.com/matzehuels/ripplegrid/pkg/anim"
)

// State is the visibility state of an item.
type State int

const (
	// Hidden is the initial state.
	Hidden State = iota
	// Visible is terminal; items never return to Hidden.
	Visible
)

// String returns the variant name of the state.
func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Item is a single animated cell of a grid.
type Item struct {
	index    int
	origin   bool
	offset   Offset
	attached bool
	delay    float64
	state    State
}

// Index returns the item's position in the grid, starting at 0.
func (it *Item) Index() int { return it.index }

// IsOrigin reports whether this item is the distance-zero reference.
func (it *Item) IsOrigin() bool { return it.origin }

// Offset returns the offset recorded by the last measure pass.
func (it *Item) Offset() Offset { return it.offset }

// Attached reports whether the last measure pass found the item on a surface.
func (it *Item) Attached() bool { return it.attached }

// Delay returns the reveal delay in seconds.
func (it *Item) Delay() float64 { return it.delay }

// DelayDuration returns the reveal delay as a time.Duration.
func (it *Item) DelayDuration() time.Duration {
	return time.Duration(it.delay * float64(time.Second))
}

// State returns the current visibility state.
func (it *Item) State() State { return it.state }

// Transition returns the reveal transition using the default duration and easing.
func (it *Item) Transition() anim.Transition {
	return it.TransitionWith(anim.DefaultDuration, anim.DefaultEase)
}

// TransitionWith returns the reveal transition with the given duration and easing.
func (it *Item) TransitionWith(duration float64, ease anim.Ease) anim.Transition {
	return anim.Transition{Delay: it.delay, Duration: duration, Ease: ease}
}

// Variant returns the item's appearance elapsed seconds after the grid started,
// using the default transition. Items that have not been revealed stay hidden.
func (it *Item) Variant(elapsed float64) anim.Variant {
	return it.VariantWith(elapsed, anim.DefaultDuration, anim.DefaultEase)
}

// VariantWith is Variant with an explicit duration and easing.
func (it *Item) VariantWith(elapsed, duration float64, ease anim.Ease) anim.Variant {
	if it.state == Hidden {
		return anim.Hidden
	}
	return it.TransitionWith(duration, ease).Sample(elapsed)
}

// measure records the item's offset and publishes it when the item is the origin.
// Unattached items keep the zero offset and publish nothing.
func (it *Item) measure(s Surface, slot *originSlot) {
	it.offset, it.attached = Offset{}, false
	if s == nil {
		return
	}
	o, ok := s.Offset(it.index)
	if !ok {
		return
	}
	it.offset, it.attached = o, true
	if it.origin {
		slot.publish(o)
	}
}

func (it *Item) computeDelay(origin Offset, delayPerPixel float64) {
	it.delay = Distance(it.offset, origin) * delayPerPixel
}

func (it *Item) reveal() {
	it.state = Visible
}
