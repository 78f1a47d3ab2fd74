package grid

// Snapshot is a read-only copy of a grid's state, used by renderers.
type Snapshot struct {
	DelayPerPixel   float64
	OriginIndex     int
	Origin          Offset
	OriginPublished bool
	Started         bool
	Items           []ItemSnapshot
}

// ItemSnapshot is a read-only copy of one item.
type ItemSnapshot struct {
	Index    int
	Offset   Offset
	Attached bool
	Delay    float64
	Origin   bool
	State    State
}

// Snapshot copies the grid's current state.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		DelayPerPixel:   g.delayPerPixel,
		OriginIndex:     g.originIndex,
		Origin:          g.origin.Get(),
		OriginPublished: g.origin.published,
		Started:         g.started,
		Items:           make([]ItemSnapshot, len(g.items)),
	}
	for i, it := range g.items {
		s.Items[i] = ItemSnapshot{
			Index:    it.index,
			Offset:   it.offset,
			Attached: it.attached,
			Delay:    it.delay,
			Origin:   it.origin,
			State:    it.state,
		}
	}
	return s
}

// MaxDelay returns the largest item delay in the snapshot.
func (s Snapshot) MaxDelay() float64 {
	var m float64
	for _, it := range s.Items {
		m = max(m, it.Delay)
	}
	return m
}
