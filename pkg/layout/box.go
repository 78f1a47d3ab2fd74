package layout

// Box is the border box of a single grid item.
type Box struct {
	Index         int
	Left, Top     float64
	Width, Height float64
	Detached      bool // not placed on the surface
}

// Right returns the right edge of the box.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the bottom edge of the box.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return b.Top + b.Height/2 }

// Scaled returns the box scaled by s about its center.
func (b Box) Scaled(s float64) Box {
	w, h := b.Width*s, b.Height*s
	return Box{
		Index:    b.Index,
		Left:     b.CenterX() - w/2,
		Top:      b.CenterY() - h/2,
		Width:    w,
		Height:   h,
		Detached: b.Detached,
	}
}
