// Package anim describes the reveal animation of a grid item: the two
// visual variants and the timed transition between them.
package anim

import "fmt"

// DefaultDuration is the length of a reveal transition in seconds.
const DefaultDuration = 0.3

// DefaultEase is the easing applied to reveal transitions.
const DefaultEase = EaseOut

// Variant is the visual state of an item.
type Variant struct {
	Opacity float64
	Scale   float64
}

var (
	// Hidden is the variant items start in.
	Hidden = Variant{Opacity: 0, Scale: 0.5}
	// Visible is the variant items end in.
	Visible = Variant{Opacity: 1, Scale: 1}
)

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Variant, t float64) Variant {
	t = clamp01(t)
	return Variant{
		Opacity: a.Opacity + t*(b.Opacity-a.Opacity),
		Scale:   a.Scale + t*(b.Scale-a.Scale),
	}
}

// Ease names an easing curve.
type Ease string

const (
	Linear    Ease = "linear"
	EaseIn    Ease = "ease-in"
	EaseOut   Ease = "ease-out"
	EaseInOut Ease = "ease-in-out"
)

// ParseEase validates an easing name. The empty string selects DefaultEase.
func ParseEase(s string) (Ease, error) {
	switch e := Ease(s); e {
	case "":
		return DefaultEase, nil
	case Linear, EaseIn, EaseOut, EaseInOut:
		return e, nil
	default:
		return "", fmt.Errorf("unknown easing %q (must be one of: linear, ease-in, ease-out, ease-in-out)", s)
	}
}

// Apply maps linear progress t in [0, 1] onto the curve.
// Unknown curves are treated as linear.
func (e Ease) Apply(t float64) float64 {
	t = clamp01(t)
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	default:
		return t
	}
}

// CSS returns the CSS timing function matching the curve.
func (e Ease) CSS() string {
	switch e {
	case EaseIn:
		return "cubic-bezier(0.55, 0.085, 0.68, 0.53)"
	case EaseOut:
		return "cubic-bezier(0.25, 0.46, 0.45, 0.94)"
	case EaseInOut:
		return "cubic-bezier(0.455, 0.03, 0.515, 0.955)"
	default:
		return "linear"
	}
}

func clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
