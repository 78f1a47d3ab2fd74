package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/ripplegrid/pkg/anim"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
)

const (
	DefaultBackground = "#7700ff"
	DefaultFill       = "#ffffff"
)

const revealCSS = `
    .box { transform-box: fill-box; transform-origin: center; animation: reveal %.3fs %s both; }
    .box.hidden { animation: none; opacity: %g; transform: scale(%g); }
    .delay { font: 14px sans-serif; fill: %s; text-anchor: middle; dominant-baseline: middle; }
    @keyframes reveal {
      from { opacity: %g; transform: scale(%g); }
      to   { opacity: %g; transform: scale(%g); }
    }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fill       string
	duration   float64
	ease       anim.Ease
	debug      bool
}

// WithBackground sets the container background color.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFill sets the box color.
func WithFill(c string) SVGOption { return func(r *svgRenderer) { r.fill = c } }

// WithDuration sets the reveal duration in seconds.
func WithDuration(d float64) SVGOption { return func(r *svgRenderer) { r.duration = d } }

// WithEase sets the reveal easing.
func WithEase(e anim.Ease) SVGOption { return func(r *svgRenderer) { r.ease = e } }

// WithDebug labels every box with its delay.
func WithDebug() SVGOption { return func(r *svgRenderer) { r.debug = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		background: DefaultBackground,
		fill:       DefaultFill,
		duration:   anim.DefaultDuration,
		ease:       anim.DefaultEase,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the grid as an animated SVG document. Each box carries
// its own animation-delay, so the reveal plays when the document loads.
// Boxes of a grid that has not started stay in the hidden variant.
func RenderSVG(f layout.Flow, s grid.Snapshot, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="root" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	fmt.Fprintf(&buf, "  <style>"+revealCSS+"\n  </style>\n",
		r.duration, r.ease.CSS(),
		anim.Hidden.Opacity, anim.Hidden.Scale,
		r.background,
		anim.Hidden.Opacity, anim.Hidden.Scale,
		anim.Visible.Opacity, anim.Visible.Scale)

	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	buf.WriteString(`  <g class="grid">` + "\n")
	for _, it := range s.Items {
		b, ok := f.Box(it.Index)
		if !ok || b.Detached {
			continue
		}
		renderBox(&buf, r, b, f.Radius, it, s.Started)
	}
	if r.debug {
		for _, it := range s.Items {
			if b, ok := f.Box(it.Index); ok && !b.Detached {
				fmt.Fprintf(&buf, `    <text class="delay" x="%.1f" y="%.1f">%.3fs</text>`+"\n", b.CenterX(), b.CenterY(), it.Delay)
			}
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, r svgRenderer, b layout.Box, rx float64, it grid.ItemSnapshot, started bool) {
	class := "box"
	if !started || it.State == grid.Hidden {
		class = "box hidden"
	}
	fmt.Fprintf(buf, `    <rect id="box-%d" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" style="animation-delay: %.3fs" data-delay="%g"/>`+"\n",
		it.Index, class, b.Left, b.Top, b.Width, b.Height, clampRadius(b, rx), r.fill, it.Delay, it.Delay)
}

// clampRadius limits a corner radius to half the box's shorter side.
func clampRadius(b layout.Box, rx float64) float64 {
	return max(min(rx, b.Width/2, b.Height/2), 0)
}
