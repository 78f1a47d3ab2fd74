package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/matzehuels/ripplegrid/pkg/anim"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
)

var (
	defaultRasterBackground = color.RGBA{R: 0x77, G: 0x00, B: 0xff, A: 0xff}
	defaultRasterFill       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RasterOption configures frame rasterization.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale      float64
	background color.RGBA
	fill       color.RGBA
	duration   float64
	ease       anim.Ease
	progress   func(done, total int)
}

// WithScale sets the pixel scale factor (default 1.0).
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

// WithRasterBackground sets the frame background color.
func WithRasterBackground(c color.RGBA) RasterOption {
	return func(r *rasterRenderer) { r.background = c }
}

// WithRasterFill sets the box color. Its alpha is multiplied by each box's opacity.
func WithRasterFill(c color.RGBA) RasterOption {
	return func(r *rasterRenderer) { r.fill = c }
}

// WithRasterDuration sets the reveal duration in seconds.
func WithRasterDuration(d float64) RasterOption {
	return func(r *rasterRenderer) { r.duration = d }
}

// WithRasterEase sets the reveal easing.
func WithRasterEase(e anim.Ease) RasterOption {
	return func(r *rasterRenderer) { r.ease = e }
}

// WithFrameProgress sets a callback invoked after each frame is encoded.
func WithFrameProgress(fn func(done, total int)) RasterOption {
	return func(r *rasterRenderer) { r.progress = fn }
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{
		scale:      1.0,
		background: defaultRasterBackground,
		fill:       defaultRasterFill,
		duration:   anim.DefaultDuration,
		ease:       anim.DefaultEase,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}
	return r
}

// Rasterize draws the frame at seconds after the reveal was triggered.
func Rasterize(f layout.Flow, s grid.Snapshot, at float64, opts ...RasterOption) *image.RGBA {
	return newRasterRenderer(opts...).frame(f, s, at)
}

func (r rasterRenderer) frame(f layout.Flow, s grid.Snapshot, at float64) *image.RGBA {
	w := max(int(math.Ceil(f.Width*r.scale)), 1)
	h := max(int(math.Ceil(f.Height*r.scale)), 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for _, it := range s.Items {
		b, ok := f.Box(it.Index)
		if !ok || b.Detached {
			continue
		}
		v := r.variant(it, s.Started, at)
		if v.Opacity <= 0 {
			continue
		}

		sb := b.Scaled(v.Scale)
		rx := clampRadius(sb, f.Radius*v.Scale)

		z.Reset(w, h)
		roundedRect(z,
			float32(sb.Left*r.scale), float32(sb.Top*r.scale),
			float32(sb.Width*r.scale), float32(sb.Height*r.scale),
			float32(rx*r.scale))
		z.Draw(dst, dst.Bounds(), image.NewUniform(fade(r.fill, v.Opacity)), image.Point{})
	}
	return dst
}

func (r rasterRenderer) variant(it grid.ItemSnapshot, started bool, at float64) anim.Variant {
	if !started || it.State == grid.Hidden {
		return anim.Hidden
	}
	t := anim.Transition{Delay: it.Delay, Duration: r.duration, Ease: r.ease}
	return t.Sample(at)
}

// fade scales the alpha of c by opacity.
func fade(c color.RGBA, opacity float64) color.Color {
	a := uint8(math.Round(float64(c.A) * opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

func roundedRect(z *vector.Rasterizer, x, y, w, h, r float32) {
	z.MoveTo(x+r, y)
	z.LineTo(x+w-r, y)
	z.QuadTo(x+w, y, x+w, y+r)
	z.LineTo(x+w, y+h-r)
	z.QuadTo(x+w, y+h, x+w-r, y+h)
	z.LineTo(x+r, y+h)
	z.QuadTo(x, y+h, x, y+h-r)
	z.LineTo(x, y+r)
	z.QuadTo(x, y, x+r, y)
	z.ClosePath()
}

// RenderWebP renders the frame at seconds after the reveal was triggered as WebP.
func RenderWebP(f layout.Flow, s grid.Snapshot, at float64, opts ...RasterOption) ([]byte, error) {
	img := Rasterize(f, s, at, opts...)
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("WebP encode: %w", err)
	}
	return buf.Bytes(), nil
}

// FrameTimes returns n evenly spaced instants from the trigger until the
// last box has finished its reveal.
func FrameTimes(s grid.Snapshot, n int, duration float64) []float64 {
	if n <= 0 {
		return nil
	}
	end := s.MaxDelay() + duration
	if n == 1 {
		return []float64{end}
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = end * float64(i) / float64(n-1)
	}
	return times
}

// RenderFrames renders n WebP frames covering the whole reveal.
// It stops early with ctx.Err() if ctx is cancelled between frames.
func RenderFrames(ctx context.Context, f layout.Flow, s grid.Snapshot, n int, opts ...RasterOption) ([][]byte, error) {
	r := newRasterRenderer(opts...)
	times := FrameTimes(s, n, r.duration)
	frames := make([][]byte, 0, len(times))
	for i, at := range times {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := nativewebp.Encode(&buf, r.frame(f, s, at), nil); err != nil {
			return nil, fmt.Errorf("WebP encode frame %d: %w", i, err)
		}
		frames = append(frames, buf.Bytes())
		if r.progress != nil {
			r.progress(len(frames), len(times))
		}
	}
	return frames, nil
}
