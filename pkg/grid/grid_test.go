package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/ripplegrid/pkg/errors"
)

const eps = 1e-9

// squareSurface places items on a grid of 100px boxes with 10px margins.
func squareSurface(columns int) Surface {
	return SurfaceFunc(func(i int) (Offset, bool) {
		const pitch = 120.0
		row, col := i/columns, i%columns
		return Offset{Top: 10 + float64(row)*pitch, Left: 10 + float64(col)*pitch}, true
	})
}

func mustNew(t *testing.T, dpp float64, n int, opts ...Option) *Grid {
	t.Helper()
	g, err := New(dpp, n, opts...)
	if err != nil {
		t.Fatalf("New(%v, %d) error: %v", dpp, n, err)
	}
	return g
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		dpp     float64
		n       int
		wantErr bool
	}{
		{"defaults", DefaultDelayPerPixel, DefaultItemCount, false},
		{"zero delay", 0, 9, false},
		{"single item", 0.002, 1, false},
		{"zero items", 0.002, 0, true},
		{"negative items", 0.002, -3, true},
		{"negative delay", -0.1, 9, true},
		{"NaN delay", math.NaN(), 9, true},
		{"infinite delay", math.Inf(1), 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dpp, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestItemsIndexOrder(t *testing.T) {
	g := mustNew(t, DefaultDelayPerPixel, 12)

	items := g.Items()
	if len(items) != 12 {
		t.Fatalf("len(Items()) = %d, want 12", len(items))
	}
	for i, it := range items {
		if it.Index() != i {
			t.Errorf("Items()[%d].Index() = %d", i, it.Index())
		}
		if it.State() != Hidden {
			t.Errorf("item %d state = %v before mount, want hidden", i, it.State())
		}
	}
}

func TestDefaultOriginIndex(t *testing.T) {
	g := mustNew(t, DefaultDelayPerPixel, DefaultItemCount)
	if g.OriginIndex() != DefaultOriginIndex {
		t.Errorf("OriginIndex() = %d, want %d", g.OriginIndex(), DefaultOriginIndex)
	}
}

func TestDelayFormula(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))

	origin, _ := g.Item(4)
	for _, it := range g.Items() {
		dx := it.Offset().Left - origin.Offset().Left
		dy := it.Offset().Top - origin.Offset().Top
		want := math.Sqrt(dx*dx+dy*dy) * 0.002
		if math.Abs(it.Delay()-want) > eps {
			t.Errorf("item %d delay = %v, want %v", it.Index(), it.Delay(), want)
		}
	}
}

// 3x3 grid of 100px boxes, 10px margins, origin at the centre.
func TestCenterOriginDelays(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))

	center, _ := g.Item(4)
	if center.Delay() != 0 {
		t.Errorf("centre delay = %v, want 0", center.Delay())
	}
	if !center.IsOrigin() {
		t.Error("centre item should be the origin")
	}

	corner, _ := g.Item(0)
	want := math.Sqrt(120*120+120*120) * 0.002
	if math.Abs(corner.Delay()-want) > eps {
		t.Errorf("corner delay = %v, want %v", corner.Delay(), want)
	}
	if math.Abs(corner.Delay()-0.339) > 0.001 {
		t.Errorf("corner delay = %v, want ~0.339", corner.Delay())
	}

	edge, _ := g.Item(1)
	if math.Abs(edge.Delay()-0.24) > eps {
		t.Errorf("edge delay = %v, want 0.24", edge.Delay())
	}
}

func TestSingleItemIsOrigin(t *testing.T) {
	for _, origin := range []int{0, 26, -1} {
		g := mustNew(t, 0.002, 1, WithOriginIndex(origin))
		g.Mount(squareSurface(3))

		it, _ := g.Item(0)
		if !it.IsOrigin() {
			t.Errorf("originIndex %d: single item should be the origin", origin)
		}
		if it.Delay() != 0 {
			t.Errorf("originIndex %d: delay = %v, want 0", origin, it.Delay())
		}
		if !g.OriginPublished() {
			t.Errorf("originIndex %d: origin should be published", origin)
		}
	}
}

func TestZeroDelayPerPixel(t *testing.T) {
	g := mustNew(t, 0, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))

	for _, it := range g.Items() {
		if it.Delay() != 0 {
			t.Errorf("item %d delay = %v, want 0", it.Index(), it.Delay())
		}
	}
}

func TestOriginOutOfRange(t *testing.T) {
	for _, origin := range []int{9, 26, -1} {
		g := mustNew(t, 0.002, 9, WithOriginIndex(origin))
		g.Mount(squareSurface(3))

		if g.OriginPublished() {
			t.Errorf("originIndex %d: origin should not be published", origin)
		}
		if g.Origin() != (Offset{}) {
			t.Errorf("originIndex %d: Origin() = %+v, want zero", origin, g.Origin())
		}
		for _, it := range g.Items() {
			if it.IsOrigin() {
				t.Errorf("originIndex %d: item %d marked as origin", origin, it.Index())
			}
			want := Distance(it.Offset(), Offset{}) * 0.002
			if math.Abs(it.Delay()-want) > eps {
				t.Errorf("originIndex %d: item %d delay = %v, want %v", origin, it.Index(), it.Delay(), want)
			}
		}
	}
}

func TestDelayScalesWithDelayPerPixel(t *testing.T) {
	base := mustNew(t, 0.002, 9, WithOriginIndex(4))
	base.Mount(squareSurface(3))

	scaled := mustNew(t, 0.006, 9, WithOriginIndex(4))
	scaled.Mount(squareSurface(3))

	for i := range 9 {
		a, _ := base.Item(i)
		b, _ := scaled.Item(i)
		if math.Abs(b.Delay()-3*a.Delay()) > eps {
			t.Errorf("item %d: delay %v at 0.006, want 3 x %v", i, b.Delay(), a.Delay())
		}
		if b.Delay() < a.Delay() {
			t.Errorf("item %d: delay decreased when delay per pixel increased", i)
		}
	}
}

func TestSetDelayPerPixel(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))
	corner, _ := g.Item(0)
	before := corner.Delay()

	if err := g.SetDelayPerPixel(0.004); err != nil {
		t.Fatalf("SetDelayPerPixel() error: %v", err)
	}
	if math.Abs(corner.Delay()-2*before) > eps {
		t.Errorf("corner delay = %v after doubling, want %v", corner.Delay(), 2*before)
	}

	if err := g.SetDelayPerPixel(-1); err == nil {
		t.Error("SetDelayPerPixel(-1) should fail")
	}
	if g.DelayPerPixel() != 0.004 {
		t.Errorf("DelayPerPixel() = %v after rejected update, want 0.004", g.DelayPerPixel())
	}
}

func TestSetDelayPerPixelBeforeMount(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	if err := g.SetDelayPerPixel(0.01); err != nil {
		t.Fatalf("SetDelayPerPixel() error: %v", err)
	}
	g.Mount(squareSurface(3))

	corner, _ := g.Item(0)
	want := math.Sqrt(2*120*120) * 0.01
	if math.Abs(corner.Delay()-want) > eps {
		t.Errorf("corner delay = %v, want %v", corner.Delay(), want)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))
	first := g.Snapshot()

	if err := g.SetDelayPerPixel(0.002); err != nil {
		t.Fatal(err)
	}
	g.Measure(squareSurface(3))
	if err := g.Compute(); err != nil {
		t.Fatal(err)
	}
	second := g.Snapshot()

	for i := range first.Items {
		if first.Items[i].Delay != second.Items[i].Delay {
			t.Errorf("item %d delay changed: %v -> %v", i, first.Items[i].Delay, second.Items[i].Delay)
		}
	}
}

func TestComputeBeforeMeasure(t *testing.T) {
	g := mustNew(t, 0.002, 9)
	err := g.Compute()
	if !errors.Is(err, errors.ErrCodePhaseOrder) {
		t.Errorf("Compute() before Measure error = %v, want %v", err, errors.ErrCodePhaseOrder)
	}
}

// The origin is the last item, so a single interleaved measure/compute loop
// would compute every other delay before the origin is published.
func TestMeasureCompletesBeforeCompute(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(8))
	var measured int
	s := SurfaceFunc(func(i int) (Offset, bool) {
		measured++
		return squareSurface(3).Offset(i)
	})

	g.Measure(s)
	if measured != 9 {
		t.Fatalf("measure pass queried %d items, want 9", measured)
	}
	if !g.OriginPublished() {
		t.Fatal("origin should be published after the measure pass")
	}
	if err := g.Compute(); err != nil {
		t.Fatal(err)
	}

	first, _ := g.Item(0)
	want := math.Sqrt(2*240*240) * 0.002
	if math.Abs(first.Delay()-want) > eps {
		t.Errorf("item 0 delay = %v, want %v", first.Delay(), want)
	}
}

func TestStartIsOneShot(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))

	if g.Start() {
		t.Error("Start() before delays are computed should not fire")
	}

	g.Mount(squareSurface(3))
	if !g.Started() {
		t.Fatal("Mount() should start the reveal")
	}
	for _, it := range g.Items() {
		if it.State() != Visible {
			t.Errorf("item %d state = %v, want visible", it.Index(), it.State())
		}
	}

	if g.Start() {
		t.Error("second Start() should not fire")
	}
	g.Mount(squareSurface(3))
	if g.Start() {
		t.Error("Start() after remount should not fire")
	}
}

func TestUnattachedItems(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	s := SurfaceFunc(func(i int) (Offset, bool) {
		if i == 2 {
			return Offset{}, false
		}
		return squareSurface(3).Offset(i)
	})
	g.Mount(s)

	it, _ := g.Item(2)
	if it.Attached() {
		t.Error("item 2 should not be attached")
	}
	if it.Offset() != (Offset{}) {
		t.Errorf("unattached offset = %+v, want zero", it.Offset())
	}
	want := Distance(Offset{}, Offset{Top: 130, Left: 130}) * 0.002
	if math.Abs(it.Delay()-want) > eps {
		t.Errorf("unattached delay = %v, want %v", it.Delay(), want)
	}
}

func TestUnattachedOrigin(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	s := SurfaceFunc(func(i int) (Offset, bool) {
		if i == 4 {
			return Offset{}, false
		}
		return squareSurface(3).Offset(i)
	})
	g.Mount(s)

	if g.OriginPublished() {
		t.Error("unattached origin should not publish")
	}
	origin, _ := g.Item(4)
	if origin.Delay() != 0 {
		t.Errorf("origin delay = %v, want 0", origin.Delay())
	}
}

func TestNilSurface(t *testing.T) {
	g := mustNew(t, 0.002, 4, WithOriginIndex(0))
	g.Mount(nil)

	for _, it := range g.Items() {
		if it.Attached() || it.Delay() != 0 {
			t.Errorf("item %d: attached=%v delay=%v, want unattached with zero delay", it.Index(), it.Attached(), it.Delay())
		}
	}
	if !g.Started() {
		t.Error("grid should still start with no surface")
	}
}

func TestMaxDelay(t *testing.T) {
	g := mustNew(t, 0.002, 9, WithOriginIndex(4))
	g.Mount(squareSurface(3))

	want := math.Sqrt(2*120*120) * 0.002
	if math.Abs(g.MaxDelay()-want) > eps {
		t.Errorf("MaxDelay() = %v, want %v", g.MaxDelay(), want)
	}
	if g.Snapshot().MaxDelay() != g.MaxDelay() {
		t.Error("Snapshot().MaxDelay() should match MaxDelay()")
	}
}

func TestItemLookup(t *testing.T) {
	g := mustNew(t, 0.002, 3)
	if _, ok := g.Item(-1); ok {
		t.Error("Item(-1) should not exist")
	}
	if _, ok := g.Item(3); ok {
		t.Error("Item(3) should not exist")
	}
	if it, ok := g.Item(2); !ok || it.Index() != 2 {
		t.Error("Item(2) should exist")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Offset
		want float64
	}{
		{Offset{}, Offset{}, 0},
		{Offset{Top: 0, Left: 3}, Offset{Top: 4, Left: 0}, 5},
		{Offset{Top: 10, Left: 10}, Offset{Top: 130, Left: 130}, math.Sqrt(2 * 120 * 120)},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > eps {
			t.Errorf("Distance(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if Distance(tt.a, tt.b) != Distance(tt.b, tt.a) {
			t.Errorf("Distance(%+v, %+v) is not symmetric", tt.a, tt.b)
		}
	}
}
