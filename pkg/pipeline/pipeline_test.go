package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripplegrid/pkg/errors"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/observability"
)

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"webp", false},
		{"frames", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "webp"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg,json", []string{"svg", "json"}},
		{" SVG , webp ,", []string{"svg", "webp"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewOptions(t *testing.T) {
	opts := NewOptions()

	if opts.DelayPerPixel != grid.DefaultDelayPerPixel {
		t.Errorf("DelayPerPixel = %v, want %v", opts.DelayPerPixel, grid.DefaultDelayPerPixel)
	}
	if opts.ItemCount != grid.DefaultItemCount {
		t.Errorf("ItemCount = %d, want %d", opts.ItemCount, grid.DefaultItemCount)
	}
	if opts.OriginIndex != grid.DefaultOriginIndex {
		t.Errorf("OriginIndex = %d, want %d", opts.OriginIndex, grid.DefaultOriginIndex)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default options should validate: %v", err)
	}
}

func TestSetDefaultsKeepsZeroDelay(t *testing.T) {
	opts := Options{DelayPerPixel: 0}
	opts.SetDefaults()

	if opts.DelayPerPixel != 0 {
		t.Errorf("DelayPerPixel = %v, zero should be preserved", opts.DelayPerPixel)
	}
	if opts.Frames != DefaultFrames {
		t.Errorf("Frames = %d, want %d", opts.Frames, DefaultFrames)
	}
}

func TestZeroDurationIsKept(t *testing.T) {
	opts := NewOptions()
	opts.Duration = 0
	opts.Formats = []string{FormatSVG}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero duration should validate: %v", err)
	}
	if opts.Duration != 0 {
		t.Fatalf("Duration = %v, explicit zero should be preserved", opts.Duration)
	}

	result, err := quietRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "animation: reveal 0.000s") {
		t.Errorf("SVG should use the zero duration:\n%s", result.Artifacts[FormatSVG])
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"negative delay", func(o *Options) { o.DelayPerPixel = -1 }, errors.ErrCodeInvalidInput},
		{"NaN delay", func(o *Options) { o.DelayPerPixel = math.NaN() }, errors.ErrCodeInvalidInput},
		{"negative items", func(o *Options) { o.ItemCount = -3 }, errors.ErrCodeInvalidInput},
		{"negative width", func(o *Options) { o.ContainerWidth = -1 }, errors.ErrCodeInvalidInput},
		{"negative frames", func(o *Options) { o.Frames = -1 }, errors.ErrCodeInvalidInput},
		{"negative at", func(o *Options) { o.At = -0.1 }, errors.ErrCodeInvalidInput},
		{"negative duration", func(o *Options) { o.Duration = -1 }, errors.ErrCodeInvalidInput},
		{"negative scale", func(o *Options) { o.Scale = -2 }, errors.ErrCodeInvalidInput},
		{"bad ease", func(o *Options) { o.Ease = "bounce" }, errors.ErrCodeInvalidInput},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestHasFormat(t *testing.T) {
	opts := Options{Formats: []string{"svg", "frames"}}
	if !opts.HasFormat(FormatFrames) {
		t.Error("HasFormat(frames) = false")
	}
	if opts.HasFormat(FormatJSON) {
		t.Error("HasFormat(json) = true")
	}
}

func TestLayoutOptions(t *testing.T) {
	opts := NewOptions()
	opts.ItemCount = 8
	opts.ContainerWidth = 480
	opts.Detached = []int{0}

	f := Layout(opts)
	if f.Columns != 4 {
		t.Errorf("Columns = %d, want 4", f.Columns)
	}
	if f.Attached() != 7 {
		t.Errorf("Attached() = %d, want 7", f.Attached())
	}
}

func TestExecute(t *testing.T) {
	opts := NewOptions()
	opts.OriginIndex = 4
	opts.Formats = []string{FormatSVG, FormatJSON, FormatWebP, FormatFrames}
	opts.Frames = 3

	result, err := quietRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, format := range []string{FormatSVG, FormatJSON, FormatWebP} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if _, ok := result.Artifacts[FormatFrames]; ok {
		t.Error("frames should not be stored as a single artifact")
	}
	if len(result.Frames) != 3 {
		t.Errorf("got %d frames, want 3", len(result.Frames))
	}

	if !result.Snapshot.Started {
		t.Error("grid should have started")
	}
	if result.Snapshot.Origin != (grid.Offset{Top: 130, Left: 130}) {
		t.Errorf("origin = %+v, want {130 130}", result.Snapshot.Origin)
	}
	if result.Stats.ItemCount != 9 || result.Stats.Attached != 9 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if math.Abs(result.Stats.MaxDelay-0.3394) > 0.001 {
		t.Errorf("MaxDelay = %v, want ~0.339", result.Stats.MaxDelay)
	}
}

func TestExecuteZeroDelay(t *testing.T) {
	opts := NewOptions()
	opts.DelayPerPixel = 0
	opts.Formats = []string{FormatJSON}

	result, err := quietRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, it := range result.Snapshot.Items {
		if it.Delay != 0 {
			t.Errorf("item %d delay = %v, want 0", it.Index, it.Delay)
		}
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	opts := NewOptions()
	opts.Formats = []string{"pdf"}

	_, err := quietRunner().Execute(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := NewOptions()
	opts.Formats = []string{FormatFrames}
	_, err := quietRunner().Execute(ctx, opts)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExecuteLogsStages(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(log.NewWithOptions(&buf, log.Options{}))

	if _, err := runner.Execute(context.Background(), NewOptions()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"laid out boxes", "mounted grid", "rendered outputs"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestOptionsLoggerOverridesRunner(t *testing.T) {
	var runnerBuf, optsBuf bytes.Buffer
	runner := NewRunner(log.NewWithOptions(&runnerBuf, log.Options{}))

	opts := NewOptions()
	opts.Logger = log.NewWithOptions(&optsBuf, log.Options{})
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	if runnerBuf.Len() != 0 {
		t.Error("runner logger should not be used when options carry one")
	}
	if optsBuf.Len() == 0 {
		t.Error("options logger should receive stage logs")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnLayoutStart(context.Context, int) { h.events = append(h.events, "layout") }
func (h *recordingHooks) OnMeasureComplete(context.Context, int, bool) {
	h.events = append(h.events, "measure")
}
func (h *recordingHooks) OnComputeComplete(context.Context, float64) {
	h.events = append(h.events, "compute")
}
func (h *recordingHooks) OnStart(_ context.Context, fired bool) {
	if fired {
		h.events = append(h.events, "start")
	}
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) {
	h.events = append(h.events, "render")
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "rendered")
}

func TestExecuteHookOrder(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	if _, err := quietRunner().Execute(context.Background(), NewOptions()); err != nil {
		t.Fatal(err)
	}

	want := "layout,measure,compute,start,render,rendered"
	if got := strings.Join(hooks.events, ","); got != want {
		t.Errorf("hook order = %s, want %s", got, want)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	opts := NewOptions()
	opts.Formats = []string{"gif"}
	r := quietRunner()

	f := r.Layout(context.Background(), opts)
	g, err := r.Mount(context.Background(), f, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = Render(context.Background(), f, g.Snapshot(), opts)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}
