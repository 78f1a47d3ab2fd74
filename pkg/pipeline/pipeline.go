// Package pipeline provides the core reveal pipeline for ripplegrid.
//
// This package implements the complete layout → mount → render pipeline that
// the CLI commands share, so `render`, `play` and `inspect` all agree on
// defaults, validation and the order in which the grid's passes run.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: flow ItemCount boxes into the fixed-width container
//  2. Mount: measure every box, compute every delay, trigger the reveal
//  3. Render: generate output in various formats (SVG, WebP, frames, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.NewOptions()
//	opts.Formats = []string{"svg", "json"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripplegrid/pkg/anim"
	"github.com/matzehuels/ripplegrid/pkg/errors"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI Commands
// =============================================================================

const (
	// DefaultFrames is the number of WebP frames sampled for the frames format.
	DefaultFrames = 24

	// DefaultScale is the pixel scale of raster output.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatWebP   = "webp"
	FormatFrames = "frames"
	FormatJSON   = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatWebP:   true,
	FormatFrames: true,
	FormatJSON:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the reveal pipeline.
// Use [NewOptions] for a populated value; the zero value has a zero delay
// factor and origin index 0, both of which are legal settings.
type Options struct {
	// Grid options
	DelayPerPixel float64 `json:"delay_per_pixel"`
	ItemCount     int     `json:"item_count,omitempty"`
	OriginIndex   int     `json:"origin_index"`

	// Layout options
	ContainerWidth float64 `json:"container_width,omitempty"`
	Detached       []int   `json:"detached,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Frames   int      `json:"frames,omitempty"`
	At       float64  `json:"at,omitempty"`       // seconds after the trigger, for the webp format
	Duration float64  `json:"duration,omitempty"` // reveal duration per box
	Ease     string   `json:"ease,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Debug    bool     `json:"debug,omitempty"` // label boxes with their delay

	// Runtime options (not serialized). A nil Logger falls back to the
	// runner's logger.
	Logger  *log.Logger           `json:"-"`
	OnFrame func(done, total int) `json:"-"` // called after each encoded frame
}

// NewOptions returns options carrying every default.
func NewOptions() Options {
	o := Options{
		DelayPerPixel: grid.DefaultDelayPerPixel,
		OriginIndex:   grid.DefaultOriginIndex,
		Duration:      anim.DefaultDuration,
	}
	o.SetDefaults()
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Flow is the box layout the grid was mounted on.
	Flow layout.Flow

	// Snapshot is the mounted grid state.
	Snapshot grid.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	// The frames format is not stored here; see Frames.
	Artifacts map[string][]byte

	// Frames contains the WebP frames of the frames format, in time order.
	Frames [][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	Attached   int
	MaxDelay   float64
	LayoutTime time.Duration
	MountTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, webp, frames, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero-valued fields that have no meaningful zero setting.
// DelayPerPixel, OriginIndex and Duration are left untouched; a zero
// Duration reveals every box instantly at its delay.
func (o *Options) SetDefaults() {
	if o.ItemCount == 0 {
		o.ItemCount = grid.DefaultItemCount
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.Ease == "" {
		o.Ease = string(anim.DefaultEase)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks option values after defaults have been applied.
func (o *Options) Validate() error {
	if math.IsNaN(o.DelayPerPixel) || math.IsInf(o.DelayPerPixel, 0) || o.DelayPerPixel < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "delay per pixel must be a non-negative number, got %v", o.DelayPerPixel)
	}
	if o.ItemCount <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "item count must be positive, got %d", o.ItemCount)
	}
	if o.ContainerWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "container width must not be negative, got %v", o.ContainerWidth)
	}
	if o.Frames < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "frames must be at least 1, got %d", o.Frames)
	}
	if o.At < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame time must not be negative, got %v", o.At)
	}
	if o.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "duration must not be negative, got %v", o.Duration)
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if _, err := anim.ParseEase(o.Ease); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid ease")
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ease returns the parsed ease. Callers validate first.
func (o *Options) ease() anim.Ease {
	e, _ := anim.ParseEase(o.Ease)
	return e
}

func (o *Options) String() string {
	return fmt.Sprintf("items=%d delay_per_pixel=%g origin=%d formats=%s",
		o.ItemCount, o.DelayPerPixel, o.OriginIndex, strings.Join(o.Formats, ","))
}
