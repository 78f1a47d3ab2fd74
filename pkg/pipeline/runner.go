package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
	"github.com/matzehuels/ripplegrid/pkg/observability"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options; each run owns its grid.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → mount → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	f := r.Layout(ctx, opts)
	result.Flow = f
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ItemCount = len(f.Boxes)
	result.Stats.Attached = f.Attached()

	opts.Logger.Info("laid out boxes",
		"items", len(f.Boxes),
		"columns", f.Columns,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Mount
	mountStart := time.Now()
	g, err := r.Mount(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("mount: %w", err)
	}
	result.Snapshot = g.Snapshot()
	result.Stats.MountTime = time.Since(mountStart)
	result.Stats.MaxDelay = g.MaxDelay()

	opts.Logger.Info("mounted grid",
		"origin", g.Origin(),
		"max_delay", fmt.Sprintf("%.3fs", g.MaxDelay()),
		"duration", result.Stats.MountTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, frames, err := r.Render(ctx, f, result.Snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Frames = frames
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout flows the boxes for opts.
func (r *Runner) Layout(ctx context.Context, opts Options) layout.Flow {
	observability.Pipeline().OnLayoutStart(ctx, opts.ItemCount)
	return Layout(opts)
}

// Mount creates a grid and drives it through its passes against f: measure
// every item, compute every delay, then trigger the reveal.
func (r *Runner) Mount(ctx context.Context, f layout.Flow, opts Options) (*grid.Grid, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()

	g, err := NewGrid(opts)
	if err != nil {
		return nil, err
	}

	g.Measure(f)
	hooks.OnMeasureComplete(ctx, f.Attached(), g.OriginPublished())
	if !g.OriginPublished() {
		opts.Logger.Debug("origin not published, measuring from container corner",
			"origin_index", opts.OriginIndex,
			"items", opts.ItemCount)
	}

	if err := g.Compute(); err != nil {
		return nil, err
	}
	hooks.OnComputeComplete(ctx, g.MaxDelay())

	fired := g.Start()
	hooks.OnStart(ctx, fired)
	opts.Logger.Debug("triggered reveal", "fired", fired)

	return g, nil
}

// Render generates artifacts for a mounted grid.
func (r *Runner) Render(ctx context.Context, f layout.Flow, s grid.Snapshot, opts Options) (map[string][]byte, [][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	start := time.Now()
	artifacts, frames, err := Render(ctx, f, s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, frames, err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
