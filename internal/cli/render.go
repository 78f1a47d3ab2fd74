package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ripplegrid/pkg/errors"
	"github.com/matzehuels/ripplegrid/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	grid     gridFlags
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // comma-separated output formats
	at       float64 // seconds after the trigger for the webp format
	frames   int     // frame count for the frames format
	duration float64 // reveal duration per box
	ease     string  // easing curve
	scale    float64 // raster pixel scale
	debug    bool    // label boxes with their delays
}

// renderCommand creates the render command for writing the reveal to files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	defaults := pipeline.NewOptions()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the ripple reveal to SVG, WebP or JSON",
		Long: `Render the ripple reveal to files.

Formats:
  svg     animated SVG; the ripple plays when the file is opened in a browser
  webp    a single frame, --at seconds after the reveal was triggered
  frames  --frames WebP files covering the whole reveal (<base>-000.webp, ...)
  json    measured offsets and computed delays`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, output, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	flags.grid.register(cmd.Flags())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), webp, frames, json (comma-separated)")
	cmd.Flags().Float64Var(&flags.at, "at", 0, "seconds after the trigger to capture (webp)")
	cmd.Flags().IntVar(&flags.frames, "frames", defaults.Frames, "number of frames (frames)")
	cmd.Flags().Float64Var(&flags.duration, "duration", defaults.Duration, "reveal duration per box in seconds")
	cmd.Flags().StringVar(&flags.ease, "ease", defaults.Ease, "easing: linear, ease-in, ease-out, ease-in-out")
	cmd.Flags().Float64Var(&flags.scale, "scale", defaults.Scale, "pixel scale of raster output")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "label every box with its delay (svg)")

	return cmd
}

// options merges defaults, the config file and flags, and resolves the output path.
func (f *renderFlags) options(cmd *cobra.Command) (pipeline.Options, string, error) {
	fs := cmd.Flags()
	opts, file, err := f.grid.options(fs)
	if err != nil {
		return opts, "", err
	}

	output := f.output
	if file != nil && output == "" {
		output = file.Output
	}

	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("at") {
		opts.At = f.at
	}
	if fs.Changed("frames") {
		opts.Frames = f.frames
	}
	if fs.Changed("duration") {
		opts.Duration = f.duration
	}
	if fs.Changed("ease") {
		opts.Ease = f.ease
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Debug = f.debug

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, "", err
	}
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return opts, "", err
		}
	}
	return opts, output, nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if formats := pipeline.ParseFormats(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}

// basePath derives the base output path. A known format extension on output
// is stripped; an empty output falls back to the application name.
func basePath(output string) string {
	if output == "" {
		return appName
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths returns the file path for each single-file format.
// A lone format written to an output with an extension keeps that exact path.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	base := basePath(output)
	for _, format := range formats {
		if format == pipeline.FormatFrames {
			continue
		}
		paths[format] = base + "." + format
	}
	if len(formats) == 1 && formats[0] != pipeline.FormatFrames && filepath.Ext(output) != "" {
		paths[formats[0]] = output
	}
	return paths
}

// framePath returns the path of frame i, e.g. ripplegrid-007.webp.
func framePath(base string, i int) string {
	return fmt.Sprintf("%s-%03d.%s", base, i, pipeline.FormatWebP)
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	logger.Debug("render options", "options", opts.String())

	var spinner *Spinner
	if opts.HasFormat(pipeline.FormatFrames) {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d frames...", opts.Frames))
		opts.OnFrame = spinner.frameProgress
		spinner.Start()
	}

	prog := newProgress(logger)
	result, err := c.newRunner().Execute(ctx, opts)
	if spinner != nil {
		frames := 0
		if result != nil {
			frames = len(result.Frames)
		}
		finishSpinner(spinner, err, frames)
	}
	if err != nil {
		return err
	}
	prog.done("Rendered", "formats", strings.Join(opts.Formats, ","), "boxes", result.Stats.ItemCount)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var written []string
	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		path, ok := paths[format]
		if !ok {
			continue
		}
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	base := basePath(output)
	for i, frame := range result.Frames {
		path := framePath(base, i)
		if err := writeArtifact(path, frame); err != nil {
			return err
		}
		if i == 0 || i == len(result.Frames)-1 {
			written = append(written, path)
		}
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.Attached, len(result.Frames), result.Stats.MaxDelay+opts.Duration)
	return nil
}

// finishSpinner stops s with a status line for the render outcome and
// returns that line.
func finishSpinner(s *Spinner, err error, frames int) string {
	switch {
	case err == nil:
		msg := fmt.Sprintf("Rendered %d frames", frames)
		s.StopWithSuccess(msg)
		return msg
	case s.Cancelled():
		s.StopWithError("Render cancelled")
		return "Render cancelled"
	default:
		s.StopWithError("Render failed")
		return "Render failed"
	}
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
