package pipeline

import (
	"context"

	"github.com/matzehuels/ripplegrid/pkg/errors"
	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
	"github.com/matzehuels/ripplegrid/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. The frames
// format is returned separately because it yields one file per frame.
func Render(ctx context.Context, f layout.Flow, s grid.Snapshot, opts Options) (map[string][]byte, [][]byte, error) {
	artifacts := make(map[string][]byte)
	var frames [][]byte

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(f, s, buildSVGOptions(opts)...)
		case FormatWebP:
			data, err = sink.RenderWebP(f, s, opts.At, buildRasterOptions(opts)...)
		case FormatFrames:
			frames, err = sink.RenderFrames(ctx, f, s, opts.Frames, buildRasterOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(f, s, sink.WithJSONDuration(opts.Duration))
		default:
			return nil, nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, err
			}
			return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		if data != nil {
			artifacts[format] = data
		}
	}

	return artifacts, frames, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithDuration(opts.Duration),
		sink.WithEase(opts.ease()),
	}
	if opts.Debug {
		svgOpts = append(svgOpts, sink.WithDebug())
	}
	return svgOpts
}

func buildRasterOptions(opts Options) []sink.RasterOption {
	rasterOpts := []sink.RasterOption{
		sink.WithScale(opts.Scale),
		sink.WithRasterDuration(opts.Duration),
		sink.WithRasterEase(opts.ease()),
	}
	if opts.OnFrame != nil {
		rasterOpts = append(rasterOpts, sink.WithFrameProgress(opts.OnFrame))
	}
	return rasterOpts
}
