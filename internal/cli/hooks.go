package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripplegrid/pkg/observability"
)

// logHooks reports pipeline events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerDebugHooks(l *log.Logger) {
	observability.SetPipelineHooks(logHooks{logger: l})
}

func (h logHooks) OnLayoutStart(_ context.Context, itemCount int) {
	h.logger.Debug("layout", "items", itemCount)
}

func (h logHooks) OnMeasureComplete(_ context.Context, attached int, originPublished bool) {
	h.logger.Debug("measure pass complete", "attached", attached, "origin_published", originPublished)
}

func (h logHooks) OnComputeComplete(_ context.Context, maxDelay float64) {
	h.logger.Debug("compute pass complete", "max_delay", maxDelay)
}

func (h logHooks) OnStart(_ context.Context, fired bool) {
	h.logger.Debug("start", "fired", fired)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d.Round(time.Microsecond))
}
