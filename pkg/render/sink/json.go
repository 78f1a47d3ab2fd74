package sink

import (
	"encoding/json"

	"github.com/matzehuels/ripplegrid/pkg/grid"
	"github.com/matzehuels/ripplegrid/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	duration float64
	compact  bool
}

// WithJSONDuration records the reveal duration, so consumers can compute each
// box's end time.
func WithJSONDuration(d float64) JSONOption { return func(r *jsonRenderer) { r.duration = d } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Columns         int         `json:"columns"`
	DelayPerPixel   float64     `json:"delay_per_pixel"`
	ItemCount       int         `json:"item_count"`
	OriginIndex     int         `json:"origin_index"`
	Origin          grid.Offset `json:"origin"`
	OriginPublished bool        `json:"origin_published"`
	Duration        float64     `json:"duration,omitempty"`
	MaxDelay        float64     `json:"max_delay"`
	Items           []jsonItem  `json:"items"`
}

type jsonItem struct {
	Index    int     `json:"index"`
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Delay    float64 `json:"delay"`
	Origin   bool    `json:"origin,omitempty"`
	Attached bool    `json:"attached"`
	State    string  `json:"state"`
}

// RenderJSON exports the measured offsets and computed delays.
func RenderJSON(f layout.Flow, s grid.Snapshot, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:           f.Width,
		Height:          f.Height,
		Columns:         f.Columns,
		DelayPerPixel:   s.DelayPerPixel,
		ItemCount:       len(s.Items),
		OriginIndex:     s.OriginIndex,
		Origin:          s.Origin,
		OriginPublished: s.OriginPublished,
		Duration:        r.duration,
		MaxDelay:        s.MaxDelay(),
		Items:           make([]jsonItem, len(s.Items)),
	}
	for i, it := range s.Items {
		item := jsonItem{
			Index:    it.Index,
			Top:      it.Offset.Top,
			Left:     it.Offset.Left,
			Delay:    it.Delay,
			Origin:   it.Origin,
			Attached: it.Attached,
			State:    it.State.String(),
		}
		if b, ok := f.Box(it.Index); ok {
			item.Width, item.Height = b.Width, b.Height
		}
		out.Items[i] = item
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
