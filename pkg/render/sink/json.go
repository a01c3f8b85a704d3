package sink

import (
	"encoding/json"

	"github.com/matzehuels/lturtle/pkg/turtle"
)

// Drawing is the JSON form of a rendered drawing. Segments are in turtle
// coordinates; Transform maps them onto the canvas.
type Drawing struct {
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Stroke      string           `json:"stroke"`
	StrokeWidth float64          `json:"stroke_width"`
	Background  string           `json:"background"`
	Bounds      turtle.Rect      `json:"bounds"`
	Transform   Transform        `json:"transform"`
	Segments    []turtle.Segment `json:"segments"`
}

// NewDrawing fits segs into the canvas described by opts.
func NewDrawing(segs []turtle.Segment, opts ...Option) Drawing {
	c := newCanvas(opts...)
	if segs == nil {
		segs = []turtle.Segment{}
	}
	return Drawing{
		Width:       c.width,
		Height:      c.height,
		Stroke:      c.stroke,
		StrokeWidth: c.strokeWidth,
		Background:  c.background,
		Bounds:      turtle.Bounds(segs),
		Transform:   c.fit(segs),
		Segments:    segs,
	}
}

// RenderJSON renders segs as an indented [Drawing].
func RenderJSON(segs []turtle.Segment, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(NewDrawing(segs, opts...), "", "  ")
}
