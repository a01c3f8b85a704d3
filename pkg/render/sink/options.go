package sink

import (
	"math"

	"github.com/matzehuels/lturtle/pkg/turtle"
)

// Defaults for a canvas without options.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultPadding     = 20.0
	DefaultStroke      = "#222222"
	DefaultStrokeWidth = 1.5
	DefaultBackground  = "#ffffff"
)

// MaxPixels caps the raster size of RenderPNG (width*height*scale²).
const MaxPixels = 1 << 26

// Option configures a renderer.
type Option func(*canvas)

type canvas struct {
	width, height float64
	padding       float64
	stroke        string
	strokeWidth   float64
	background    string
	scale         float64
}

// WithSize sets the canvas width and height.
func WithSize(w, h float64) Option { return func(c *canvas) { c.width, c.height = w, h } }

// WithPadding sets the margin kept free on every side of the drawing.
func WithPadding(p float64) Option { return func(c *canvas) { c.padding = p } }

// WithStroke sets the line color.
func WithStroke(color string) Option { return func(c *canvas) { c.stroke = color } }

// WithStrokeWidth sets the line width in canvas units.
func WithStrokeWidth(w float64) Option { return func(c *canvas) { c.strokeWidth = w } }

// WithBackground sets the background color.
func WithBackground(color string) Option { return func(c *canvas) { c.background = color } }

// WithScale multiplies the PNG pixel size. It has no effect on vector
// output.
func WithScale(s float64) Option { return func(c *canvas) { c.scale = s } }

// Pixels returns the raster size of a width by height canvas at scale.
func Pixels(width, height, scale float64) float64 {
	return width * height * scale * scale
}

func newCanvas(opts ...Option) canvas {
	c := canvas{
		width:       DefaultWidth,
		height:      DefaultHeight,
		padding:     DefaultPadding,
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
		background:  DefaultBackground,
		scale:       1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.width <= 0 {
		c.width = DefaultWidth
	}
	if c.height <= 0 {
		c.height = DefaultHeight
	}
	if c.scale <= 0 {
		c.scale = 1
	}
	c.padding = math.Max(0, math.Min(c.padding, math.Min(c.width, c.height)/2))
	return c
}

// Transform maps turtle coordinates onto the canvas.
type Transform struct {
	Scale float64 `json:"scale"`
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
}

// Apply maps p onto the canvas.
func (t Transform) Apply(p turtle.Point) turtle.Point {
	return turtle.Point{X: p.X*t.Scale + t.DX, Y: p.Y*t.Scale + t.DY}
}

// Fit returns the transform that scales bounds uniformly into a width x
// height canvas with padding on every side and centres it. A drawing with
// no extent on an axis is centred on that axis; a single point is centred
// at scale 1.
func Fit(bounds turtle.Rect, width, height, padding float64) Transform {
	innerW := width - 2*padding
	innerH := height - 2*padding
	bw, bh := bounds.Width(), bounds.Height()

	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(innerW/bw, innerH/bh)
	case bw > 0:
		scale = innerW / bw
	case bh > 0:
		scale = innerH / bh
	}

	cx := (bounds.Min.X + bounds.Max.X) / 2
	cy := (bounds.Min.Y + bounds.Max.Y) / 2
	return Transform{
		Scale: scale,
		DX:    width/2 - cx*scale,
		DY:    height/2 - cy*scale,
	}
}

func (c canvas) fit(segs []turtle.Segment) Transform {
	return Fit(turtle.Bounds(segs), c.width, c.height, c.padding)
}
