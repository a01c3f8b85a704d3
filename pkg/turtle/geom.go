package turtle

import "math"

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a line drawn from From to To.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds returns the smallest Rect containing every segment endpoint.
// It returns the zero Rect for no segments.
func Bounds(segs []Segment) Rect {
	if len(segs) == 0 {
		return Rect{}
	}
	r := Rect{Min: segs[0].From, Max: segs[0].From}
	for _, s := range segs {
		r = r.extend(s.From).extend(s.To)
	}
	return r
}

func (r Rect) extend(p Point) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeHeading maps h into [0, 360).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HeadingEqual reports whether a and b point the same way within tol
// degrees, treating headings that differ by whole turns as equal.
func HeadingEqual(a, b, tol float64) bool {
	d := NormalizeHeading(a - b)
	return d <= tol || 360-d <= tol
}
