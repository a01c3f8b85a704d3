package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// RenderPNG rasterizes segs with the same geometry as [RenderSVG]. The image
// is width*scale by height*scale pixels and the stroke width scales with it.
// Canvases above [MaxPixels] are refused.
func RenderPNG(segs []turtle.Segment, opts ...Option) ([]byte, error) {
	c := newCanvas(opts...)
	if px := Pixels(c.width, c.height, c.scale); px > MaxPixels || math.IsNaN(px) {
		return nil, errors.New(errors.ErrCodeTooLarge, "png canvas of %.0f pixels exceeds %d", px, MaxPixels)
	}
	tr := c.fit(segs)

	w := int(c.width*c.scale + 0.5)
	h := int(c.height*c.scale + 0.5)
	dc := gg.NewContext(w, h)
	dc.Scale(c.scale, c.scale)

	dc.SetHexColor(c.background)
	dc.Clear()

	dc.SetHexColor(c.stroke)
	// gg does not run the line width through the transform.
	dc.SetLineWidth(c.strokeWidth * c.scale)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, s := range segs {
		from, to := tr.Apply(s.From), tr.Apply(s.To)
		if i == 0 || s.From != segs[i-1].To {
			dc.MoveTo(from.X, from.Y)
		}
		dc.LineTo(to.X, to.Y)
	}
	if len(segs) > 0 {
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
