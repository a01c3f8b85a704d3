package sink

import (
	"github.com/matzehuels/lturtle/pkg/render"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// RenderPDF renders segs as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(segs []turtle.Segment, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(segs, opts...))
}
