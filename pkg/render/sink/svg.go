package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/lturtle/pkg/turtle"
)

// RenderSVG draws segs as a single stroked path. Consecutive segments that
// share an endpoint are joined into one polyline.
func RenderSVG(segs []turtle.Segment, opts ...Option) []byte {
	c := newCanvas(opts...)
	tr := c.fit(segs)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(c.background))

	if len(segs) > 0 {
		fmt.Fprintf(&buf, `  <path fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" d="`,
			html.EscapeString(c.stroke), fmtFloat(c.strokeWidth))
		writePath(&buf, segs, tr)
		buf.WriteString("\"/>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePath(buf *bytes.Buffer, segs []turtle.Segment, tr Transform) {
	for i, s := range segs {
		from, to := tr.Apply(s.From), tr.Apply(s.To)
		if i == 0 || s.From != segs[i-1].To {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "M%s %s", fmtFloat(from.X), fmtFloat(from.Y))
		}
		fmt.Fprintf(buf, " L%s %s", fmtFloat(to.X), fmtFloat(to.Y))
	}
}

// fmtFloat formats with two decimals and trims trailing zeros.
func fmtFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
