// Package sink renders turtle segments to output formats.
//
// Every renderer fits the drawing into a fixed canvas: the segments' bounding
// box is scaled uniformly to the canvas minus padding and centred. The
// turtle's own coordinates are therefore irrelevant to the output, which
// makes drawings from different origins or step lengths comparable.
//
//	segs := t.Interpret(lsystem.Symbols(axiom, rules, 5), turtle.DefaultSymbols())
//	svg := sink.RenderSVG(segs, sink.WithSize(800, 600), sink.WithStroke("#1f6feb"))
//	png, err := sink.RenderPNG(segs, sink.WithSize(800, 600))
//
// SVG, PNG and JSON are produced in-process. PDF goes through rsvg-convert
// (see [render.ToPDF]).
//
// [render.ToPDF]: github.com/matzehuels/lturtle/pkg/render.ToPDF
package sink
