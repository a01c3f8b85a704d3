// Package render turns turtle drawings and grammars into files.
//
// The [sink] subpackage renders line segments as SVG, PNG, PDF or JSON. The
// [rulegraph] subpackage draws a rule set as a Graphviz production graph.
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(segments, sink.WithSize(800, 600))
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/lturtle/pkg/render/sink
// [rulegraph]: github.com/matzehuels/lturtle/pkg/render/rulegraph
package render
