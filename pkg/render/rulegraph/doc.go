// Package rulegraph draws a rule set as a production graph.
//
// Each symbol is a node and each rule adds an edge from its match symbol to
// every distinct symbol in its replacement. Symbols without a rule are
// terminals and are drawn dashed. Self-loops mark symbols that grow every
// pass.
//
//	dot := rulegraph.ToDOT(rules, rulegraph.Options{})
//	svg, err := rulegraph.RenderSVG(dot)
//
// Rendering uses Graphviz compiled to WebAssembly (goccy/go-graphviz), so no
// system Graphviz install is needed. PDF and PNG go through rsvg-convert.
package rulegraph
