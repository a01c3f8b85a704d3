// Package pkg provides the core libraries for lturtle, an L-system rewriter
// with a turtle-graphics interpreter.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Domain: [lsystem] rewrites strings, [turtle] turns symbols into
//     segments, [sketch] couples the two for interactive use
//  2. Rendering: [render/sink] draws segments as SVG, PNG, PDF or JSON;
//     [render/rulegraph] draws rule sets with Graphviz
//  3. Infrastructure: [cache], [config], [errors], [observability], [io]
//  4. Orchestration: [pipeline] runs generate → interpret → render
//
// # Architecture
//
// The typical data flow:
//
//	axiom + rules
//	     ↓
//	[lsystem] package (rewrite for N generations)
//	     ↓
//	[turtle] package (interpret symbols as commands)
//	     ↓
//	[render/sink] package (fit segments to the canvas)
//	     ↓
//	SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/lturtle/pkg/lsystem"
//	    "github.com/matzehuels/lturtle/pkg/render/sink"
//	    "github.com/matzehuels/lturtle/pkg/turtle"
//	)
//
//	rules := lsystem.MustParseRules("F=F+F-F-F+F")
//	program := lsystem.Generate("F", rules, 3)
//
//	t := turtle.New(turtle.Config{StepLength: 5, TurnAngle: 90})
//	segs := t.Interpret(lsystem.StringSymbols(program), turtle.DefaultSymbols())
//
//	svg := sink.RenderSVG(segs, sink.WithSize(800, 600))
//
// For cached end-to-end runs use [pipeline.Runner].
package pkg
