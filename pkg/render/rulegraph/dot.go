package rulegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/render"
)

// Options configures production graph rendering.
type Options struct {
	// Detailed labels edges with how often the target symbol occurs in the
	// replacement.
	Detailed bool
	// Commands labels nodes with the turtle command they map to, if any.
	Commands map[rune]string
}

// Edge is one production edge.
type Edge struct {
	From, To rune
	Count    int
}

// Graph is the production graph of a rule set.
type Graph struct {
	// Symbols lists every symbol in first-seen order: match symbols in rule
	// order, then replacement symbols.
	Symbols []rune
	// Productive reports which symbols have an effective rule.
	Productive map[rune]bool
	Edges      []Edge
}

// Build computes the production graph. Shadowed rules are ignored.
func Build(rules lsystem.Rules) Graph {
	g := Graph{Productive: make(map[rune]bool)}
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			g.Symbols = append(g.Symbols, r)
		}
	}

	for _, r := range rules {
		add(r.Match)
	}
	for _, r := range rules {
		if g.Productive[r.Match] {
			continue
		}
		g.Productive[r.Match] = true

		var order []rune
		counts := make(map[rune]int)
		for _, sym := range r.Replacement {
			if counts[sym] == 0 {
				order = append(order, sym)
			}
			counts[sym]++
			add(sym)
		}
		for _, sym := range order {
			g.Edges = append(g.Edges, Edge{From: r.Match, To: sym, Count: counts[sym]})
		}
	}
	return g
}

// ToDOT converts rules to Graphviz DOT.
func ToDOT(rules lsystem.Rules, opts Options) string {
	g := Build(rules)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=20];\n")
	buf.WriteString("\n")

	for _, sym := range g.Symbols {
		attrs := []string{fmt.Sprintf("label=%s", quote(nodeLabel(sym, opts)))}
		if !g.Productive[sym] {
			attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(sym), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %s -> %s [label=\"%d\"];\n", nodeID(e.From), nodeID(e.To), e.Count)
		} else {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID names nodes by code point so symbols like " and \ need no escaping.
func nodeID(r rune) string {
	return fmt.Sprintf("s%d", r)
}

func nodeLabel(r rune, opts Options) string {
	label := string(r)
	if cmd, ok := opts.Commands[r]; ok {
		label += "\n" + cmd
	}
	return label
}

// quote produces a DOT string literal. DOT only escapes double quotes and
// backslashes; newlines become \n line breaks.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the SVG scales like the turtle sinks' output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
