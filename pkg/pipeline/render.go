package pipeline

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/matzehuels/lturtle/pkg/cache"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/render/sink"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// Interpret walks program with a fresh turtle and returns the segments it
// drew. Options must have been validated.
func Interpret(program string, opts Options) []turtle.Segment {
	t := turtle.New(opts.TurtleConfig())
	return t.Interpret(lsystem.StringSymbols(program), opts.Symbols())
}

// RenderSegments generates output artifacts in the requested formats.
func RenderSegments(segs []turtle.Segment, opts Options) (map[string][]byte, error) {
	sinkOpts := opts.SinkOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(segs, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(segs, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(segs, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(segs, sinkOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// systemHash identifies an axiom and rule set.
func systemHash(sys lsystem.System) string {
	buf := []byte(sys.Axiom)
	for _, r := range sys.Rules {
		buf = append(buf, 0)
		buf = append(buf, r.String()...)
	}
	return cache.Hash(buf)
}

// drawingHash identifies a segment list by its exact coordinates.
func drawingHash(segs []turtle.Segment) string {
	buf := make([]byte, 0, len(segs)*32)
	for _, s := range segs {
		for _, f := range [4]float64{s.From.X, s.From.Y, s.To.X, s.To.Y} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
	}
	return cache.Hash(buf)
}
