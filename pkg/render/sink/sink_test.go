package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

var (
	horizontal = []turtle.Segment{{From: turtle.Point{}, To: turtle.Point{X: 10}}}
	corner     = []turtle.Segment{
		{From: turtle.Point{}, To: turtle.Point{X: 10}},
		{From: turtle.Point{X: 10}, To: turtle.Point{X: 10, Y: 10}},
	}
	pathRe = regexp.MustCompile(`d="([^"]*)"`)
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		bounds turtle.Rect
		scale  float64
		center turtle.Point
	}{
		{"horizontal line", turtle.Bounds(horizontal), 76, turtle.Point{X: 5}},
		{"square", turtle.Bounds(corner), 56, turtle.Point{X: 5, Y: 5}},
		{"vertical line", turtle.Rect{Max: turtle.Point{Y: 40}}, 14, turtle.Point{Y: 20}},
		{"point", turtle.Rect{Min: turtle.Point{X: 3, Y: 3}, Max: turtle.Point{X: 3, Y: 3}}, 1, turtle.Point{X: 3, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Fit(tt.bounds, 800, 600, 20)
			if !near(tr.Scale, tt.scale) {
				t.Errorf("scale = %v, want %v", tr.Scale, tt.scale)
			}
			got := tr.Apply(tt.center)
			if !near(got.X, 400) || !near(got.Y, 300) {
				t.Errorf("centre maps to %+v, want (400, 300)", got)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(horizontal))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.0 600.0"`) {
		t.Errorf("unexpected header: %s", svg)
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("background missing")
	}
	if !strings.Contains(svg, `stroke="#222222" stroke-width="1.5"`) {
		t.Error("stroke missing")
	}
	m := pathRe.FindStringSubmatch(svg)
	if m == nil {
		t.Fatal("no path in output")
	}
	if m[1] != "M20 300 L780 300" {
		t.Errorf("path = %q, want %q", m[1], "M20 300 L780 300")
	}
}

func TestRenderSVGJoinsConnectedSegments(t *testing.T) {
	m := pathRe.FindStringSubmatch(string(RenderSVG(corner)))
	if m == nil {
		t.Fatal("no path in output")
	}
	if n := strings.Count(m[1], "M"); n != 1 {
		t.Errorf("connected segments should form one subpath, got %d: %s", n, m[1])
	}

	gap := append(corner, turtle.Segment{From: turtle.Point{X: 20}, To: turtle.Point{X: 30}})
	m = pathRe.FindStringSubmatch(string(RenderSVG(gap)))
	if n := strings.Count(m[1], "M"); n != 2 {
		t.Errorf("a gap should start a new subpath, got %d: %s", n, m[1])
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(horizontal,
		WithSize(200, 100),
		WithPadding(10),
		WithStroke("#ff0000"),
		WithStrokeWidth(3),
		WithBackground("#000000"),
	))

	for _, want := range []string{`viewBox="0 0 200.0 100.0"`, `stroke="#ff0000"`, `stroke-width="3"`, `fill="#000000"`, `d="M10 50 L190 50"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %s:\n%s", want, svg)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if strings.Contains(svg, "<path") {
		t.Error("empty drawing should have no path")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(horizontal, WithStrokeWidth(4))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("size = %dx%d, want 800x600", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("corner should be background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(400, 300).RGBA()
	if r>>8 > 0x80 {
		t.Errorf("line pixel too light: %d", r>>8)
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(corner, WithSize(100, 50), WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("size = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}
}

func TestRenderPNGStrokeScales(t *testing.T) {
	data, err := RenderPNG(horizontal, WithSize(100, 100), WithStrokeWidth(2), WithScale(4))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	dark := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		if r, _, _, _ := img.At(200, y).RGBA(); r>>8 < 0x80 {
			dark++
		}
	}
	if dark < 6 || dark > 10 {
		t.Errorf("line is %d pixels thick, want about 8", dark)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"huge canvas", []Option{WithSize(1e12, 1e12)}},
		{"huge scale", []Option{WithSize(800, 600), WithScale(1000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(horizontal, tt.opts...)
			if !errors.Is(err, errors.ErrCodeTooLarge) {
				t.Errorf("error = %v, want TOO_LARGE", err)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(horizontal)
	if err != nil {
		t.Fatal(err)
	}
	var d Drawing
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatal(err)
	}
	if len(d.Segments) != 1 || d.Segments[0] != horizontal[0] {
		t.Errorf("segments = %+v", d.Segments)
	}
	if !near(d.Transform.Scale, 76) {
		t.Errorf("transform = %+v", d.Transform)
	}
	if d.Width != DefaultWidth || d.Stroke != DefaultStroke {
		t.Errorf("canvas = %+v", d)
	}

	empty, err := RenderJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(empty), `"segments": []`) {
		t.Errorf("empty drawing should encode segments as []: %s", empty)
	}
}

func TestFmtFloat(t *testing.T) {
	tests := map[float64]string{
		20:      "20",
		1.5:     "1.5",
		0.126:   "0.13",
		-0.0001: "0",
		-3.1:    "-3.1",
	}
	for in, want := range tests {
		if got := fmtFloat(in); got != want {
			t.Errorf("fmtFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
