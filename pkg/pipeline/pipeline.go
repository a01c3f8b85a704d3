// Package pipeline runs the generate → interpret → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: rewrite the axiom for the requested number of generations
//  2. Interpret: walk the generated string with a turtle, collecting segments
//  3. Render: draw the segments as SVG, PNG, PDF or JSON
//
// Generate and Render results are cached; interpretation is cheap relative
// to the string it reads and is always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.FromConfig(config.Default())
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lturtle/pkg/cache"
	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/render/sink"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Axiom       string   `json:"axiom"`
	Rules       []string `json:"rules"`
	Generations int      `json:"generations"`
	MaxLength   int      `json:"max_length,omitempty"` // 0 disables the cap
	Refresh     bool     `json:"refresh,omitempty"`

	// Interpret options
	Step      float64 `json:"step"`
	Angle     float64 `json:"angle"`
	Heading   float64 `json:"heading"`
	Branching bool    `json:"branching,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	Padding     float64  `json:"padding,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Background  string   `json:"background,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // PNG only

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	rules     lsystem.Rules
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Program is the generated string.
	Program string

	// Segments are the lines the turtle drew, in turtle coordinates.
	Segments []turtle.Segment

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Symbols       int
	Segments      int
	GenerateTime  time.Duration
	InterpretTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the program came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// FromConfig builds options from a loaded configuration.
func FromConfig(cfg config.Config) Options {
	return Options{
		Axiom:       cfg.Grammar.Axiom,
		Rules:       append([]string(nil), cfg.Grammar.Rules...),
		Generations: cfg.Grammar.Generations,
		MaxLength:   cfg.Grammar.MaxLength,
		Step:        cfg.Turtle.Step,
		Angle:       cfg.Turtle.Angle,
		Heading:     cfg.Turtle.Heading,
		Branching:   cfg.Grammar.Branching,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Padding:     cfg.Render.Padding,
		Stroke:      cfg.Render.Stroke,
		StrokeWidth: cfg.Render.StrokeWidth,
		Background:  cfg.Render.Background,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills zero render settings
// from the defaults. Heading and angle are taken as given, since zero is a
// meaningful value for both. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks the grammar and parses the rules.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateAxiom(o.Axiom); err != nil {
		return err
	}
	if o.Generations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generations must be >= 0, got %d", o.Generations)
	}
	if o.MaxLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_length must be >= 0, got %d", o.MaxLength)
	}
	rules, err := lsystem.ParseRules(o.Rules)
	if err != nil {
		return err
	}
	for _, r := range rules {
		if err := errors.ValidateReplacement(r.Replacement); err != nil {
			return err
		}
	}
	o.rules = rules
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for interpretation and rendering.
func (o *Options) SetRenderDefaults() {
	if o.Step == 0 {
		o.Step = turtle.DefaultStepLength
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = sink.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = sink.DefaultHeight
	}
	if o.Stroke == "" {
		o.Stroke = sink.DefaultStroke
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = sink.DefaultStrokeWidth
	}
	if o.Background == "" {
		o.Background = sink.DefaultBackground
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates render settings.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"step", o.Step},
		{"width", o.Width},
		{"height", o.Height},
		{"stroke_width", o.StrokeWidth},
		{"scale", o.Scale},
	} {
		if err := errors.ValidatePositive(f.name, f.v); err != nil {
			return err
		}
	}
	if px := sink.Pixels(o.Width, o.Height, o.Scale); px > sink.MaxPixels {
		return errors.New(errors.ErrCodeTooLarge, "canvas %gx%g at scale %g exceeds %d pixels", o.Width, o.Height, o.Scale, sink.MaxPixels)
	}
	if err := errors.ValidateFinite("angle", o.Angle); err != nil {
		return err
	}
	if err := errors.ValidateFinite("heading", o.Heading); err != nil {
		return err
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must be >= 0")
	}
	if err := errors.ValidateColor("stroke", o.Stroke); err != nil {
		return err
	}
	return errors.ValidateColor("background", o.Background)
}

// System returns the L-system the options describe. Call after validation.
func (o *Options) System() lsystem.System {
	return lsystem.System{Axiom: o.Axiom, Rules: o.rules, Generations: o.Generations}
}

// TurtleConfig returns the turtle constants.
func (o *Options) TurtleConfig() turtle.Config {
	return turtle.Config{StepLength: o.Step, TurnAngle: o.Angle, InitialHeading: o.Heading}
}

// Symbols returns the symbol map used for interpretation.
func (o *Options) Symbols() turtle.SymbolMap {
	if o.Branching {
		return turtle.BranchingSymbols()
	}
	return turtle.DefaultSymbols()
}

// SinkOptions returns the canvas options for the render stage.
func (o *Options) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithSize(o.Width, o.Height),
		sink.WithPadding(o.Padding),
		sink.WithStroke(o.Stroke),
		sink.WithStrokeWidth(o.StrokeWidth),
		sink.WithBackground(o.Background),
		sink.WithScale(o.Scale),
	}
}

// ProgramKeyOpts returns cache key options for generation.
func (o *Options) ProgramKeyOpts() cache.ProgramKeyOpts {
	return cache.ProgramKeyOpts{
		Generations: o.Generations,
		MaxLength:   o.MaxLength,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Scale:       o.Scale,
		Width:       o.Width,
		Height:      o.Height,
		Padding:     o.Padding,
		Stroke:      o.Stroke,
		StrokeWidth: o.StrokeWidth,
		Background:  o.Background,
	}
}
