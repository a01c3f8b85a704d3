// Package config loads lturtle settings from TOML.
//
// A configuration file has one table per concern:
//
//	preset = "plant"        # optional base preset
//
//	[turtle]
//	step = 20.0
//	angle = 45.0
//	heading = 270.0
//
//	[grammar]
//	axiom = "A"
//	rules = ["A=-BF+AFA+FB-", "B=+AF-BFB-FA+"]
//	generations = 5
//	branching = false
//	max_length = 1000000
//
//	[render]
//	width = 800.0
//	height = 600.0
//
//	[cache]
//	backend = "file"        # file, none, redis, mongo
//	prefix = "staging:"     # optional key prefix for shared backends
//
//	[server]
//	addr = ":8080"
//
// Values missing from the file keep the preset (or default) value. Unknown
// keys are rejected so typos surface early.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/render/sink"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

const appName = "lturtle"

// Cache backends.
const (
	CacheFile  = "file"
	CacheNone  = "none"
	CacheRedis = "redis"
	CacheMongo = "mongo"
)

// DefaultMaxLength bounds generated strings, in bytes.
const DefaultMaxLength = 1 << 20

// Config is the complete lturtle configuration.
type Config struct {
	Preset  string        `toml:"preset,omitempty"`
	Turtle  TurtleConfig  `toml:"turtle"`
	Grammar GrammarConfig `toml:"grammar"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// TurtleConfig holds the turtle constants.
type TurtleConfig struct {
	Step    float64 `toml:"step"`
	Angle   float64 `toml:"angle"`
	Heading float64 `toml:"heading"`
}

// GrammarConfig holds the L-system definition.
type GrammarConfig struct {
	Axiom       string   `toml:"axiom"`
	Rules       []string `toml:"rules"`
	Generations int      `toml:"generations"`
	// Branching enables f, [ and ] when interpreting generated strings.
	Branching bool `toml:"branching"`
	// MaxLength caps generated strings in bytes; 0 disables the cap.
	MaxLength int `toml:"max_length"`
}

// RenderConfig holds drawing output settings.
type RenderConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Padding     float64 `toml:"padding"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
	Background  string  `toml:"background"`
}

// CacheConfig selects the cache backend for the render pipeline.
type CacheConfig struct {
	Backend string `toml:"backend"`
	// URL addresses redis and mongo backends.
	URL string `toml:"url,omitempty"`
	// TTL is a Go duration string; empty uses the per-entry defaults.
	TTL string `toml:"ttl,omitempty"`
	// Prefix is prepended to every cache key, so several deployments can
	// share one redis or mongo instance.
	Prefix string `toml:"prefix,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the classic sketch configuration: a Hilbert-like grammar
// expanded 5 times from "A", drawn with 20 unit steps and 45 degree turns,
// starting upwards.
func Default() Config {
	return Config{
		Turtle: TurtleConfig{
			Step:    turtle.DefaultStepLength,
			Angle:   turtle.DefaultTurnAngle,
			Heading: turtle.HeadingUp,
		},
		Grammar: GrammarConfig{
			Axiom:       "A",
			Rules:       []string{"A=-BF+AFA+FB-", "B=+AF-BFB-FA+"},
			Generations: 5,
			MaxLength:   DefaultMaxLength,
		},
		Render: RenderConfig{
			Width:       800,
			Height:      600,
			Padding:     20,
			Stroke:      "#222222",
			StrokeWidth: 1.5,
			Background:  "#ffffff",
		},
		Cache: CacheConfig{
			Backend: CacheFile,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks every field and returns the first problem found as an
// INVALID_CONFIG, INVALID_AXIOM or INVALID_RULE error.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("turtle.step", c.Turtle.Step); err != nil {
		return err
	}
	if err := errors.ValidateFinite("turtle.angle", c.Turtle.Angle); err != nil {
		return err
	}
	if err := errors.ValidateFinite("turtle.heading", c.Turtle.Heading); err != nil {
		return err
	}
	if err := errors.ValidateAxiom(c.Grammar.Axiom); err != nil {
		return err
	}
	if c.Grammar.Generations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grammar.generations must be >= 0, got %d", c.Grammar.Generations)
	}
	if c.Grammar.MaxLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grammar.max_length must be >= 0, got %d", c.Grammar.MaxLength)
	}
	rules, err := lsystem.ParseRules(c.Grammar.Rules)
	if err != nil {
		return err
	}
	for _, r := range rules {
		if err := errors.ValidateReplacement(r.Replacement); err != nil {
			return err
		}
	}
	if err := errors.ValidatePositive("render.width", c.Render.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("render.height", c.Render.Height); err != nil {
		return err
	}
	if px := sink.Pixels(c.Render.Width, c.Render.Height, 1); px > sink.MaxPixels {
		return errors.New(errors.ErrCodeTooLarge, "render canvas %gx%g exceeds %d pixels", c.Render.Width, c.Render.Height, sink.MaxPixels)
	}
	if c.Render.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.padding must be >= 0")
	}
	if err := errors.ValidatePositive("render.stroke_width", c.Render.StrokeWidth); err != nil {
		return err
	}
	if err := errors.ValidateColor("render.stroke", c.Render.Stroke); err != nil {
		return err
	}
	if err := errors.ValidateColor("render.background", c.Render.Background); err != nil {
		return err
	}
	return c.Cache.validate()
}

func (c CacheConfig) validate() error {
	if _, err := c.Duration(); err != nil {
		return err
	}
	if strings.ContainsFunc(c.Prefix, unicode.IsSpace) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.prefix must not contain whitespace, got %q", c.Prefix)
	}
	switch c.Backend {
	case CacheFile, CacheNone:
		return nil
	case CacheRedis:
		return errors.ValidateURL(c.URL, "redis", "rediss")
	case CacheMongo:
		return errors.ValidateURL(c.URL, "mongodb", "mongodb+srv")
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, none, redis, mongo; got %q", c.Backend)
	}
}

// Duration parses TTL. An empty TTL yields zero.
func (c CacheConfig) Duration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl %q", c.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative, got %s", c.TTL)
	}
	return d, nil
}

// System returns the configured L-system.
func (c Config) System() (lsystem.System, error) {
	rules, err := lsystem.ParseRules(c.Grammar.Rules)
	if err != nil {
		return lsystem.System{}, err
	}
	return lsystem.System{
		Axiom:       c.Grammar.Axiom,
		Rules:       rules,
		Generations: c.Grammar.Generations,
	}, nil
}

// TurtleConfig returns the turtle constants with the origin at (0, 0).
func (c Config) TurtleConfig() turtle.Config {
	return turtle.Config{
		StepLength:     c.Turtle.Step,
		TurnAngle:      c.Turtle.Angle,
		InitialHeading: c.Turtle.Heading,
	}
}

// Symbols returns the symbol map used to interpret generated strings.
func (c Config) Symbols() turtle.SymbolMap {
	if c.Grammar.Branching {
		return turtle.BranchingSymbols()
	}
	return turtle.DefaultSymbols()
}

// Dir returns the configuration directory using the XDG standard
// (~/.config/lturtle/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// normalizeName lower-cases a preset or backend name.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
