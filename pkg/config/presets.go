package config

import (
	"cmp"
	"slices"

	"github.com/matzehuels/lturtle/pkg/errors"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// PresetInfo describes a named preset.
type PresetInfo struct {
	Name        string
	Description string
}

var presets = map[string]struct {
	description string
	apply       func(*Config)
}{
	"sketch": {
		description: "the classic sketch: Hilbert grammar, 45 degree turns",
		apply:       func(*Config) {},
	},
	"hilbert": {
		description: "Hilbert space-filling curve",
		apply: func(c *Config) {
			c.Turtle.Step = 10
			c.Turtle.Angle = 90
			c.Turtle.Heading = 0
			c.Grammar.Generations = 5
		},
	},
	"koch": {
		description: "quadratic Koch curve",
		apply: func(c *Config) {
			c.Turtle.Step = 5
			c.Turtle.Angle = 90
			c.Turtle.Heading = 0
			c.Grammar.Axiom = "F"
			c.Grammar.Rules = []string{"F=F+F-F-F+F"}
			c.Grammar.Generations = 4
		},
	},
	"dragon": {
		description: "Heighway dragon curve",
		apply: func(c *Config) {
			c.Turtle.Step = 6
			c.Turtle.Angle = 90
			c.Turtle.Heading = 0
			c.Grammar.Axiom = "FX"
			c.Grammar.Rules = []string{"X=X+YF+", "Y=-FX-Y"}
			c.Grammar.Generations = 10
		},
	},
	"plant": {
		description: "fractal plant with branches",
		apply: func(c *Config) {
			c.Turtle.Step = 4
			c.Turtle.Angle = 25
			c.Turtle.Heading = turtle.HeadingUp
			c.Grammar.Axiom = "X"
			c.Grammar.Rules = []string{"X=F+[[X]-X]-F[-FX]+X", "F=FF"}
			c.Grammar.Generations = 5
			c.Grammar.Branching = true
		},
	},
}

// Preset returns the defaults with the named preset applied.
func Preset(name string) (Config, error) {
	p, ok := presets[normalizeName(name)]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q", name)
	}
	cfg := Default()
	p.apply(&cfg)
	cfg.Preset = normalizeName(name)
	return cfg, nil
}

// Presets lists the available presets sorted by name.
func Presets() []PresetInfo {
	out := make([]PresetInfo, 0, len(presets))
	for name, p := range presets {
		out = append(out, PresetInfo{Name: name, Description: p.description})
	}
	slices.SortFunc(out, func(a, b PresetInfo) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
