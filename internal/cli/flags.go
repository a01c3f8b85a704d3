package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/errors"
)

// grammarFlags override the loaded [turtle] and [grammar] tables. Only flags
// the user set are applied.
type grammarFlags struct {
	axiom       string
	rules       []string
	generations int
	maxLength   int
	branching   bool
	step        float64
	angle       float64
	heading     float64
}

func (g *grammarFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&g.axiom, "axiom", "a", "", "start string")
	fs.StringArrayVarP(&g.rules, "rule", "r", nil, "production rule SYMBOL=REPLACEMENT (repeatable, replaces configured rules)")
	fs.IntVarP(&g.generations, "generations", "n", 0, "number of rewriting passes")
	fs.IntVar(&g.maxLength, "max-length", 0, "refuse programs longer than this many bytes (0 = no cap)")
	fs.BoolVar(&g.branching, "branching", false, "interpret f, [ and ] as well as F, + and -")
	fs.Float64Var(&g.step, "step", 0, "turtle step length")
	fs.Float64Var(&g.angle, "angle", 0, "turn angle in degrees")
	fs.Float64Var(&g.heading, "heading", 0, "initial heading in degrees (270 = up)")
}

func (g *grammarFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("axiom") {
		cfg.Grammar.Axiom = g.axiom
	}
	if fs.Changed("rule") {
		cfg.Grammar.Rules = g.rules
	}
	if fs.Changed("generations") {
		cfg.Grammar.Generations = g.generations
	}
	if fs.Changed("max-length") {
		cfg.Grammar.MaxLength = g.maxLength
	}
	if fs.Changed("branching") {
		cfg.Grammar.Branching = g.branching
	}
	if fs.Changed("step") {
		cfg.Turtle.Step = g.step
	}
	if fs.Changed("angle") {
		cfg.Turtle.Angle = g.angle
	}
	if fs.Changed("heading") {
		cfg.Turtle.Heading = g.heading
	}
	return cfg.Validate()
}

// renderFlags override the [render] table.
type renderFlags struct {
	width       float64
	height      float64
	padding     float64
	stroke      string
	strokeWidth float64
	background  string
}

func (r *renderFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&r.width, "width", 0, "canvas width")
	fs.Float64Var(&r.height, "height", 0, "canvas height")
	fs.Float64Var(&r.padding, "padding", 0, "margin around the drawing")
	fs.StringVar(&r.stroke, "stroke", "", "line color (#rrggbb)")
	fs.Float64Var(&r.strokeWidth, "stroke-width", 0, "line width")
	fs.StringVar(&r.background, "background", "", "background color (#rrggbb)")
}

func (r *renderFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("width") {
		cfg.Render.Width = r.width
	}
	if fs.Changed("height") {
		cfg.Render.Height = r.height
	}
	if fs.Changed("padding") {
		cfg.Render.Padding = r.padding
	}
	if fs.Changed("stroke") {
		cfg.Render.Stroke = r.stroke
	}
	if fs.Changed("stroke-width") {
		cfg.Render.StrokeWidth = r.strokeWidth
	}
	if fs.Changed("background") {
		cfg.Render.Background = r.background
	}
}

// validateOutputs rejects unusable --output style paths. Empty paths are
// allowed and mean the command default.
func validateOutputs(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	return nil
}

// completePresets offers preset names for --preset.
func completePresets(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, p := range config.Presets() {
		if strings.HasPrefix(p.Name, toComplete) {
			names = append(names, p.Name+"\t"+p.Description)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
