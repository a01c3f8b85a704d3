package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/pipeline"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	grammar grammarFlags
	render  renderFlags
	system  string
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated formats
	scale   float64 // PNG scale factor
	noCache bool
	refresh bool
}

// drawCommand creates the draw command: generate, interpret and render in
// one go.
func (c *CLI) drawCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw the L-system with the turtle",
		Long: `Generate the program, walk it with the turtle and render the drawing.

The drawing is scaled to fit the canvas. Formats are svg (default), png,
pdf (requires rsvg-convert) and json (raw segments).

Programs and drawings are cached locally for faster subsequent runs.`,
		Example: `  lturtle draw -p dragon -o dragon.svg
  lturtle draw -p plant -f svg,png --stroke "#2e7d32"
  lturtle draw -a F -r F=F+F-F-F+F -n 4 --angle 90 -o koch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputs(opts.output); err != nil {
				return err
			}
			cfg, err := c.resolveGrammar(cmd, &opts.grammar, opts.system)
			if err != nil {
				return err
			}
			opts.render.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runDraw(cmd.Context(), cfg, formats, opts)
		},
	}

	opts.grammar.register(cmd.Flags())
	opts.render.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.system, "system", "", "load axiom, rules and generations from an L-system JSON file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached programs and drawings")

	return cmd
}

func (c *CLI) runDraw(ctx context.Context, cfg config.Config, formats []string, opts drawOpts) error {
	runner, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.FromConfig(cfg)
	popts.Formats = formats
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh
	popts.Logger = loggerFromContext(ctx)

	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d generations...", cfg.Grammar.Generations))
	spinner.Start()
	program, _, err := runner.Generate(ctx, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate: %w", err)
	}

	spinner.SetMessage(fmt.Sprintf("Drawing %d symbols...", len(program)))
	segs := pipeline.Interpret(program, popts)
	artifacts, cached, err := runner.Render(ctx, segs, popts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if len(segs) == 0 {
		printWarning("The program draws nothing; check the symbol map (--branching) and rules")
	}

	base := cfg.Preset
	if base == "" {
		base = appName
	}
	printSuccess("Drew %s", StyleHighlight.Render(base))
	printStats(len(program), len(segs), cached)
	return writeArtifacts(artifacts, outputPaths(opts.output, base, formats), formats)
}
