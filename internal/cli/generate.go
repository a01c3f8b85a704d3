package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/io"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	grammar grammarFlags
	output  string // program file; stdout when empty
	system  string // L-system JSON to load instead of the configured grammar
	export  string // write the resolved L-system as JSON
	stats   bool   // print the symbol histogram
	noCache bool
	refresh bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rewrite the axiom and print the resulting program",
		Long: `Rewrite the axiom with the production rules for the configured number of
generations and print the resulting string.

The grammar comes from the config file, --preset, --system (an L-system JSON
file as written by --export or 'lturtle rules --format json') or flags.

Results are cached; use --refresh to regenerate.`,
		Example: `  lturtle generate -p koch -n 2
  lturtle generate -a F -r F=F+F-F-F+F -n 3 -o koch.txt
  lturtle generate --system plant.json --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputs(opts.output, opts.export); err != nil {
				return err
			}
			cfg, err := c.resolveGrammar(cmd, &opts.grammar, opts.system)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cfg, opts)
		},
	}

	opts.grammar.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the program to a file instead of stdout")
	cmd.Flags().StringVar(&opts.system, "system", "", "load axiom, rules and generations from an L-system JSON file")
	cmd.Flags().StringVar(&opts.export, "export", "", "write the resolved L-system to a JSON file")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print symbol counts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached programs")

	return cmd
}

// resolveGrammar loads the configuration, replaces the grammar with the
// --system file when given, and applies grammar flags on top.
func (c *CLI) resolveGrammar(cmd *cobra.Command, flags *grammarFlags, systemPath string) (config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if systemPath != "" {
		sys, err := io.ImportJSON(systemPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Grammar.Axiom = sys.Axiom
		cfg.Grammar.Generations = sys.Generations
		cfg.Grammar.Rules = ruleStrings(sys.Rules)
	}
	if err := flags.apply(cmd.Flags(), &cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (c *CLI) runGenerate(ctx context.Context, cfg config.Config, opts generateOpts) error {
	logger := loggerFromContext(ctx)

	if opts.export != "" {
		sys, err := cfg.System()
		if err != nil {
			return err
		}
		if err := io.ExportJSON(sys, opts.export); err != nil {
			return err
		}
		logger.Infof("Exported L-system to %s", opts.export)
	}

	runner, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.FromConfig(cfg)
	popts.Refresh = opts.refresh
	popts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d generations...", cfg.Grammar.Generations))
	spinner.Start()
	program, cached, err := runner.Generate(ctx, popts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	prog.done(fmt.Sprintf("Generated %d symbols", len(program)))

	if opts.output == "" {
		fmt.Println(program)
	} else {
		if err := os.WriteFile(opts.output, []byte(program+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Generated %s symbols", StyleNumber.Render(fmt.Sprint(len(program))))
		printStats(len(program), 0, cached)
		printFile(opts.output)
	}

	if opts.stats {
		printHistogram(lsystem.Histogram(program))
	}
	return nil
}

// printHistogram lists symbol counts, most frequent first.
func printHistogram(h map[rune]int) {
	syms := make([]rune, 0, len(h))
	for r := range h {
		syms = append(syms, r)
	}
	slices.SortFunc(syms, func(a, b rune) int {
		if c := cmp.Compare(h[b], h[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, r := range syms {
		printKeyValue(string(r), fmt.Sprint(h[r]))
	}
}

func ruleStrings(rules lsystem.Rules) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.String()
	}
	return out
}
