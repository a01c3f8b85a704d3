package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/io"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/render/rulegraph"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

const (
	rulesFormatText = "text"
	rulesFormatDOT  = "dot"
	rulesFormatSVG  = "svg"
	rulesFormatPNG  = "png"
	rulesFormatPDF  = "pdf"
	rulesFormatJSON = "json"
)

// rulesCommand creates the rules command for inspecting a rule set.
func (c *CLI) rulesCommand() *cobra.Command {
	var (
		grammar  grammarFlags
		system   string
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the production rules as text, a graph or JSON",
		Long: `Show the configured rules.

The graph formats (dot, svg, png, pdf) draw one node per symbol and an edge
from each rule's symbol to every symbol in its replacement. Symbols without
a rule are dashed. Nodes are labelled with the turtle command the symbol
draws, if any.

The json format writes the L-system in the form read by --system.`,
		Example: `  lturtle rules -p plant
  lturtle rules -p dragon -f svg -o dragon-rules.svg
  lturtle rules -f json -o sketch.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputs(output); err != nil {
				return err
			}
			cfg, err := c.resolveGrammar(cmd, &grammar, system)
			if err != nil {
				return err
			}
			return runRules(cfg, format, output, detailed)
		},
	}

	grammar.register(cmd.Flags())
	cmd.Flags().StringVar(&system, "system", "", "load the L-system from a JSON file")
	cmd.Flags().StringVarP(&format, "format", "f", rulesFormatText, "text, dot, svg, png, pdf or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for text, dot and json)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label edges with symbol counts")

	return cmd
}

func runRules(cfg config.Config, format, output string, detailed bool) error {
	sys, err := cfg.System()
	if err != nil {
		return err
	}
	for _, i := range sys.Rules.Shadowed() {
		printWarning("Rule %s is shadowed by an earlier rule for %q", sys.Rules[i], sys.Rules[i].Match)
	}

	if format == rulesFormatText {
		printRules(sys, cfg.Symbols())
		return nil
	}

	var data []byte
	switch format {
	case rulesFormatJSON:
		var buf bytes.Buffer
		if err := io.WriteJSON(sys, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	case rulesFormatDOT, rulesFormatSVG, rulesFormatPNG, rulesFormatPDF:
		dot := rulegraph.ToDOT(sys.Rules, rulegraph.Options{
			Detailed: detailed,
			Commands: commandLabels(cfg.Symbols()),
		})
		if data, err = renderRuleGraph(dot, format); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %s (must be text, dot, svg, png, pdf or json)", format)
	}

	if output == "" {
		if format == rulesFormatPNG || format == rulesFormatPDF {
			return fmt.Errorf("%s output needs --output", format)
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Wrote rule graph")
	printFile(output)
	return nil
}

func renderRuleGraph(dot, format string) ([]byte, error) {
	switch format {
	case rulesFormatSVG:
		return rulegraph.RenderSVG(dot)
	case rulesFormatPNG:
		return rulegraph.RenderPNG(dot, 2)
	case rulesFormatPDF:
		return rulegraph.RenderPDF(dot)
	}
	return []byte(dot), nil
}

func printRules(sys lsystem.System, symbols turtle.SymbolMap) {
	fmt.Println(StyleTitle.Render("L-system"))
	printKeyValue("Axiom", sys.Axiom)
	printKeyValue("Generations", StyleNumber.Render(fmt.Sprint(sys.Generations)))
	printKeyValue("Length", StyleNumber.Render(fmt.Sprint(sys.Length())))
	printNewline()
	for _, r := range sys.Rules {
		fmt.Println("  " + StyleHighlight.Render(string(r.Match)) + " " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(r.Replacement))
	}
	printNewline()
	for _, sym := range rulegraph.Build(sys.Rules).Symbols {
		if cmd, ok := symbols[sym]; ok {
			printDetail("%c draws %s", sym, cmd)
		}
	}
}

func commandLabels(symbols turtle.SymbolMap) map[rune]string {
	out := make(map[rune]string, len(symbols))
	for sym, cmd := range symbols {
		out[sym] = cmd.String()
	}
	return out
}
