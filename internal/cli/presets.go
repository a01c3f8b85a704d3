package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/config"
)

// presetsCommand lists the built-in presets.
func (c *CLI) presetsCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, info := range config.Presets() {
				printKeyValue(info.Name, info.Description)
				if !verbose {
					continue
				}
				p, err := config.Preset(info.Name)
				if err != nil {
					return err
				}
				printDetail("axiom %s · rules %s · %d generations · %g°",
					p.Grammar.Axiom, strings.Join(p.Grammar.Rules, " "), p.Grammar.Generations, p.Turtle.Angle)
			}
			printNewline()
			printNextStep("Draw one", fmt.Sprintf("%s draw --preset dragon", appName))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "long", "l", false, "show each preset's grammar")
	return cmd
}
