package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritepack/pkg/emit"
)

// formatsCommand creates the formats command listing descriptor formats.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported descriptor formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render("Descriptor formats"))
			for _, name := range emit.Formats() {
				renderer, err := emit.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n",
					name, styleFormat.Render("."+renderer.Ext()))
			}
			return nil
		},
	}
}
