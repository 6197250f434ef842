package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mandel/pkg/fractal"
	"github.com/matzehuels/mandel/pkg/params"
)

// regionsCommand lists the named regions accepted by --region.
func (c *CLI) regionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the named regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fractal.RegionNames() {
				r, _ := fractal.LookupRegion(name)
				printKeyValue(name, r.Description)
				printDetail("%s  %s", params.FormatComplex(r.UpperLeft), params.FormatComplex(r.LowerRight))
			}
			return nil
		},
	}
}
