package cmd

import (
	"github.com/spf13/cobra"

	"github.com/heliobs/magpie/internal/cmd/globals"
	"github.com/heliobs/magpie/internal/cmd/output"
)

// NewBandsCommand creates the bands command with app dependencies.
func NewBandsCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:     "bands",
		GroupID: "registry",
		Short:   "List the supported photometric bands",
		Long: `Bands lists the photometric band registry: every band a lookup can
return, its fixed vector index, and the catalogs that can supply it
in priority order.`,
		Example: `  magpie bands                 # List all bands
  magpie bands -o json         # Machine-readable band registry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globalFlags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			return output.Bands(client.Schemas(), globalFlags)
		},
	}
}
