package cmd

import (
	"github.com/spf13/cobra"

	"github.com/heliobs/magpie/internal/cmd/globals"
	"github.com/heliobs/magpie/internal/cmd/output"
)

// NewCatalogsCommand creates the catalogs command with app dependencies.
func NewCatalogsCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:     "catalogs",
		GroupID: "registry",
		Short:   "List the supported survey catalogs",
		Long: `Catalogs lists the survey catalog schemas in merge priority order:
the VizieR table each catalog is read from, how rows are matched to
the target, and the bands the catalog contributes.

Priority decides which catalog wins when several report the same
band; lower numbers are consulted first.`,
		Example: `  magpie catalogs              # List catalogs in priority order
  magpie catalogs -o wide      # Include the full band lists
  magpie catalogs -o yaml      # Machine-readable schema table`,
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

			return output.Catalogs(client.Schemas(), globalFlags)
		},
	}
}
