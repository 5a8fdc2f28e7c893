package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/heliobs/magpie"
	"github.com/heliobs/magpie/internal/cmd/alerts"
	"github.com/heliobs/magpie/internal/cmd/constants"
	"github.com/heliobs/magpie/internal/cmd/globals"
	"github.com/heliobs/magpie/internal/cmd/output"
	"github.com/heliobs/magpie/internal/cmd/table"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/photometry"
)

// NewLookupCommand creates the lookup command with app dependencies.
func NewLookupCommand(app App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookup <name>",
		GroupID: "core",
		Aliases: []string{"resolve"},
		Short:   "Resolve a target and merge its survey photometry",
		Long: `Lookup resolves one astronomical target against the supported survey
catalogs and prints its stellar parameters and merged band magnitudes.

The target is identified in Gaia DR2 first, by source id when --gaia-id
is given and by cone search around --ra/--dec otherwise. The surrounding
sky region is then queried on VizieR and the catalogs are merged in
priority order, keeping the first magnitude seen for each band.

Non-fatal problems (missing cross-matches, unreachable catalogs, masked
values) are reported as warnings on stderr and never abort the lookup.`,
		Example: `  # Resolve by name and coordinates
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911

  # Skip the cone search with a known Gaia DR2 source id
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911 --gaia-id 3376241909848155520

  # Wider search radius, fresh archive queries
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911 --radius 30 --no-cache

  # Stellar parameters only
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911 --no-photometry

  # Machine-readable output
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911 -o json
  magpie lookup "HD 42777" --ra 91.784 --dec 23.911 --export csv > photometry.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], app)
		},
	}

	globals.AddLookupFlags(cmd)
	_ = cmd.MarkFlagRequired("ra")
	_ = cmd.MarkFlagRequired("dec")

	return cmd
}

// runLookup resolves one target and writes the result in the requested format.
func runLookup(cmd *cobra.Command, name string, app App) error {
	flags := globals.ParseLookup(cmd)
	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	client, owned, err := lookupClient(app, flags)
	if err != nil {
		return err
	}
	if owned {
		defer func() { _ = client.Close() }()
	}

	tgt := magpie.NewTarget(name, flags.RA, flags.Dec)
	if flags.GaiaID != 0 {
		tgt = tgt.WithGaiaID(flags.GaiaID)
	}

	res, err := client.Resolve(cmd.Context(), tgt)
	if err != nil {
		return err
	}

	// Export bypasses the formatter entirely
	if flags.Export != "" {
		return exportResult(os.Stdout, res, flags.Export)
	}

	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		wide := globalFlags.Output == constants.FormatWide
		if err := renderLookup(os.Stdout, res, wide); err != nil {
			return err
		}
		if !globalFlags.Quiet {
			writeWarnings(os.Stderr, res.Warnings)
		}
		return nil
	default:
		formatter := output.NewFormatter(output.Format(globalFlags.Output))
		return formatter.Format(os.Stdout, res)
	}
}

// lookupClient returns the client to resolve with. Flags that override
// the app configuration force a dedicated client, which the caller owns.
func lookupClient(app App, flags *globals.LookupFlags) (magpie.Client, bool, error) {
	var opts []magpie.Option
	if flags.Radius > 0 {
		opts = append(opts, magpie.WithSearchRadius(flags.Radius))
	}
	if flags.Timeout > 0 {
		opts = append(opts, magpie.WithTimeout(flags.Timeout))
	}
	if flags.NoCache {
		opts = append(opts, magpie.WithCacheDisabled())
	}
	if flags.CachePath != "" {
		opts = append(opts, magpie.WithCachePath(flags.CachePath))
	}
	if flags.NoPhotometry {
		opts = append(opts, magpie.WithPhotometryDisabled())
	}

	if len(opts) == 0 {
		c, err := app.Client()
		return c, false, err
	}
	c, err := app.ClientWithOptions(opts...)
	return c, true, err
}

// renderLookup writes the human-readable sectioned view of a result.
func renderLookup(w io.Writer, res *magpie.Result, wide bool) error {
	fmt.Fprintf(w, "Target: %s\n", res.Target)
	fmt.Fprintf(w, "Retrieved: %s\n", res.RetrievedAt.Format(time.RFC3339))

	fmt.Fprintf(w, "\nStellar parameters:\n")
	formatter := &output.TableFormatter{}
	if err := formatter.Format(w, output.FromTable(table.ParamsToTableData(res.Params))); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPhotometry (%d bands):\n", len(res.Photometry))
	formatter = &output.TableFormatter{Wide: wide}
	return formatter.Format(w, output.FromTable(table.VectorToTableData(res.Photometry, wide)))
}

// writeWarnings prints run warnings as plain alerts.
func writeWarnings(w io.Writer, warnings []magpie.Warning) {
	if len(warnings) == 0 {
		return
	}
	writer := alerts.NewFormatWriter(w, "")
	for _, wn := range warnings {
		_ = writer.WriteAlert(alerts.FromWarning(wn))
	}
}

// exportResult writes the merged photometry in a machine-readable format.
func exportResult(w io.Writer, res *magpie.Result, format string) error {
	switch format {
	case constants.FormatCSV:
		return exportCSV(w, res)
	default:
		return errors.NewValidationError("export", format, "unsupported export format")
	}
}

// exportCSV writes one row per claimed band, in registry order.
func exportCSV(w io.Writer, res *magpie.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "band", "mag", "mag_err", "source"}); err != nil {
		return err
	}
	for _, m := range res.Photometry {
		idx, err := photometry.IndexOf(m.Band)
		if err != nil {
			continue
		}
		rec := []string{
			strconv.Itoa(idx),
			string(m.Band),
			strconv.FormatFloat(m.Mag, 'f', -1, 64),
			strconv.FormatFloat(m.Err, 'f', -1, 64),
			m.Source,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
