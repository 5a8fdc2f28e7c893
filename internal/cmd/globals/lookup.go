package globals

import (
	"time"

	"github.com/spf13/cobra"
)

// LookupFlags holds flags specific to target resolution.
type LookupFlags struct {
	RA           float64
	Dec          float64
	GaiaID       int64
	Radius       float64
	NoPhotometry bool
	NoCache      bool
	CachePath    string
	Timeout      time.Duration
	Export       string
}

// AddLookupFlags adds resolution flags to a command.
func AddLookupFlags(cmd *cobra.Command) *LookupFlags {
	flags := &LookupFlags{}

	cmd.Flags().Float64Var(&flags.RA, "ra", 0,
		"Right ascension in decimal degrees (ICRS)")
	cmd.Flags().Float64Var(&flags.Dec, "dec", 0,
		"Declination in decimal degrees (ICRS)")
	cmd.Flags().Int64Var(&flags.GaiaID, "gaia-id", 0,
		"Gaia DR2 source identifier, skips the cone search when set")
	cmd.Flags().Float64VarP(&flags.Radius, "radius", "r", 0,
		"Search radius in arcseconds")
	cmd.Flags().BoolVar(&flags.NoPhotometry, "no-photometry", false,
		"Resolve identity and stellar parameters only")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false,
		"Bypass the local query cache")
	cmd.Flags().StringVar(&flags.CachePath, "cache-path", "",
		"Path to the query cache database")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0,
		"Per-request timeout for archive queries")
	cmd.Flags().StringVar(&flags.Export, "export", "",
		"Export the merged vector in the specified format (csv)")

	return flags
}

// ParseLookup extracts resolution flags from a command.
// The command must have had AddLookupFlags called on it, otherwise this will panic.
func ParseLookup(cmd *cobra.Command) *LookupFlags {
	return &LookupFlags{
		RA:           mustGetFloat64(cmd, "ra"),
		Dec:          mustGetFloat64(cmd, "dec"),
		GaiaID:       mustGetInt64(cmd, "gaia-id"),
		Radius:       mustGetFloat64(cmd, "radius"),
		NoPhotometry: mustGetBool(cmd, "no-photometry"),
		NoCache:      mustGetBool(cmd, "no-cache"),
		CachePath:    mustGetString(cmd, "cache-path"),
		Timeout:      mustGetDuration(cmd, "timeout"),
		Export:       mustGetString(cmd, "export"),
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt64 retrieves an int64 flag value or panics if the flag doesn't exist.
func mustGetInt64(cmd *cobra.Command, name string) int64 {
	val, err := cmd.Flags().GetInt64(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetFloat64 retrieves a float64 flag value or panics if the flag doesn't exist.
func mustGetFloat64(cmd *cobra.Command, name string) float64 {
	val, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
