package magpie

import (
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

// Result is one completed lookup: the identified target, its stellar
// parameters, the merged photometry, and the warnings the run
// accumulated.
type Result = resolve.Result

// Target identifies what to resolve: a display name, ICRS coordinates
// in decimal degrees, and optionally a known Gaia DR2 source id.
type Target = target.Target

// StellarParams holds the Gaia-derived physical parameters.
type StellarParams = target.StellarParams

// Warning is one non-fatal diagnostic from a lookup.
type Warning = warning.Warning

// NewTarget builds a target from a name and ICRS coordinates in
// decimal degrees.
func NewTarget(name string, ra, dec float64) Target {
	return target.New(name, ra, dec)
}
