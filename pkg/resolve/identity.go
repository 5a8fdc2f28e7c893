package resolve

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/table"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

// Identity resolves a target against the primary catalog: it fixes the
// source identifier (discovering it by cone search when the target does
// not carry one), retrieves the stellar parameters, and collects the
// target's identifiers in every other supported catalog.
//
// Diagnostics raised along the way (bad parallax, masked parameters,
// missing cross-matches) are returned on the Identification rather than
// reported directly, so the caller controls where warnings go.
type Identity interface {
	Resolve(ctx context.Context, t target.Target, radiusArcsec float64) (*Identification, error)
}

// Identification is the identity service's answer for one target.
type Identification struct {
	// SourceID is the primary catalog identifier the run resolved to.
	SourceID int64

	// Params holds the stellar parameters read from the primary catalog.
	Params target.StellarParams

	// CrossMatches maps each supported catalog to the target's
	// identifier within it, with NoMatch sentinels where the archive
	// knows no counterpart.
	CrossMatches catalogs.CrossMatches

	// Warnings are the non-fatal diagnostics raised while identifying.
	Warnings []warning.Warning
}

// Querier retrieves the survey tables covering a sky region. The
// returned set is keyed by archive table key; catalogs without rows
// near the position are simply absent.
type Querier interface {
	QueryRegion(ctx context.Context, pos target.Position, radiusArcsec float64) (table.Set, error)
}

// Result is the outcome of a full resolution run. Vector carries the
// full fixed-size slot arrays; Photometry repeats the claimed slots in
// registry order for serialization.
type Result struct {
	Target      target.Target            `json:"target" yaml:"target"`
	SourceID    int64                    `json:"source_id" yaml:"source_id"`
	Params      target.StellarParams     `json:"params" yaml:"params"`
	Vector      *photometry.Vector       `json:"-" yaml:"-"`
	Photometry  []photometry.Measurement `json:"photometry" yaml:"photometry"`
	Warnings    []warning.Warning        `json:"warnings" yaml:"warnings"`
	RetrievedAt utc.Time                 `json:"retrieved_at" yaml:"retrieved_at"`
}
