// Package target describes the object a resolution run is about: a
// named sky position, optionally with a known primary source
// identifier, plus the stellar parameters retrieved alongside the
// photometry.
package target

import (
	"fmt"

	"github.com/heliobs/magpie/pkg/errors"
)

// Position is an ICRS sky position in decimal degrees.
type Position struct {
	RA  float64 `json:"ra" yaml:"ra"`
	Dec float64 `json:"dec" yaml:"dec"`
}

// Validate checks the coordinate ranges.
func (p Position) Validate() error {
	if p.RA < 0 || p.RA >= 360 {
		return errors.NewValidationError("ra", p.RA, "must be in [0, 360)")
	}
	if p.Dec < -90 || p.Dec > 90 {
		return errors.NewValidationError("dec", p.Dec, "must be in [-90, 90]")
	}
	return nil
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("RA=%.6f Dec=%.6f", p.RA, p.Dec)
}

// Target identifies the object to resolve. GaiaID may be zero, in
// which case the identity service discovers it with a cone search
// around the position.
type Target struct {
	Name     string   `json:"name" yaml:"name"`
	Position Position `json:"position" yaml:"position"`
	GaiaID   int64    `json:"gaia_id,omitempty" yaml:"gaia_id,omitempty"`
}

// New returns a target at the given position.
func New(name string, ra, dec float64) Target {
	return Target{Name: name, Position: Position{RA: ra, Dec: dec}}
}

// WithGaiaID returns a copy of the target carrying a known Gaia DR2
// source identifier, skipping cone-search discovery.
func (t Target) WithGaiaID(id int64) Target {
	t.GaiaID = id
	return t
}

// Validate checks that the target is resolvable.
func (t Target) Validate() error {
	if t.Name == "" {
		return errors.NewValidationError("name", t.Name, "cannot be empty")
	}
	if err := t.Position.Validate(); err != nil {
		return err
	}
	if t.GaiaID < 0 {
		return errors.NewValidationError("gaia_id", t.GaiaID, "cannot be negative")
	}
	return nil
}

// String implements fmt.Stringer.
func (t Target) String() string {
	if t.GaiaID != 0 {
		return fmt.Sprintf("%s (%s, Gaia DR2 %d)", t.Name, t.Position, t.GaiaID)
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Position)
}
