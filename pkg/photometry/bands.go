// Package photometry defines the fixed filter band registry and the
// measurement vector that cross-catalog resolution fills in.
//
// The band set and its order are part of the output contract: every
// resolution run produces one slot per registered band, and downstream
// consumers index results by the registry order. Changing the order is
// a breaking change.
package photometry

import (
	"github.com/heliobs/magpie/pkg/errors"
)

// Band names a filter band in the registry. The string form is the
// pyphot filter identifier the measurement pipeline expects.
type Band string

// Registered filter bands.
const (
	TwoMASSH  Band = "2MASS_H"
	TwoMASSJ  Band = "2MASS_J"
	TwoMASSKs Band = "2MASS_Ks"
	JohnsonU  Band = "GROUND_JOHNSON_U"
	JohnsonV  Band = "GROUND_JOHNSON_V"
	JohnsonB  Band = "GROUND_JOHNSON_B"
	GaiaG     Band = "GaiaDR2v2_G"
	GaiaRP    Band = "GaiaDR2v2_RP"
	GaiaBP    Band = "GaiaDR2v2_BP"
	PS1g      Band = "PS1_g"
	PS1i      Band = "PS1_i"
	PS1r      Band = "PS1_r"
	PS1w      Band = "PS1_w"
	PS1y      Band = "PS1_y"
	PS1z      Band = "PS1_z"
	SDSSg     Band = "SDSS_g"
	SDSSi     Band = "SDSS_i"
	SDSSr     Band = "SDSS_r"
	SDSSu     Band = "SDSS_u"
	SDSSz     Band = "SDSS_z"
	WiseW1    Band = "WISE_RSR_W1"
	WiseW2    Band = "WISE_RSR_W2"
	GalexFUV  Band = "GALEX_FUV"
	GalexNUV  Band = "GALEX_NUV"
)

// registry fixes the vector order. Do not reorder.
var registry = []Band{
	TwoMASSH,
	TwoMASSJ,
	TwoMASSKs,
	JohnsonU,
	JohnsonV,
	JohnsonB,
	GaiaG,
	GaiaRP,
	GaiaBP,
	PS1g,
	PS1i,
	PS1r,
	PS1w,
	PS1y,
	PS1z,
	SDSSg,
	SDSSi,
	SDSSr,
	SDSSu,
	SDSSz,
	WiseW1,
	WiseW2,
	GalexFUV,
	GalexNUV,
}

var indexes = func() map[Band]int {
	m := make(map[Band]int, len(registry))
	for i, b := range registry {
		m[b] = i
	}
	return m
}()

// Count returns the number of registered bands.
func Count() int { return len(registry) }

// Bands returns the registered bands in vector order.
func Bands() []Band {
	out := make([]Band, len(registry))
	copy(out, registry)
	return out
}

// IndexOf returns the vector index of b. An unregistered band is a
// configuration error, not a data condition.
func IndexOf(b Band) (int, error) {
	if i, ok := indexes[b]; ok {
		return i, nil
	}
	return 0, errors.NewBandError(string(b), "")
}

// Valid reports whether b is a registered band.
func Valid(b Band) bool {
	_, ok := indexes[b]
	return ok
}

// String implements fmt.Stringer.
func (b Band) String() string { return string(b) }
