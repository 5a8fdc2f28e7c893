package target

// Param is a stellar parameter with its uncertainty. Valid is false
// when the archive row masked the value; Value and Err then read zero.
type Param struct {
	Value float64 `json:"value" yaml:"value"`
	Err   float64 `json:"err" yaml:"err"`
	Valid bool    `json:"valid" yaml:"valid"`
}

// NewParam returns a valid parameter.
func NewParam(value, err float64) Param {
	return Param{Value: value, Err: err, Valid: true}
}

// StellarParams holds the Gaia-derived physical parameters retrieved
// alongside the photometry. Parallax carries the zero-point corrected
// value in milliarcseconds; Teff is in kelvin, Radius and Luminosity
// in solar units.
type StellarParams struct {
	Parallax   Param `json:"parallax" yaml:"parallax"`
	Teff       Param `json:"teff" yaml:"teff"`
	Radius     Param `json:"radius" yaml:"radius"`
	Luminosity Param `json:"luminosity" yaml:"luminosity"`
}
