package photometry

// Measurement is one filled vector slot: a magnitude, its uncertainty,
// and the catalog it came from.
type Measurement struct {
	Band   Band    `json:"band" yaml:"band"`
	Mag    float64 `json:"mag" yaml:"mag"`
	Err    float64 `json:"err" yaml:"err"`
	Source string  `json:"source" yaml:"source"`
}

// Vector accumulates at most one measurement per registered band.
// Slots are claimed first-writer-wins: once a band is used it stays
// used, and later writers are rejected without mutating the slot.
// A Vector belongs to a single resolution run and is not safe for
// concurrent use.
type Vector struct {
	used []bool
	mag  []float64
	err  []float64
	src  []string
}

// NewVector returns an empty vector with one slot per registered band.
func NewVector() *Vector {
	n := Count()
	return &Vector{
		used: make([]bool, n),
		mag:  make([]float64, n),
		err:  make([]float64, n),
		src:  make([]string, n),
	}
}

// Merge claims the band's slot for the given measurement. It returns
// false when the slot is already taken, leaving the earlier value in
// place. An unknown band returns an error: schemas are validated
// upstream, so reaching this path means misconfiguration.
func (v *Vector) Merge(band Band, mag, magErr float64, source string) (bool, error) {
	i, err := IndexOf(band)
	if err != nil {
		return false, err
	}
	if v.used[i] {
		return false, nil
	}
	v.used[i] = true
	v.mag[i] = mag
	v.err[i] = magErr
	v.src[i] = source
	return true, nil
}

// Used reports whether the band's slot has been claimed.
func (v *Vector) Used(band Band) bool {
	i, err := IndexOf(band)
	if err != nil {
		return false
	}
	return v.used[i]
}

// At returns the band's measurement. The second return is false for
// an unclaimed slot or an unknown band.
func (v *Vector) At(band Band) (Measurement, bool) {
	i, err := IndexOf(band)
	if err != nil || !v.used[i] {
		return Measurement{}, false
	}
	return Measurement{Band: band, Mag: v.mag[i], Err: v.err[i], Source: v.src[i]}, true
}

// Len returns the number of claimed slots.
func (v *Vector) Len() int {
	n := 0
	for _, u := range v.used {
		if u {
			n++
		}
	}
	return n
}

// Measurements returns the claimed slots in registry order.
func (v *Vector) Measurements() []Measurement {
	out := make([]Measurement, 0, v.Len())
	for i, u := range v.used {
		if !u {
			continue
		}
		out = append(out, Measurement{
			Band:   registry[i],
			Mag:    v.mag[i],
			Err:    v.err[i],
			Source: v.src[i],
		})
	}
	return out
}

// Mags returns a copy of the full magnitude array in registry order.
// Unclaimed slots read zero; consult UsedMask to tell them apart from
// real measurements.
func (v *Vector) Mags() []float64 {
	out := make([]float64, len(v.mag))
	copy(out, v.mag)
	return out
}

// Errs returns a copy of the full uncertainty array in registry order.
func (v *Vector) Errs() []float64 {
	out := make([]float64, len(v.err))
	copy(out, v.err)
	return out
}

// UsedMask returns a copy of the slot occupancy array in registry order.
func (v *Vector) UsedMask() []bool {
	out := make([]bool, len(v.used))
	copy(out, v.used)
	return out
}

// Sources returns a copy of the per-slot provenance array in registry
// order. Unclaimed slots read as empty strings.
func (v *Vector) Sources() []string {
	out := make([]string, len(v.src))
	copy(out, v.src)
	return out
}
