// Package catalogs describes the survey catalogs the resolver knows:
// which archive table each lives in, how to pick the row belonging to
// a cross-matched source, and which column pairs feed which filter
// bands.
//
// The built-in schema table fixes the merge priority: catalogs are
// processed in declaration order, and the first catalog to deliver a
// valid measurement for a band wins that band's vector slot.
package catalogs

// Name identifies a survey catalog.
type Name string

// Known survey catalogs, in merge priority order.
const (
	ASCC      Name = "ASCC"
	APASS     Name = "APASS"
	Wise      Name = "Wise"
	PanSTARRS Name = "Pan-STARRS"
	Gaia      Name = "Gaia"
	TwoMASS   Name = "2MASS"
	SDSS      Name = "SDSS"
	GALEX     Name = "GALEX"
)

// String implements fmt.Stringer.
func (n Name) String() string { return string(n) }

// NoMatch is the sentinel identifier the identity service stores for a
// catalog with no counterpart of the target.
const NoMatch = "skipped"

// CrossMatches maps catalogs to the target's identifier within each,
// as produced by the identity service once per resolution run.
type CrossMatches map[Name]string

// ID returns the catalog's cross-match identifier. The second return
// is false when the catalog is absent or holds the NoMatch sentinel,
// in which case the catalog contributes nothing to the run.
func (c CrossMatches) ID(name Name) (string, bool) {
	id, ok := c[name]
	if !ok || id == "" || id == NoMatch {
		return "", false
	}
	return id, true
}

// Set stores an identifier, mapping empty to the NoMatch sentinel.
func (c CrossMatches) Set(name Name, id string) {
	if id == "" {
		id = NoMatch
	}
	c[name] = id
}
