package catalogs

import (
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/photometry"
)

// Column maps one pair of catalog columns, a magnitude and its
// uncertainty, to a registered filter band.
type Column struct {
	Mag  string
	Err  string
	Band photometry.Band
}

// Schema describes one survey catalog: where its table lives in the
// archive, how to select the matched row, and which column pairs feed
// which bands. Columns are processed in declaration order.
type Schema struct {
	Name     Name
	VizierID string
	Columns  []Column
	Matcher  Matcher
}

// Validate checks the schema against the band registry. A schema
// referencing an unregistered band is a configuration error that must
// abort the run rather than degrade it.
func (s Schema) Validate() error {
	if s.Name == "" {
		return errors.NewConfigError("schema", "catalog name cannot be empty", nil)
	}
	if s.VizierID == "" {
		return errors.NewConfigError("schema", "catalog "+string(s.Name)+" has no archive table key", nil)
	}
	if s.Matcher == nil {
		return errors.NewConfigError("schema", "catalog "+string(s.Name)+" has no row matcher", nil)
	}
	if len(s.Columns) == 0 {
		return errors.NewConfigError("schema", "catalog "+string(s.Name)+" maps no columns", nil)
	}
	for _, col := range s.Columns {
		if col.Mag == "" || col.Err == "" {
			return errors.NewConfigError("schema",
				"catalog "+string(s.Name)+" has an incomplete column pair", nil)
		}
		if !photometry.Valid(col.Band) {
			return errors.NewBandError(string(col.Band), string(s.Name))
		}
	}
	return nil
}

// Table is the ordered collection of catalog schemas. Declaration
// order is merge priority order.
type Table struct {
	schemas []Schema
	byName  map[Name]int
}

// NewTable validates the schemas and fixes their order.
func NewTable(schemas ...Schema) (*Table, error) {
	t := &Table{
		schemas: make([]Schema, 0, len(schemas)),
		byName:  make(map[Name]int, len(schemas)),
	}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.byName[s.Name]; dup {
			return nil, errors.NewConfigError("schema",
				"catalog "+string(s.Name)+" declared twice", nil)
		}
		t.byName[s.Name] = len(t.schemas)
		t.schemas = append(t.schemas, s)
	}
	return t, nil
}

// MustNewTable is NewTable for static schema declarations; it panics
// on validation failure.
func MustNewTable(schemas ...Schema) *Table {
	t, err := NewTable(schemas...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of schemas.
func (t *Table) Len() int { return len(t.schemas) }

// Schemas returns the schemas in priority order.
func (t *Table) Schemas() []Schema {
	out := make([]Schema, len(t.schemas))
	copy(out, t.schemas)
	return out
}

// Get returns the named schema.
func (t *Table) Get(name Name) (Schema, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Schema{}, false
	}
	return t.schemas[i], true
}

// Names returns the catalog names in priority order.
func (t *Table) Names() []Name {
	out := make([]Name, len(t.schemas))
	for i, s := range t.schemas {
		out[i] = s.Name
	}
	return out
}

// VizierIDs returns the archive table keys in priority order.
func (t *Table) VizierIDs() []string {
	out := make([]string, len(t.schemas))
	for i, s := range t.schemas {
		out[i] = s.VizierID
	}
	return out
}
