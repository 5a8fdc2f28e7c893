// Package resolve orchestrates a resolution run: one identity lookup,
// one region query, then a sequential walk of the catalog schemas
// merging magnitudes first-writer-wins into a fresh vector.
//
// Catalogs are processed strictly in schema declaration order; the
// order is what makes first-writer-wins deterministic. Per-catalog
// failures degrade to warnings, and only configuration errors abort
// a run.
package resolve

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/table"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

// Run merges one target's photometry from pre-fetched inputs: the
// cross-match identifiers and the region query response. It is the
// pure core of a resolution run, free of any I/O.
//
// Per catalog, in priority order: a missing or sentinel cross-match
// raises a no-cross-match warning; an absent table or unsearchable
// rows raise a catalog-unavailable warning; otherwise the selected
// rows are extracted and merged. The returned error is non-nil only
// for configuration defects, which invalidate the whole run.
func Run(ctx context.Context, schemas *catalogs.Table, matches catalogs.CrossMatches, tables table.Set, rep warning.Reporter) (*photometry.Vector, error) {
	if rep == nil {
		rep = warning.Discard
	}
	log := logging.Ctx(ctx)

	vec := photometry.NewVector()
	for _, schema := range schemas.Schemas() {
		name := string(schema.Name)

		id, ok := matches.ID(schema.Name)
		if !ok {
			rep.Report(warning.NewNoCrossMatch(name))
			log.Debug().Str("catalog", name).Msg("no cross-match identifier, skipping")
			continue
		}

		tbl, ok := tables.Get(schema.VizierID)
		if !ok {
			rep.Report(warning.NewCatalogUnavailable(name, "table absent from region response"))
			log.Debug().Str("catalog", name).Str("table", schema.VizierID).
				Msg("table absent from region response, skipping")
			continue
		}

		sel, err := schema.Matcher.Select(tbl, id)
		if err != nil {
			rep.Report(warning.NewCatalogUnavailable(name, err.Error()))
			log.Debug().Str("catalog", name).Err(err).Msg("row selection failed, skipping")
			continue
		}

		before := vec.Len()
		if err := catalogs.Extract(schema, sel, vec, rep); err != nil {
			return nil, err
		}
		log.Debug().Str("catalog", name).Int("rows", sel.Len()).
			Int("merged", vec.Len()-before).Msg("catalog processed")
	}
	return vec, nil
}

// Resolver drives complete runs against live collaborators.
type Resolver struct {
	identity Identity
	querier  Querier
	schemas  *catalogs.Table
	radius   float64
	reporter warning.Reporter
	skipPhot bool
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithSchemas replaces the built-in catalog schema table.
func WithSchemas(t *catalogs.Table) Option {
	return func(r *Resolver) error {
		if t == nil {
			return errors.NewConfigError("resolver", "schema table cannot be nil", nil)
		}
		r.schemas = t
		return nil
	}
}

// WithRadius sets the search radius in arcseconds.
func WithRadius(arcsec float64) Option {
	return func(r *Resolver) error {
		if arcsec <= 0 {
			return errors.NewValidationError("radius", arcsec, "must be positive")
		}
		r.radius = arcsec
		return nil
	}
}

// WithReporter adds a live warning sink alongside the per-run record,
// typically a LogReporter.
func WithReporter(rep warning.Reporter) Option {
	return func(r *Resolver) error {
		r.reporter = rep
		return nil
	}
}

// WithPhotometryDisabled restricts runs to identity and stellar
// parameters, skipping the region query and merge entirely.
func WithPhotometryDisabled() Option {
	return func(r *Resolver) error {
		r.skipPhot = true
		return nil
	}
}

// New returns a Resolver using the built-in schemas and default radius.
func New(identity Identity, querier Querier, opts ...Option) (*Resolver, error) {
	if identity == nil {
		return nil, errors.NewConfigError("resolver", "identity service cannot be nil", nil)
	}
	if querier == nil {
		return nil, errors.NewConfigError("resolver", "query service cannot be nil", nil)
	}
	r := &Resolver{
		identity: identity,
		querier:  querier,
		schemas:  catalogs.Builtin(),
		radius:   constants.DefaultSearchRadiusArcsec,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Radius returns the configured search radius in arcseconds.
func (r *Resolver) Radius() float64 { return r.radius }

// Schemas returns the catalog schema table in use.
func (r *Resolver) Schemas() *catalogs.Table { return r.schemas }

// Resolve runs the full pipeline for one target: identity resolution,
// region query, then the sequential merge. Each run owns its vector
// and warning record; Resolve is safe for concurrent use as long as
// the collaborators are.
func (r *Resolver) Resolve(ctx context.Context, t target.Target) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithTarget(ctx, t.Name)
	log := logging.Ctx(ctx)

	rec := warning.NewRecorder()
	rep := warning.Tee(rec, r.reporter)

	ident, err := r.identity.Resolve(ctx, t, r.radius)
	if err != nil {
		return nil, err
	}
	for _, w := range ident.Warnings {
		rep.Report(w)
	}
	log.Info().Int64("source_id", ident.SourceID).Msg("target identified")

	vec := photometry.NewVector()
	if !r.skipPhot {
		tables, err := r.querier.QueryRegion(ctx, t.Position, r.radius)
		if err != nil {
			return nil, err
		}
		vec, err = Run(ctx, r.schemas, ident.CrossMatches, tables, rep)
		if err != nil {
			return nil, err
		}
		log.Info().Int("bands", vec.Len()).Int("warnings", rec.Len()).
			Msg("photometry merged")
	}

	return &Result{
		Target:      t.WithGaiaID(ident.SourceID),
		SourceID:    ident.SourceID,
		Params:      ident.Params,
		Vector:      vec,
		Photometry:  vec.Measurements(),
		Warnings:    rec.Warnings(),
		RetrievedAt: utc.Now(),
	}, nil
}
