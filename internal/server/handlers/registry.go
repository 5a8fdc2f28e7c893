package handlers

import (
	"net/http"

	"github.com/heliobs/magpie/internal/server/response"
	"github.com/heliobs/magpie/pkg/photometry"
)

// bandEntry is one registry slot in the bands listing.
type bandEntry struct {
	Index int    `json:"index"`
	Band  string `json:"band"`
}

// HandleBands handles GET /api/v1/bands.
// @Summary List filter bands
// @Description List the registered filter bands in vector order
// @Tags registry
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/bands [get].
func (h *Handlers) HandleBands(w http.ResponseWriter, _ *http.Request) {
	bands := photometry.Bands()
	entries := make([]bandEntry, len(bands))
	for i, b := range bands {
		entries[i] = bandEntry{Index: i, Band: string(b)}
	}

	response.OK(w, map[string]any{
		"count": len(entries),
		"bands": entries,
	})
}

// catalogColumn is one magnitude column mapping in a catalog listing.
type catalogColumn struct {
	Mag  string `json:"mag"`
	Err  string `json:"err"`
	Band string `json:"band"`
}

// catalogEntry describes one survey catalog in priority order.
type catalogEntry struct {
	Priority int             `json:"priority"`
	Name     string          `json:"name"`
	VizierID string          `json:"vizier_id"`
	Matcher  string          `json:"matcher"`
	Columns  []catalogColumn `json:"columns"`
}

// HandleCatalogs handles GET /api/v1/catalogs.
// @Summary List survey catalogs
// @Description List the supported catalogs in merge priority order with their column mappings
// @Tags registry
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /api/v1/catalogs [get].
func (h *Handlers) HandleCatalogs(w http.ResponseWriter, _ *http.Request) {
	schemas := h.schemas.Schemas()
	entries := make([]catalogEntry, len(schemas))
	for i, s := range schemas {
		cols := make([]catalogColumn, len(s.Columns))
		for j, c := range s.Columns {
			cols[j] = catalogColumn{Mag: c.Mag, Err: c.Err, Band: string(c.Band)}
		}
		entries[i] = catalogEntry{
			Priority: i,
			Name:     string(s.Name),
			VizierID: s.VizierID,
			Matcher:  s.Matcher.String(),
			Columns:  cols,
		}
	}

	response.OK(w, map[string]any{
		"count":    len(entries),
		"catalogs": entries,
	})
}
