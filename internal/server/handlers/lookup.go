package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/heliobs/magpie/internal/server/response"
	"github.com/heliobs/magpie/pkg/target"
)

// HandleLookup handles GET /api/v1/lookup.
// @Summary Resolve a target
// @Description Resolve one sky position against all supported survey catalogs
// @Tags lookup
// @Produce json
// @Param ra query number true "Right ascension in decimal degrees (ICRS)"
// @Param dec query number true "Declination in decimal degrees (ICRS)"
// @Param name query string false "Target label used in logs and results"
// @Param gaia_id query integer false "Known Gaia DR2 source identifier, skips cone-search discovery"
// @Success 200 {object} response.Response{data=resolve.Result}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 404 {object} response.Response{error=response.Error}
// @Failure 502 {object} response.Response{error=response.Error}
// @Router /api/v1/lookup [get].
func (h *Handlers) HandleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ra, err := parseFloat(q.Get("ra"), "ra")
	if err != nil {
		response.BadRequest(w, err.Error(), "ra must be decimal degrees in [0, 360)")
		return
	}
	dec, err := parseFloat(q.Get("dec"), "dec")
	if err != nil {
		response.BadRequest(w, err.Error(), "dec must be decimal degrees in [-90, 90]")
		return
	}

	name := q.Get("name")
	if name == "" {
		name = fmt.Sprintf("J%.5f%+.5f", ra, dec)
	}
	tgt := target.New(name, ra, dec)

	if raw := q.Get("gaia_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(w, "invalid gaia_id", "gaia_id must be a positive integer")
			return
		}
		tgt = tgt.WithGaiaID(id)
	}

	result, err := h.service.Resolve(r.Context(), tgt)
	if err != nil {
		h.logger.Warn().Err(err).Str("target", tgt.Name).Msg("Lookup failed")
		response.FromError(w, err)
		return
	}

	response.OK(w, result)
}

func parseFloat(raw, field string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", field, raw)
	}
	return v, nil
}
