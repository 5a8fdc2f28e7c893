package table

import (
	"strconv"
	"strings"

	"github.com/heliobs/magpie/internal/cmd/emoji"
	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/photometry"
)

// BandsToTableData converts the filter band registry to table format.
// Each row shows the vector slot index, the band identifier, and the
// catalogs whose schemas can supply the band.
func BandsToTableData(bands []photometry.Band, schemas *catalogs.Table) Data {
	suppliers := supplierIndex(schemas)

	rows := make([][]string, 0, len(bands))
	for i, band := range bands {
		catalogsCol := emoji.Empty
		if names := suppliers[band]; len(names) > 0 {
			catalogsCol = strings.Join(names, ", ")
		}
		rows = append(rows, []string{strconv.Itoa(i), string(band), catalogsCol})
	}

	return Data{
		Headers:         []string{"#", "BAND", "CATALOGS"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// supplierIndex inverts the schema table into band to catalog names,
// preserving priority order within each band.
func supplierIndex(schemas *catalogs.Table) map[photometry.Band][]string {
	index := make(map[photometry.Band][]string)
	if schemas == nil {
		return index
	}
	for _, s := range schemas.Schemas() {
		for _, col := range s.Columns {
			index[col.Band] = append(index[col.Band], string(s.Name))
		}
	}
	return index
}

// CatalogsToTableData converts the catalog schema table to table format.
// The wide view replaces the band count with the full band list.
func CatalogsToTableData(schemas []catalogs.Schema, wide bool) Data {
	headers := []string{"PRIORITY", "CATALOG", "TABLE", "MATCHER", "BANDS"}
	alignment := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft}

	rows := make([][]string, 0, len(schemas))
	for i, s := range schemas {
		bandsCol := strconv.Itoa(len(s.Columns))
		if wide {
			names := make([]string, len(s.Columns))
			for j, col := range s.Columns {
				names[j] = string(col.Band)
			}
			bandsCol = strings.Join(names, ", ")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(s.Name),
			s.VizierID,
			s.Matcher.String(),
			bandsCol,
		})
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}
