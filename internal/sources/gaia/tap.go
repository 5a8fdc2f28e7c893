package gaia

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/heliobs/magpie/pkg/errors"
)

// tapResponse is the FORMAT=json shape of a synchronous TAP query:
// column metadata plus row-major data. Cells stay raw until read so
// that 19-digit source identifiers keep full integer precision instead
// of passing through float64.
type tapResponse struct {
	Metadata []tapColumn         `json:"metadata"`
	Data     [][]json.RawMessage `json:"data"`
}

type tapColumn struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
}

// Rows is a decoded TAP result.
type Rows struct {
	index map[string]int
	data  [][]json.RawMessage
}

// ParseTAP decodes a TAP json response.
func ParseTAP(data []byte) (*Rows, error) {
	var resp tapResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.WrapParse("json", service, err)
	}

	index := make(map[string]int, len(resp.Metadata))
	for i, col := range resp.Metadata {
		index[col.Name] = i
	}
	return &Rows{index: index, data: resp.Data}, nil
}

// Len returns the number of rows.
func (r *Rows) Len() int { return len(r.data) }

// cell returns the raw cell, reporting false for absent columns,
// out-of-range rows and SQL nulls.
func (r *Rows) cell(row int, col string) (json.RawMessage, bool) {
	i, ok := r.index[col]
	if !ok || row < 0 || row >= len(r.data) || i >= len(r.data[row]) {
		return nil, false
	}
	raw := r.data[row][i]
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// Float reads a numeric cell. Masked cells report false.
func (r *Rows) Float(row int, col string) (float64, bool) {
	raw, ok := r.cell(row, col)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 reads an integer cell at full precision.
func (r *Rows) Int64(row int, col string) (int64, bool) {
	raw, ok := r.cell(row, col)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String reads a text cell. Numeric cells come back in their raw
// decimal form, which is how cross-match identifiers are compared.
func (r *Rows) String(row int, col string) (string, bool) {
	raw, ok := r.cell(row, col)
	if !ok {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}
