package vizier

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/table"
)

// The asu-tsv response interleaves # metadata with one block per
// table. A block is announced by "#Table", named by the "#Name:" line
// that follows, and carries a column header line, a units line, a
// dashes rule, then tab-separated rows until a blank line. Empty cells
// are masked values.
const (
	stateIdle = iota
	stateHeader
	stateUnits
	stateDashes
	stateData
)

// maxLineBytes bounds a single response line. Wide catalogs like
// SDSS12 produce rows well past bufio's default.
const maxLineBytes = 4 * 1024 * 1024

// ParseTSV parses a VizieR asu-tsv response into tables keyed by their
// full catalog name, e.g. "II/336/apass9".
func ParseTSV(data []byte) (table.Set, error) {
	set := table.Set{}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		state   = stateIdle
		name    string
		tbl     *table.Table
		lineNum int
	)

	flush := func() {
		if tbl != nil && name != "" {
			set.Add(name, tbl)
		}
		tbl = nil
		name = ""
		state = stateIdle
	}

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")

		switch {
		case strings.HasPrefix(line, "#Table"):
			flush()
			state = stateHeader

		case strings.HasPrefix(line, "#Name:"):
			if state == stateHeader && name == "" {
				name = strings.TrimSpace(strings.TrimPrefix(line, "#Name:"))
			}

		case strings.HasPrefix(line, "#"):
			// resource titles, column descriptions, INFO lines

		case strings.TrimSpace(line) == "":
			flush()

		default:
			switch state {
			case stateIdle:
				// data outside any announced table, ignore

			case stateHeader:
				if name == "" {
					return nil, &errors.ParseError{
						Format:  "tsv",
						Source:  "vizier",
						Line:    lineNum,
						Message: "table block without a #Name line",
					}
				}
				cols := strings.Split(line, "\t")
				for i := range cols {
					cols[i] = strings.TrimSpace(cols[i])
				}
				tbl = table.New(name, cols...)
				state = stateUnits

			case stateUnits:
				state = stateDashes

			case stateDashes:
				if !strings.HasPrefix(line, "-") {
					return nil, &errors.ParseError{
						Format:  "tsv",
						Source:  name,
						Line:    lineNum,
						Message: "expected dashes rule after units line",
					}
				}
				state = stateData

			case stateData:
				cells := strings.Split(line, "\t")
				if err := tbl.AppendRow(cells...); err != nil {
					return nil, &errors.ParseError{
						Format:  "tsv",
						Source:  name,
						Line:    lineNum,
						Message: fmt.Sprintf("row has %d cells, header has %d columns", len(cells), tbl.NumColumns()),
						Err:     err,
					}
				}
			}
		}
	}
	flush()

	if err := sc.Err(); err != nil {
		return nil, errors.WrapParse("tsv", "vizier", err)
	}
	return set, nil
}
