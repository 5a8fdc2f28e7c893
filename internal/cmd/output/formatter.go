// Package output provides formatters for command output.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heliobs/magpie/internal/cmd/constants"
	"github.com/heliobs/magpie/internal/cmd/table"
)

// Format names an output encoding.
type Format string

// The format strings are shared with flag parsing via the constants
// package so the CLI has a single list of spellings.
const (
	FormatTable Format = constants.FormatTable
	FormatWide  Format = constants.FormatWide
	FormatJSON  Format = constants.FormatJSON
	FormatYAML  Format = constants.FormatYAML
	FormatCSV   Format = constants.FormatCSV
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates the formatter for a format name.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// CSVFormatter flattens tabular data to comma-separated values.
type CSVFormatter struct{}

// Format writes data as CSV. Data values are written directly; structs
// and struct slices are flattened through the same conversion the table
// formatter uses.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	d, ok := data.(Data)
	if !ok {
		converted := convertToTableData(data)
		if converted == nil {
			return fmt.Errorf("csv output needs tabular data, got %T", data)
		}
		d = *converted
	}

	cw := csv.NewWriter(w)
	if len(d.Headers) > 0 {
		if err := cw.Write(d.Headers); err != nil {
			return err
		}
	}
	for _, row := range d.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format. Anything that cannot be
// flattened into rows falls back to indented JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return f.formatTable(w, v)
	default:
		if converted := convertToTableData(data); converted != nil {
			return f.formatTable(w, *converted)
		}
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

// twAligns translates column alignments to tablewriter's type.
var twAligns = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		aligns := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			if ta, ok := twAligns[a]; ok {
				aligns[i] = ta
			} else {
				aligns[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: aligns}
		config.Row.Alignment = tw.CellAlignment{PerColumn: aligns}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		tbl.Header(anyRow(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := tbl.Append(anyRow(row)...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// anyRow widens a string row for tablewriter's variadic API.
func anyRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []table.Align // Optional: column alignment
}

// FromTable converts converter output to the formatter's Data type.
func FromTable(d table.Data) Data {
	return Data{
		Headers:         d.Headers,
		Rows:            d.Rows,
		ColumnAlignment: d.ColumnAlignment,
	}
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Tables for humans, JSON for pipes and redirects
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatWide, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: %s, %s, %s, %s, %s",
			s, FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatWide)
	}
}

// convertToTableData flattens struct slices and single structs into
// rows. Pointers are dereferenced first; anything else returns nil.
func convertToTableData(data any) *Data {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		return structRows(v)
	case v.Kind() == reflect.Struct:
		return kvRows(v)
	}
	return nil
}

// structRows converts a slice of structs to one row per element.
func structRows(v reflect.Value) *Data {
	elemType := v.Index(0).Type()

	headers := make([]string, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		headers = append(headers, fieldHeader(elemType.Field(i)))
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := make([]string, 0, elem.NumField())
		for j := 0; j < elem.NumField(); j++ {
			row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
		}
		rows = append(rows, row)
	}

	return &Data{Headers: headers, Rows: rows}
}

// kvRows converts a single struct to a property/value listing.
func kvRows(v reflect.Value) *Data {
	elemType := v.Type()

	rows := make([][]string, 0, elemType.NumField())
	for i := 0; i < elemType.NumField(); i++ {
		rows = append(rows, []string{
			fieldHeader(elemType.Field(i)),
			fmt.Sprintf("%v", v.Field(i).Interface()),
		})
	}

	return &Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// fieldHeader derives a display header from a struct field, preferring
// the json tag over the Go field name.
func fieldHeader(field reflect.StructField) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return field.Name
	}
	if idx := strings.Index(jsonTag, ","); idx > 0 {
		jsonTag = jsonTag[:idx]
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(jsonTag, "_", " "))
}
