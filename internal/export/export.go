// Package export builds the downloadable county tables and encodes them as
// CSV or as sheets of an XLSX workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownExport is returned for an export name that is not defined.
var ErrUnknownExport = errors.New("unknown export")

// Field is one named value of a row.
type Field struct {
	Name  string
	Value any
}

// Row is an ordered list of fields.
type Row []Field

// Table is a named export. Columns fixes the header even when Rows is
// empty; when unset, the first row's field names are used.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Header returns the column names written on the first line.
func (t Table) Header() []string {
	if len(t.Columns) > 0 {
		return t.Columns
	}
	if len(t.Rows) == 0 {
		return nil
	}
	names := make([]string, len(t.Rows[0]))
	for i, f := range t.Rows[0] {
		names[i] = f.Name
	}
	return names
}

// FileName returns the download name of the table.
func (t Table) FileName() string {
	return t.Name + ".csv"
}

// WriteCSV encodes t. Values are looked up by header name, so rows may omit
// or reorder fields. Lines are joined with "\n" and the last line has no
// terminator.
func WriteCSV(w io.Writer, t Table) error {
	header := t.Header()
	lines := make([]string, 0, len(t.Rows)+1)

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = escape(h)
	}
	lines = append(lines, strings.Join(cells, ","))

	for _, row := range t.Rows {
		for i, h := range header {
			cells[i] = escape(FormatValue(row.Get(h)))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write %s: %w", t.FileName(), err)
	}
	return nil
}

// EncodeRows renders rows as CSV text with the header taken from the first
// row.
func EncodeRows(rows []Row) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, Table{Rows: rows})
	return sb.String()
}

// Get returns the value of the named field, or nil.
func (r Row) Get(name string) any {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// FormatValue renders a cell. nil and non-finite numbers are empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// escape quotes s when it contains a quote, comma or newline, doubling any
// inner quotes.
func escape(s string) string {
	if !strings.ContainsAny(s, "\",\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
