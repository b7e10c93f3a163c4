package report

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/gorelate/internal/types"
)

// Columns returns the field names of records: the primary key first, then
// the remaining fields in lexical order.
func Columns(records []types.Record, pk string) []string {
	seen := make(map[string]bool)
	var rest []string
	hasPK := false
	for _, record := range records {
		for field := range record {
			if field == pk {
				hasPK = true
				continue
			}
			if !seen[field] {
				seen[field] = true
				rest = append(rest, field)
			}
		}
	}
	sort.Strings(rest)
	if hasPK {
		return append([]string{pk}, rest...)
	}
	return rest
}

func cell(v interface{}) string {
	s, ok := types.ValueString(v)
	if !ok {
		return ""
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

// printRecords prints records as an aligned text table, indented two spaces.
// Cells wider than MaxColumnWidth are truncated; headers never are.
func (r *Renderer) printRecords(records []types.Record, pk string) {
	columns := Columns(records, pk)
	if len(columns) == 0 {
		return
	}

	rows := make([][]string, len(records))
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for i, record := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = r.truncate(cell(record[col]))
			if w := runewidth.StringWidth(row[j]); w > widths[j] {
				widths[j] = w
			}
		}
		rows[i] = row
	}

	rule := make([]string, len(columns))
	for i := range columns {
		rule[i] = strings.Repeat("-", widths[i])
	}
	r.printf("  %s\n", r.paint(mutedStyle, joinCells(columns, widths)))
	r.printf("  %s\n", strings.Join(rule, "-+-"))
	for _, row := range rows {
		r.printf("  %s\n", joinCells(row, widths))
	}
}

// joinCells pads cells to their column widths and joins them. Trailing
// empty cells are dropped so a row never ends in a separator.
func joinCells(cells []string, widths []int) string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	padded := make([]string, n)
	for i := 0; i < n; i++ {
		padded[i] = runewidth.FillRight(cells[i], widths[i])
	}
	return strings.TrimRight(strings.Join(padded, " | "), " ")
}

func (r *Renderer) truncate(s string) string {
	if r.MaxColumnWidth <= 0 {
		return s
	}
	return runewidth.Truncate(s, r.MaxColumnWidth, "…")
}
