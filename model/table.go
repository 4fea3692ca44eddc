package model

import (
	"strings"
)

// Row is an ordered sequence of cell strings, left to right.
type Row []string

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r)
}

// Clone returns a copy of the row that shares no storage with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table is the reconstructed tabular content of one document: rows from all
// pages in page order, then top to bottom within a page.
type Table struct {
	Rows []Row
}

// NewTable creates an empty table.
func NewTable() Table {
	return Table{Rows: make([]Row, 0)}
}

// Append adds rows to the end of the table.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Concat appends every row of other, preserving order.
func (t *Table) Concat(other Table) {
	t.Rows = append(t.Rows, other.Rows...)
}

// RowCount returns the number of rows
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the widest row
func (t Table) ColCount() int {
	n := 0
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// GetText renders one line per row with cells separated by tabs.
// This is the blob embedded in chat prompts.
func (t Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(flatten(cell))
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format. The first row is used as
// the markdown header row; shorter rows are padded with empty cells.
func (t Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := t.ColCount()
	var sb strings.Builder

	writeRow := func(row Row) {
		for j := 0; j < cols; j++ {
			sb.WriteString("| ")
			if j < len(row) {
				sb.WriteString(strings.ReplaceAll(flatten(row[j]), "|", `\|`))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(t.Rows[0])

	// Separator
	for j := 0; j < cols; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for i := 1; i < len(t.Rows); i++ {
		writeRow(t.Rows[i])
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.ContainsAny(text, ",\"\n\r") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}
