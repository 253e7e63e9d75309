package domain

import "strings"

// Row is one spreadsheet row: an ordered mapping of column name to cell text.
// Parsers produce rows; ProductFromRow consumes them.
type Row struct {
	// Columns holds the column names in sheet order.
	Columns []string

	// Values maps column name to raw cell text.
	Values map[string]string
}

// NewRow builds a row by zipping a header with a record.
// Cells beyond the header are dropped; missing cells are left absent.
// Header names are trimmed and blank ones skipped. When a header name
// repeats, the first occurrence wins.
func NewRow(header, record []string) Row {
	row := Row{
		Columns: make([]string, 0, len(header)),
		Values:  make(map[string]string, len(header)),
	}
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if _, dup := row.Values[col]; dup {
			continue
		}
		row.Columns = append(row.Columns, col)
		if i < len(record) {
			row.Values[col] = record[i]
		} else {
			row.Values[col] = ""
		}
	}
	return row
}

// Get returns the trimmed value of a column, or "" when the column is absent.
func (r Row) Get(column string) string {
	if r.Values == nil {
		return ""
	}
	return strings.TrimSpace(r.Values[column])
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
