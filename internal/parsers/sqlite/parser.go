// Package sqlite reads a catalog table out of a SQLite database file.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation, so the
// binary needs no CGO for this format.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// DefaultTable is read when the source names no table.
const DefaultTable = "products"

// Ensure Parser implements the interface.
var _ driven.SheetParser = (*Parser)(nil)

// Parser handles SQLite database files.
type Parser struct{}

// New creates a new SQLite parser.
func New() *Parser {
	return &Parser{}
}

// SupportedMIMETypes returns the MIME types this parser handles.
func (p *Parser) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeSQLite}
}

// Parse selects every row of the catalog table. Column order follows the
// table definition and every value is rendered as text.
func (p *Parser) Parse(ctx context.Context, raw *domain.RawSheet) ([]domain.Row, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	path := raw.Path
	if path == "" {
		tmp, err := spill(raw.Content)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)
		path = tmp
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	table := raw.Source.Table
	if table == "" {
		table = DefaultTable
	}

	rs, err := db.QueryContext(ctx, "SELECT * FROM "+QuoteIdentifier(table))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: query table %q: %w", domain.ErrInvalidInput, table, err)
	}
	defer rs.Close()

	header, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: table %q has no columns", domain.ErrEmptySheet, table)
	}

	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var rows []domain.Row
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = Text(v)
		}
		row := domain.NewRow(header, record)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	logger.Debug("Parsed %d rows from %s (table %q)", len(rows), raw.Name, table)
	return rows, nil
}

// QuoteIdentifier quotes a table name for SQL, doubling embedded quotes.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Text renders a scanned SQLite value as cell text. NULL is "".
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// dsn opens the file read-only and refuses writes on the connection.
func dsn(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String() + "?mode=ro&_pragma=query_only(1)"
}

// spill writes in-memory content to a temp file SQLite can open.
func spill(content []byte) (string, error) {
	f, err := os.CreateTemp("", "agricatalog-*.db")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return f.Name(), nil
}
