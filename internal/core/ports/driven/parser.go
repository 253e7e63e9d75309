package driven

import (
	"context"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// SheetParser turns raw tabular content into rows.
// Each parser handles specific MIME types (CSV, XLSX, SQLite).
type SheetParser interface {
	// SupportedMIMETypes returns the MIME types this parser handles.
	SupportedMIMETypes() []string

	// Parse reads every data row in sheet order. The header row is
	// consumed, not returned. Rows with no content are skipped.
	// Returns domain.ErrEmptySheet when there is no header.
	Parse(ctx context.Context, raw *domain.RawSheet) ([]domain.Row, error)
}

// ParserRegistry selects a parser for a MIME type.
type ParserRegistry interface {
	// Register adds a parser for all of its MIME types.
	Register(p SheetParser)

	// Get returns the parser for a MIME type.
	// Returns domain.ErrUnsupportedType when none is registered.
	Get(mimeType string) (SheetParser, error)

	// SupportedTypes lists registered MIME types.
	SupportedTypes() []string
}
