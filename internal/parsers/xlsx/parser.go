// Package xlsx parses Excel workbooks with excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure Parser implements the interface.
var _ driven.SheetParser = (*Parser)(nil)

// Parser handles .xlsx and .xlsm workbooks.
type Parser struct{}

// New creates a new workbook parser.
func New() *Parser {
	return &Parser{}
}

// SupportedMIMETypes returns the MIME types this parser handles.
func (p *Parser) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeXLSX, domain.MIMETypeXLSM}
}

// Parse reads one worksheet: SourceRef.Sheet when set, otherwise the
// first. The first non-empty row is the header.
func (p *Parser) Parse(ctx context.Context, raw *domain.RawSheet) ([]domain.Row, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheet, err := pickSheet(f, raw.Source.Sheet)
	if err != nil {
		return nil, err
	}

	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", domain.ErrInvalidInput, sheet, err)
	}
	defer func() { _ = iter.Close() }()

	var (
		header []string
		rows   []domain.Row
	)
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %w", domain.ErrInvalidInput, sheet, err)
		}
		if header == nil {
			if isEmpty(cells) {
				continue
			}
			header = cells
			continue
		}
		row := domain.NewRow(header, cells)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", domain.ErrInvalidInput, sheet, err)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: sheet %q", domain.ErrEmptySheet, sheet)
	}

	logger.Debug("Parsed %d rows from %s (sheet %q)", len(rows), raw.Name, sheet)
	return rows, nil
}

// pickSheet resolves the requested sheet name, or the first sheet.
func pickSheet(f *excelize.File, want string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", domain.ErrEmptySheet)
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if strings.EqualFold(s, want) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: sheet %q not found (have %s)",
		domain.ErrNotFound, want, strings.Join(sheets, ", "))
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
