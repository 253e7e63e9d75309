// Package csv parses comma and tab separated catalog sheets.
package csv

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure Parser implements the interface.
var _ driven.SheetParser = (*Parser)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ctxCheckInterval is how many records are decoded between context checks.
const ctxCheckInterval = 1024

// record lists the catalog columns csvutil maps by header name. Catalog
// cells in the returned rows come from this struct; any other named
// column is copied from the raw record.
type record struct {
	SNo               string `csv:"S.No"`
	CompanyName       string `csv:"Company Name"`
	ProductName       string `csv:"Product Name"`
	BrandName         string `csv:"Brand Name"`
	Description       string `csv:"Description of the Product"`
	ProductType       string `csv:"Product Type"`
	SubType           string `csv:"Sub-Type"`
	AppliedSeasons    string `csv:"Applied Seasons"`
	SuitableCrops     string `csv:"Suitable Crops"`
	Benefits          string `csv:"Benefits"`
	Dosage            string `csv:"Dosage (Unit/acre)"`
	ApplicationMethod string `csv:"Application Method"`
	PackSizes         string `csv:"Pack Sizes"`
	PriceRange        string `csv:"Price Range"`
	AvailableIn       string `csv:"Available In (States)"`
	OrganicCertified  string `csv:"Organic/Certified"`
	ProductImageLink  string `csv:"Product Image Link"`
	SourceURL         string `csv:"Source URL"`
	Notes             string `csv:"Notes"`
}

// value returns the decoded cell for a catalog column. ok is false for
// columns csvutil does not map.
func (r *record) value(column string) (v string, ok bool) {
	switch column {
	case domain.ColumnSNo:
		return r.SNo, true
	case domain.ColumnCompanyName:
		return r.CompanyName, true
	case domain.ColumnProductName:
		return r.ProductName, true
	case domain.ColumnBrandName:
		return r.BrandName, true
	case domain.ColumnDescription:
		return r.Description, true
	case domain.ColumnProductType:
		return r.ProductType, true
	case domain.ColumnSubType:
		return r.SubType, true
	case domain.ColumnAppliedSeasons:
		return r.AppliedSeasons, true
	case domain.ColumnSuitableCrops:
		return r.SuitableCrops, true
	case domain.ColumnBenefits:
		return r.Benefits, true
	case domain.ColumnDosage:
		return r.Dosage, true
	case domain.ColumnApplicationMethod:
		return r.ApplicationMethod, true
	case domain.ColumnPackSizes:
		return r.PackSizes, true
	case domain.ColumnPriceRange:
		return r.PriceRange, true
	case domain.ColumnAvailableIn:
		return r.AvailableIn, true
	case domain.ColumnOrganicCertified:
		return r.OrganicCertified, true
	case domain.ColumnProductImageLink:
		return r.ProductImageLink, true
	case domain.ColumnSourceURL:
		return r.SourceURL, true
	case domain.ColumnNotes:
		return r.Notes, true
	}
	return "", false
}

// Parser handles CSV and TSV sheets.
type Parser struct{}

// New creates a new CSV parser.
func New() *Parser {
	return &Parser{}
}

// SupportedMIMETypes returns the MIME types this parser handles.
func (p *Parser) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeCSV, domain.MIMETypeTSV}
}

// Parse decodes the header row and every non-blank record after it.
func (p *Parser) Parse(ctx context.Context, raw *domain.RawSheet) ([]domain.Row, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r := stdcsv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw.Content, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if domain.NormaliseMIMEType(raw.MIMEType) == domain.MIMETypeTSV {
		r.Comma = '\t'
	}
	fr := &fitReader{r: r}

	dec, err := csvutil.NewDecoder(fr)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptySheet, raw.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrInvalidInput, err)
	}
	if len(domain.NewRow(fr.header, nil).Columns) == 0 {
		return nil, fmt.Errorf("%w: %s has a blank header row", domain.ErrEmptySheet, raw.Name)
	}

	var (
		rows  []domain.Row
		extra map[int]bool
	)
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var rec record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		if extra == nil {
			unused := dec.Unused()
			logUnused(raw.Name, fr.header, unused)
			extra = make(map[int]bool, len(unused))
			for _, i := range unused {
				extra[i] = true
			}
		}

		row := buildRow(fr.names, &rec, dec.Record(), extra)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}

	logger.Debug("Parsed %d rows from %s", len(rows), raw.Name)
	return rows, nil
}

// buildRow assembles a row in sheet column order. Catalog columns take
// their value from the decoded record and the columns csvutil left unused
// take theirs from the raw record. Blank and repeated header names, which
// uniqueHeader marked, are skipped.
func buildRow(names []string, rec *record, raw []string, extra map[int]bool) domain.Row {
	row := domain.Row{
		Columns: make([]string, 0, len(names)),
		Values:  make(map[string]string, len(names)),
	}
	for i, name := range names {
		if isPlaceholder(name) {
			continue
		}
		var v string
		if extra[i] {
			if i < len(raw) {
				v = raw[i]
			}
		} else if decoded, ok := rec.value(name); ok {
			v = decoded
		} else {
			continue
		}
		row.Columns = append(row.Columns, name)
		row.Values[name] = v
	}
	return row
}

// logUnused reports named header columns that are not catalog columns.
func logUnused(name string, header []string, unused []int) {
	cols := make([]string, 0, len(unused))
	for _, i := range unused {
		if col := strings.TrimSpace(header[i]); col != "" {
			cols = append(cols, strconv.Quote(col))
		}
	}
	if len(cols) > 0 {
		logger.Debug("%s: ignoring columns %s", name, strings.Join(cols, ", "))
	}
}

// fitReader adapts a lenient csv.Reader to csvutil. The header it hands
// on is trimmed and made unique, and every later record is padded or cut
// to the header width. The untouched header is kept for logging.
type fitReader struct {
	r      *stdcsv.Reader
	header []string
	names  []string
}

func (f *fitReader) Read() ([]string, error) {
	rec, err := f.r.Read()
	if err != nil {
		return nil, err
	}
	if f.header == nil {
		f.header = append([]string(nil), rec...)
		f.names = uniqueHeader(rec)
		return f.names, nil
	}
	switch width := len(f.header); {
	case len(rec) < width:
		rec = append(rec, make([]string, width-len(rec))...)
	case len(rec) > width:
		rec = rec[:width]
	}
	return rec, nil
}

const placeholderPrefix = "\x00col"

func isPlaceholder(name string) bool {
	return strings.HasPrefix(name, placeholderPrefix)
}

// uniqueHeader trims names and renames blanks and repeats so csvutil
// accepts the header. The first occurrence of a name keeps it.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			name = fmt.Sprintf("%s%d", placeholderPrefix, i)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
