package domain

import (
	"math"
	"strconv"
	"strings"
)

// Source column names, exactly as they appear in catalog spreadsheets.
const (
	ColumnSNo               = "S.No"
	ColumnCompanyName       = "Company Name"
	ColumnProductName       = "Product Name"
	ColumnBrandName         = "Brand Name"
	ColumnDescription       = "Description of the Product"
	ColumnProductType       = "Product Type"
	ColumnSubType           = "Sub-Type"
	ColumnAppliedSeasons    = "Applied Seasons"
	ColumnSuitableCrops     = "Suitable Crops"
	ColumnBenefits          = "Benefits"
	ColumnDosage            = "Dosage (Unit/acre)"
	ColumnApplicationMethod = "Application Method"
	ColumnPackSizes         = "Pack Sizes"
	ColumnPriceRange        = "Price Range"
	ColumnAvailableIn       = "Available In (States)"
	ColumnOrganicCertified  = "Organic/Certified"
	ColumnProductImageLink  = "Product Image Link"
	ColumnSourceURL         = "Source URL"
	ColumnNotes             = "Notes"
)

// Columns returns every recognised column name in display order.
func Columns() []string {
	return []string{
		ColumnSNo,
		ColumnCompanyName,
		ColumnProductName,
		ColumnBrandName,
		ColumnDescription,
		ColumnProductType,
		ColumnSubType,
		ColumnAppliedSeasons,
		ColumnSuitableCrops,
		ColumnBenefits,
		ColumnDosage,
		ColumnApplicationMethod,
		ColumnPackSizes,
		ColumnPriceRange,
		ColumnAvailableIn,
		ColumnOrganicCertified,
		ColumnProductImageLink,
		ColumnSourceURL,
		ColumnNotes,
	}
}

// Product is a single agricultural product listing.
// Products are values: once built they are never modified.
type Product struct {
	// SNo is the declared sequence number, or the 1-based row position
	// when the sheet does not declare one. Not guaranteed unique.
	SNo int `json:"sNo"`

	CompanyName       string `json:"companyName"`
	ProductName       string `json:"productName"`
	BrandName         string `json:"brandName"`
	Description       string `json:"description"`
	ProductType       string `json:"productType"`
	SubType           string `json:"subType"`
	AppliedSeasons    string `json:"appliedSeasons"`
	SuitableCrops     string `json:"suitableCrops"`
	Benefits          string `json:"benefits"`
	Dosage            string `json:"dosage"`
	ApplicationMethod string `json:"applicationMethod"`
	PackSizes         string `json:"packSizes"`
	PriceRange        string `json:"priceRange"`

	// AvailableIn is meant to be a comma-separated list of states.
	// It is kept as a single string; see States.
	AvailableIn string `json:"availableIn"`

	OrganicCertified string `json:"organicCertified"`
	ProductImageLink string `json:"productImageLink"`
	SourceURL        string `json:"sourceURL"`
	Notes            string `json:"notes"`
}

// ProductFromRow maps a raw row onto a Product using the fixed column table.
// position is the 1-based row position, used when S.No is absent, zero or
// not a number. Every other missing column yields "".
func ProductFromRow(row Row, position int) Product {
	return Product{
		SNo:               parseSNo(row.Get(ColumnSNo), position),
		CompanyName:       row.Get(ColumnCompanyName),
		ProductName:       row.Get(ColumnProductName),
		BrandName:         row.Get(ColumnBrandName),
		Description:       row.Get(ColumnDescription),
		ProductType:       row.Get(ColumnProductType),
		SubType:           row.Get(ColumnSubType),
		AppliedSeasons:    row.Get(ColumnAppliedSeasons),
		SuitableCrops:     row.Get(ColumnSuitableCrops),
		Benefits:          row.Get(ColumnBenefits),
		Dosage:            row.Get(ColumnDosage),
		ApplicationMethod: row.Get(ColumnApplicationMethod),
		PackSizes:         row.Get(ColumnPackSizes),
		PriceRange:        row.Get(ColumnPriceRange),
		AvailableIn:       row.Get(ColumnAvailableIn),
		OrganicCertified:  row.Get(ColumnOrganicCertified),
		ProductImageLink:  row.Get(ColumnProductImageLink),
		SourceURL:         row.Get(ColumnSourceURL),
		Notes:             row.Get(ColumnNotes),
	}
}

// ProductsFromRows maps rows in order, numbering positions from 1.
func ProductsFromRows(rows []Row) []Product {
	products := make([]Product, len(rows))
	for i := range rows {
		products[i] = ProductFromRow(rows[i], i+1)
	}
	return products
}

// parseSNo accepts integers and integral floats ("3.0" as written by
// spreadsheet exports). Zero counts as absent.
func parseSNo(raw string, position int) int {
	if raw == "" {
		return position
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n == 0 {
			return position
		}
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f == 0 || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return position
	}
	return int(f)
}

// Title returns the product name, or a placeholder when it is empty.
func (p Product) Title() string {
	if p.ProductName == "" {
		return "(Unnamed product)"
	}
	return p.ProductName
}

// IsOrganic reports whether the certification text mentions "organic".
func (p Product) IsOrganic() bool {
	return strings.Contains(strings.ToLower(p.OrganicCertified), "organic")
}

// States splits AvailableIn on commas, trimming each part and dropping
// empty parts. Order and duplicates are preserved.
func (p Product) States() []string {
	return SplitStates(p.AvailableIn)
}

// SplitStates splits a comma-separated region list.
func SplitStates(availableIn string) []string {
	if availableIn == "" {
		return nil
	}
	parts := strings.Split(availableIn, ",")
	states := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			states = append(states, s)
		}
	}
	return states
}
