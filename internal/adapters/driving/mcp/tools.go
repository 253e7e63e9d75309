package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// DefaultLimit caps filter_products results when no limit is given.
const DefaultLimit = 50

// LoadInput is the input schema for the load_catalog tool.
type LoadInput struct {
	Source string `json:"source,omitempty" jsonschema:"file path, http(s) URL, github:owner/repo/path[@ref] or gdrive:<file-id>; defaults to the configured source"`
	Sheet  string `json:"sheet,omitempty" jsonschema:"worksheet name for Excel workbooks (default: first sheet)"`
	Table  string `json:"table,omitempty" jsonschema:"table name for SQLite databases (default: products)"`
}

// LoadOutput is the output schema for the load_catalog tool.
type LoadOutput struct {
	CatalogID string        `json:"catalog_id"`
	Source    string        `json:"source"`
	Products  int           `json:"products"`
	Facets    domain.Facets `json:"facets"`
}

// FilterInput is the input schema for the filter_products tool.
// Empty or "all" matches everything; values match as case-insensitive
// substrings.
type FilterInput struct {
	ProductType   string `json:"product_type,omitempty" jsonschema:"product type, e.g. Fertilizer"`
	CompanyName   string `json:"company_name,omitempty" jsonschema:"company name"`
	AvailableIn   string `json:"available_in,omitempty" jsonschema:"state where the product is sold"`
	SuitableCrops string `json:"suitable_crops,omitempty" jsonschema:"crop the product suits"`
	ProductName   string `json:"product_name,omitempty" jsonschema:"product name"`
	BrandName     string `json:"brand_name,omitempty" jsonschema:"brand name"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of products to return (default 50)"`
}

func (in FilterInput) criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		ProductType:   in.ProductType,
		CompanyName:   in.CompanyName,
		AvailableIn:   in.AvailableIn,
		SuitableCrops: in.SuitableCrops,
		ProductName:   in.ProductName,
		BrandName:     in.BrandName,
	}
}

// FilterOutput is the output schema for the filter_products tool.
type FilterOutput struct {
	Summary   string           `json:"summary"`
	Total     int              `json:"total"`
	Matched   int              `json:"matched"`
	Truncated bool             `json:"truncated,omitempty"`
	Products  []domain.Product `json:"products"`
}

// GroupInput is the input schema for the group_products tool.
type GroupInput struct {
	ProductType   string `json:"product_type,omitempty" jsonschema:"product type, e.g. Fertilizer"`
	CompanyName   string `json:"company_name,omitempty" jsonschema:"company name"`
	AvailableIn   string `json:"available_in,omitempty" jsonschema:"state where the product is sold"`
	SuitableCrops string `json:"suitable_crops,omitempty" jsonschema:"crop the product suits"`
	ProductName   string `json:"product_name,omitempty" jsonschema:"product name"`
	BrandName     string `json:"brand_name,omitempty" jsonschema:"brand name"`
	GroupBy       string `json:"group_by,omitempty" jsonschema:"none, type or company (default none)"`
}

func (in GroupInput) criteria() domain.FilterCriteria {
	return FilterInput{
		ProductType:   in.ProductType,
		CompanyName:   in.CompanyName,
		AvailableIn:   in.AvailableIn,
		SuitableCrops: in.SuitableCrops,
		ProductName:   in.ProductName,
		BrandName:     in.BrandName,
	}.criteria()
}

// GroupOutput is the output schema for the group_products tool.
type GroupOutput struct {
	Summary string         `json:"summary"`
	Mode    string         `json:"mode"`
	Groups  []GroupSummary `json:"groups"`
}

// GroupSummary is one group with its products reduced to identifying fields.
type GroupSummary struct {
	Label    string           `json:"label"`
	Count    int              `json:"count"`
	Products []ProductSummary `json:"products"`
}

// ProductSummary identifies a product within a group.
type ProductSummary struct {
	SNo         int    `json:"s_no"`
	ProductName string `json:"product_name"`
	CompanyName string `json:"company_name"`
}

// FacetsInput is the (empty) input schema for the list_facets tool.
type FacetsInput struct{}

// FacetsOutput is the output schema for the list_facets tool.
type FacetsOutput struct {
	Loaded       bool     `json:"loaded"`
	Companies    []string `json:"companies"`
	ProductTypes []string `json:"product_types"`
	States       []string `json:"states"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_catalog",
		Description: "Load a product catalog from a spreadsheet, SQLite file, URL, GitHub or Google Drive",
	}, s.handleLoad)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter_products",
		Description: "Filter the loaded catalog; every given field must match",
	}, s.handleFilter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "group_products",
		Description: "Filter the loaded catalog and group the result by product type or company",
	}, s.handleGroup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_facets",
		Description: "List the distinct companies, product types and states of the loaded catalog",
	}, s.handleFacets)
}

func (s *Server) handleLoad(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	ref, err := s.resolveSource(input)
	if err != nil {
		return nil, LoadOutput{}, err
	}

	catalog, err := s.ports.Catalog.Load(ctx, ref)
	if err != nil {
		return nil, LoadOutput{}, err
	}

	return nil, LoadOutput{
		CatalogID: catalog.ID,
		Source:    catalog.Source.String(),
		Products:  catalog.Len(),
		Facets:    catalog.Facets,
	}, nil
}

// resolveSource falls back to the configured default source.
func (s *Server) resolveSource(input LoadInput) (domain.SourceRef, error) {
	if input.Source != "" {
		ref, err := domain.ParseSourceRef(input.Source)
		if err != nil {
			return domain.SourceRef{}, err
		}
		ref.Sheet, ref.Table = input.Sheet, input.Table
		return ref, nil
	}

	if s.ports.Settings == nil {
		return domain.SourceRef{}, ErrNoDefaultSource
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return domain.SourceRef{}, fmt.Errorf("getting settings: %w", err)
	}
	if settings.Catalog.Source == "" {
		return domain.SourceRef{}, ErrNoDefaultSource
	}
	ref, err := settings.SourceRef()
	if err != nil {
		return domain.SourceRef{}, err
	}
	if input.Sheet != "" {
		ref.Sheet = input.Sheet
	}
	if input.Table != "" {
		ref.Table = input.Table
	}
	return ref, nil
}

func (s *Server) handleFilter(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FilterInput,
) (*mcp.CallToolResult, FilterOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result, err := s.ports.Catalog.Browse(input.criteria(), domain.GroupNone)
	if err != nil {
		return nil, FilterOutput{}, browseError(err)
	}

	products := result.Products
	truncated := len(products) > limit
	if truncated {
		products = products[:limit]
	}

	return nil, FilterOutput{
		Summary:   result.Summary(),
		Total:     result.Total,
		Matched:   result.Matched,
		Truncated: truncated,
		Products:  products,
	}, nil
}

func (s *Server) handleGroup(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GroupInput,
) (*mcp.CallToolResult, GroupOutput, error) {
	mode, err := domain.ParseGroupingMode(input.GroupBy)
	if err != nil {
		return nil, GroupOutput{}, err
	}

	result, err := s.ports.Catalog.Browse(input.criteria(), mode)
	if err != nil {
		return nil, GroupOutput{}, browseError(err)
	}

	output := GroupOutput{
		Summary: result.Summary(),
		Mode:    result.Mode.String(),
		Groups:  make([]GroupSummary, len(result.Groups)),
	}
	for i, g := range result.Groups {
		summaries := make([]ProductSummary, len(g.Products))
		for j, p := range g.Products {
			summaries[j] = ProductSummary{SNo: p.SNo, ProductName: p.ProductName, CompanyName: p.CompanyName}
		}
		output.Groups[i] = GroupSummary{Label: g.Label(), Count: len(g.Products), Products: summaries}
	}

	return nil, output, nil
}

func (s *Server) handleFacets(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ FacetsInput,
) (*mcp.CallToolResult, FacetsOutput, error) {
	facets := s.ports.Catalog.Facets()
	return nil, FacetsOutput{
		Loaded:       s.ports.Catalog.Current() != nil,
		Companies:    orEmpty(facets.Companies),
		ProductTypes: orEmpty(facets.ProductTypes),
		States:       orEmpty(facets.States),
	}, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func browseError(err error) error {
	if errors.Is(err, domain.ErrNoCatalog) {
		return fmt.Errorf("%w: call load_catalog first", err)
	}
	return err
}
