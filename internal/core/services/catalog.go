package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/engine"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService owns the current catalog and answers browse queries.
type CatalogService struct {
	connectors driven.ConnectorRegistry
	parsers    driven.ParserRegistry

	mu      sync.RWMutex
	current *domain.Catalog

	now func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(connectors driven.ConnectorRegistry, parsers driven.ParserRegistry) *CatalogService {
	return &CatalogService{
		connectors: connectors,
		parsers:    parsers,
		now:        time.Now,
	}
}

// Load fetches, parses and maps a source, then swaps it in as the current
// catalog. Any failure is reported as domain.ErrLoadFailed and leaves the
// previous catalog in place.
func (s *CatalogService) Load(ctx context.Context, ref domain.SourceRef) (*domain.Catalog, error) {
	logger.Section("Catalog Load")
	logger.Debug("Source: %s (%s)", ref.String(), ref.Kind)

	catalog, err := s.build(ctx, ref)
	if err != nil {
		logger.Warn("Load failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	s.mu.Lock()
	s.current = catalog
	s.mu.Unlock()

	logger.Info("Loaded catalog %s: %d products", catalog.ID, catalog.Len())
	return catalog, nil
}

func (s *CatalogService) build(ctx context.Context, ref domain.SourceRef) (*domain.Catalog, error) {
	connector, err := s.connectors.Get(ref)
	if err != nil {
		return nil, err
	}

	start := s.now()
	fetched := logger.Timer("fetch " + ref.Kind.String())
	raw, err := connector.Fetch(ctx, ref)
	fetched()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref.Kind, err)
	}
	logger.Debug("Fetched %q: %d bytes, type %q", raw.Name, len(raw.Content), raw.MIMEType)

	parser, err := s.parsers.Get(raw.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("select parser for %q: %w", raw.Name, err)
	}

	rows, err := parser.Parse(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw.Name, err)
	}
	logger.Debug("Parsed %d rows in %v", len(rows), s.now().Sub(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := domain.ProductsFromRows(rows)
	facets := engine.ExtractFacets(products)
	logger.Debug("Facets: %d companies, %d types, %d states",
		len(facets.Companies), len(facets.ProductTypes), len(facets.States))

	return &domain.Catalog{
		ID:       uuid.New().String(),
		Source:   ref,
		Products: products,
		Facets:   facets,
		LoadedAt: s.now(),
	}, nil
}

// Current returns the current catalog, or nil before the first load.
func (s *CatalogService) Current() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Browse filters and groups the current catalog.
func (s *CatalogService) Browse(
	criteria domain.FilterCriteria, mode domain.GroupingMode,
) (*domain.BrowseResult, error) {
	catalog := s.Current()
	if catalog == nil {
		return nil, domain.ErrNoCatalog
	}

	filtered := engine.FilterProducts(catalog.Products, criteria)
	logger.Debug("Browse: %d active filters, %d of %d products, grouping %s",
		criteria.ActiveCount(), len(filtered), catalog.Len(), mode)

	return &domain.BrowseResult{
		Total:    catalog.Len(),
		Matched:  len(filtered),
		Products: filtered,
		Groups:   engine.GroupProducts(filtered, mode),
		Mode:     mode,
	}, nil
}

// Facets returns the facets of the current catalog.
func (s *CatalogService) Facets() domain.Facets {
	catalog := s.Current()
	if catalog == nil {
		return domain.Facets{}
	}
	return catalog.Facets
}

// Clear drops the current catalog.
func (s *CatalogService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
