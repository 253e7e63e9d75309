package driving

import (
	"context"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// CatalogService loads catalogs and answers browse queries against the
// most recently loaded one.
type CatalogService interface {
	// Load fetches and parses a source and makes it the current catalog.
	// On failure the error wraps domain.ErrLoadFailed and the previous
	// catalog stays current.
	Load(ctx context.Context, ref domain.SourceRef) (*domain.Catalog, error)

	// Current returns the current catalog, or nil before the first load.
	Current() *domain.Catalog

	// Browse filters and groups the current catalog.
	// Returns domain.ErrNoCatalog when nothing has been loaded.
	Browse(criteria domain.FilterCriteria, mode domain.GroupingMode) (*domain.BrowseResult, error)

	// Facets returns the facets of the current catalog.
	Facets() domain.Facets

	// Clear drops the current catalog.
	Clear()
}
