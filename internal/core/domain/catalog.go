package domain

import (
	"fmt"
	"time"
)

// Catalog is the product list produced by one successful ingestion event.
// A catalog is replaced wholesale by the next load; it is never merged
// or mutated.
type Catalog struct {
	// ID uniquely identifies this load.
	ID string

	// Source is where the products were read from.
	Source SourceRef

	// Products in sheet order.
	Products []Product

	// Facets computed from the full product list at load time.
	Facets Facets

	// LoadedAt is when ingestion completed.
	LoadedAt time.Time
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Products)
}

// BrowseResult is what a catalog view renders for one set of criteria.
type BrowseResult struct {
	// Total is the size of the full catalog.
	Total int

	// Matched is the number of products passing the filter.
	Matched int

	// Products is the filtered list in catalog order.
	Products []Product

	// Groups partitions Products according to the grouping mode.
	Groups []Group

	// Mode is the grouping mode used.
	Mode GroupingMode
}

// Summary returns the "N of M products" line.
func (r *BrowseResult) Summary() string {
	return fmt.Sprintf("%d of %d products", r.Matched, r.Total)
}
