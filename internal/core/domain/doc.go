// Package domain defines the core business entities for agricatalog.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A single agricultural product listing
//   - Row: One raw spreadsheet row keyed by column name
//   - FilterCriteria: The conjunctive filter applied to a catalog
//   - GroupingMode: How filtered products are partitioned for display
//   - Catalog: The product list produced by one ingestion event
//   - SourceRef: Where a catalog is loaded from
//   - RawSheet: Opaque bytes fetched by a connector
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
