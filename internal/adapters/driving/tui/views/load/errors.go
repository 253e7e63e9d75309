package load

import "errors"

// Error definitions for the load view.
var (
	// ErrNoCatalogService indicates that no catalog service was provided.
	ErrNoCatalogService = errors.New("catalog service is required")
)
