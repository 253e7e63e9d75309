package driving

import (
	"context"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// WatchService reloads a catalog whenever its source file changes.
type WatchService interface {
	// Watch blocks until ctx is cancelled, calling onReload after every
	// reload attempt with the new catalog or the load error.
	// Only file sources can be watched; others return
	// domain.ErrUnsupportedType.
	Watch(ctx context.Context, ref domain.SourceRef, onReload func(*domain.Catalog, error)) error
}
