package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService reloads file catalogs when they change on disk.
type WatchService struct {
	catalog driving.CatalogService
	watcher driven.FileWatcher
}

// NewWatchService creates a new watch service.
func NewWatchService(catalog driving.CatalogService, watcher driven.FileWatcher) *WatchService {
	return &WatchService{
		catalog: catalog,
		watcher: watcher,
	}
}

// Watch reloads ref on every change signal until ctx is cancelled.
func (s *WatchService) Watch(
	ctx context.Context, ref domain.SourceRef, onReload func(*domain.Catalog, error),
) error {
	if ref.Kind != domain.SourceFile {
		return fmt.Errorf("%w: only file sources can be watched, got %s", domain.ErrUnsupportedType, ref.Kind)
	}
	if s.watcher == nil {
		return fmt.Errorf("%w: no file watcher configured", domain.ErrUnsupportedType)
	}

	changes, err := s.watcher.Watch(ctx, ref.Location)
	if err != nil {
		return fmt.Errorf("watch %s: %w", ref.Location, err)
	}
	logger.Debug("Watching %s for changes", ref.Location)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("Change detected in %s, reloading", ref.Location)
			catalog, err := s.catalog.Load(ctx, ref)
			if onReload != nil {
				onReload(catalog, err)
			}
		}
	}
}
