// Package tui provides an interactive terminal user interface for browsing
// product catalogs. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Catalog loads and browses catalogs.
	Catalog driving.CatalogService

	// Settings supplies display defaults. Optional.
	Settings driving.SettingsService

	// Watch reloads file catalogs on change. Optional.
	Watch driving.WatchService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	catalog driving.CatalogService,
	settings driving.SettingsService,
	watch driving.WatchService,
) *Ports {
	return &Ports{
		Catalog:  catalog,
		Settings: settings,
		Watch:    watch,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
