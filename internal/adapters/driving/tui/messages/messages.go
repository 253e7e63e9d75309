// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"strings"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewLoad asks for a catalog source.
	ViewLoad
	// ViewCatalog is the filter panel and product list.
	ViewCatalog
	// ViewDetail shows a single product card.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewLoad:
		return "load"
	case ViewCatalog:
		return "catalog"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CatalogLoaded carries the outcome of an explicit load.
type CatalogLoaded struct {
	Ref     domain.SourceRef
	Catalog *domain.Catalog
	Err     error
}

// CatalogReloaded carries the outcome of a live reload.
type CatalogReloaded struct {
	Catalog *domain.Catalog
	Err     error
}

// ProductSelected is sent when a product is opened from the list.
type ProductSelected struct {
	Product domain.Product
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LoadFailed formats a load error as the single "Load failed: ..." notice.
func LoadFailed(err error) string {
	if err == nil {
		return ""
	}
	reason := strings.TrimPrefix(err.Error(), domain.ErrLoadFailed.Error()+": ")
	return "Load failed: " + reason
}
