package domain

import (
	"fmt"
	"strings"
	"time"
)

// Layout selects how product cards are rendered.
type Layout string

// Available layouts.
const (
	// LayoutCard renders a multi-line card per product.
	LayoutCard Layout = "card"

	// LayoutCompact renders one line per product.
	LayoutCompact Layout = "compact"
)

// IsValid returns true if the layout is recognised.
func (l Layout) IsValid() bool {
	return l == LayoutCard || l == LayoutCompact
}

// String returns the string representation.
func (l Layout) String() string {
	return string(l)
}

// Toggle switches between card and compact.
func (l Layout) Toggle() Layout {
	if l == LayoutCompact {
		return LayoutCard
	}
	return LayoutCompact
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("%w: unknown layout %q (want card or compact)", ErrInvalidInput, s)
	}
	return l, nil
}

// DefaultWatchDebounce is the quiet period before a changed file is reloaded.
const DefaultWatchDebounce = 500 * time.Millisecond

// AppSettings holds persisted user preferences.
type AppSettings struct {
	Catalog CatalogSettings
	Display DisplaySettings
	Watch   WatchSettings
	Tokens  TokenSettings
}

// CatalogSettings configures the default catalog source.
type CatalogSettings struct {
	// Source is a source string accepted by ParseSourceRef.
	Source string

	// Sheet is the default worksheet for workbook sources.
	Sheet string

	// Table is the default table for SQLite sources.
	Table string
}

// DisplaySettings configures rendering defaults.
type DisplaySettings struct {
	Grouping GroupingMode
	Layout   Layout
}

// WatchSettings configures live reload of file sources.
type WatchSettings struct {
	Enabled  bool
	Debounce time.Duration
}

// TokenSettings holds credentials for remote connectors.
// Environment variables take precedence over stored values.
type TokenSettings struct {
	GitHubToken       string
	GoogleAPIKey      string
	GoogleAccessToken string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Display: DisplaySettings{
			Grouping: GroupNone,
			Layout:   LayoutCard,
		},
		Watch: WatchSettings{
			Debounce: DefaultWatchDebounce,
		},
	}
}

// SourceRef resolves the default source with the configured sheet and table.
func (s AppSettings) SourceRef() (SourceRef, error) {
	ref, err := ParseSourceRef(s.Catalog.Source)
	if err != nil {
		return SourceRef{}, err
	}
	ref.Sheet = s.Catalog.Sheet
	ref.Table = s.Catalog.Table
	return ref, nil
}
