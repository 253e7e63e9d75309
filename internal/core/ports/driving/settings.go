package driving

import (
	"time"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDefaultSource stores the source used when none is given.
	SetDefaultSource(source, sheet, table string) error

	// SetGrouping updates the default grouping mode.
	SetGrouping(mode domain.GroupingMode) error

	// SetLayout updates the default product layout.
	SetLayout(layout domain.Layout) error

	// SetWatch configures live reload.
	SetWatch(enabled bool, debounce time.Duration) error

	// Set stores one setting by config key (for example "display.layout"),
	// validating the value. Returns domain.ErrInvalidInput for unknown keys
	// or bad values.
	Set(key, value string) error

	// Keys lists every settable config key.
	Keys() []string

	// IsSecret reports whether a key holds a credential.
	IsSecret(key string) bool

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
