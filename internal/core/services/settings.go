package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCatalogSource     = "catalog.source"
	KeyCatalogSheet      = "catalog.sheet"
	KeyCatalogTable      = "catalog.table"
	KeyDisplayGrouping   = "display.grouping"
	KeyDisplayLayout     = "display.layout"
	KeyWatchEnabled      = "watch.enabled"
	KeyWatchDebounceMS   = "watch.debounce_ms"
	KeyGitHubToken       = "github.token"
	KeyGoogleAPIKey      = "google.api_key"
	KeyGoogleAccessToken = "google.access_token"
)

// Environment variables that override stored tokens.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvGitHubToken       = "GITHUB_TOKEN"
	EnvGoogleAPIKey      = "GOOGLE_API_KEY"
	EnvGoogleAccessToken = "GOOGLE_ACCESS_TOKEN"
)

// SecretKeys lists the keys whose values must not be echoed.
func SecretKeys() []string {
	return []string{KeyGitHubToken, KeyGoogleAPIKey, KeyGoogleAccessToken}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Stored values that fail to parse fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Source: s.configStore.GetString(KeyCatalogSource),
			Sheet:  s.configStore.GetString(KeyCatalogSheet),
			Table:  s.configStore.GetString(KeyCatalogTable),
		},
		Display: domain.DisplaySettings{
			Grouping: s.getGrouping(defaults.Display.Grouping),
			Layout:   s.getLayout(defaults.Display.Layout),
		},
		Watch: domain.WatchSettings{
			Enabled:  s.getBool(KeyWatchEnabled, defaults.Watch.Enabled),
			Debounce: s.getDuration(KeyWatchDebounceMS, defaults.Watch.Debounce),
		},
		Tokens: domain.TokenSettings{
			GitHubToken:       s.getSecret(KeyGitHubToken, EnvGitHubToken),
			GoogleAPIKey:      s.getSecret(KeyGoogleAPIKey, EnvGoogleAPIKey),
			GoogleAccessToken: s.getSecret(KeyGoogleAccessToken, EnvGoogleAccessToken),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Empty tokens are not written so that a stored token is never erased by
// a value that only came from the environment being unset.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyCatalogSource, settings.Catalog.Source},
		{KeyCatalogSheet, settings.Catalog.Sheet},
		{KeyCatalogTable, settings.Catalog.Table},
		{KeyDisplayGrouping, settings.Display.Grouping.String()},
		{KeyDisplayLayout, settings.Display.Layout.String()},
		{KeyWatchEnabled, settings.Watch.Enabled},
		{KeyWatchDebounceMS, int(settings.Watch.Debounce / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	tokens := []struct {
		key   string
		value string
	}{
		{KeyGitHubToken, settings.Tokens.GitHubToken},
		{KeyGoogleAPIKey, settings.Tokens.GoogleAPIKey},
		{KeyGoogleAccessToken, settings.Tokens.GoogleAccessToken},
	}
	for _, t := range tokens {
		if t.value == "" {
			continue
		}
		if err := s.configStore.Set(t.key, t.value); err != nil {
			return fmt.Errorf("save %s: %w", t.key, err)
		}
	}

	return nil
}

// SetDefaultSource stores the source used when none is given.
// The source must parse; sheet and table may be empty.
func (s *SettingsService) SetDefaultSource(source, sheet, table string) error {
	if _, err := domain.ParseSourceRef(source); err != nil {
		return err
	}

	for key, value := range map[string]string{
		KeyCatalogSource: source,
		KeyCatalogSheet:  sheet,
		KeyCatalogTable:  table,
	} {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetGrouping updates the default grouping mode.
func (s *SettingsService) SetGrouping(mode domain.GroupingMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: grouping mode %q", domain.ErrInvalidInput, mode)
	}
	if err := s.configStore.Set(KeyDisplayGrouping, mode.String()); err != nil {
		return fmt.Errorf("save grouping: %w", err)
	}
	return nil
}

// SetLayout updates the default product layout.
func (s *SettingsService) SetLayout(layout domain.Layout) error {
	if !layout.IsValid() {
		return fmt.Errorf("%w: layout %q", domain.ErrInvalidInput, layout)
	}
	if err := s.configStore.Set(KeyDisplayLayout, layout.String()); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// SetWatch configures live reload. A non-positive debounce keeps the default.
func (s *SettingsService) SetWatch(enabled bool, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounce
	}
	if err := s.configStore.Set(KeyWatchEnabled, enabled); err != nil {
		return fmt.Errorf("save watch enabled: %w", err)
	}
	if err := s.configStore.Set(KeyWatchDebounceMS, int(debounce/time.Millisecond)); err != nil {
		return fmt.Errorf("save watch debounce: %w", err)
	}
	return nil
}

// Set stores one setting by config key. An empty source clears the
// default source.
func (s *SettingsService) Set(key, value string) error {
	var stored any = value

	switch key {
	case KeyCatalogSource:
		if value != "" {
			if _, err := domain.ParseSourceRef(value); err != nil {
				return err
			}
		}
	case KeyCatalogSheet, KeyCatalogTable, KeyGitHubToken, KeyGoogleAPIKey, KeyGoogleAccessToken:
	case KeyDisplayGrouping:
		mode, err := domain.ParseGroupingMode(value)
		if err != nil {
			return err
		}
		stored = mode.String()
	case KeyDisplayLayout:
		layout, err := domain.ParseLayout(value)
		if err != nil {
			return err
		}
		stored = layout.String()
	case KeyWatchEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case KeyWatchDebounceMS:
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of milliseconds", domain.ErrInvalidInput, key)
		}
		stored = ms
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists every settable config key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyCatalogSource,
		KeyCatalogSheet,
		KeyCatalogTable,
		KeyDisplayGrouping,
		KeyDisplayLayout,
		KeyWatchEnabled,
		KeyWatchDebounceMS,
		KeyGitHubToken,
		KeyGoogleAPIKey,
		KeyGoogleAccessToken,
	}
}

// IsSecret reports whether key holds a credential.
func (s *SettingsService) IsSecret(key string) bool {
	return slices.Contains(SecretKeys(), key)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getGrouping(defaultVal domain.GroupingMode) domain.GroupingMode {
	val := s.configStore.GetString(KeyDisplayGrouping)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseGroupingMode(val)
	if err != nil {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getLayout(defaultVal domain.Layout) domain.Layout {
	val := s.configStore.GetString(KeyDisplayLayout)
	if val == "" {
		return defaultVal
	}
	layout, err := domain.ParseLayout(val)
	if err != nil {
		return defaultVal
	}
	return layout
}

// getSecret prefers the environment over the stored value.
func (s *SettingsService) getSecret(key, env string) string {
	if v := s.getenv(env); v != "" {
		return v
	}
	return s.configStore.GetString(key)
}
