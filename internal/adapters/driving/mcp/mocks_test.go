package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/engine"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
// Browse runs the real engine over the held catalog.
type mockCatalogService struct {
	catalog *domain.Catalog
	loadErr error
	loaded  []domain.SourceRef
}

func (m *mockCatalogService) Load(_ context.Context, ref domain.SourceRef) (*domain.Catalog, error) {
	m.loaded = append(m.loaded, ref)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.catalog == nil {
		m.catalog = &domain.Catalog{ID: "cat-1"}
	}
	m.catalog.Source = ref
	return m.catalog, nil
}

func (m *mockCatalogService) Current() *domain.Catalog {
	return m.catalog
}

func (m *mockCatalogService) Browse(
	criteria domain.FilterCriteria, mode domain.GroupingMode,
) (*domain.BrowseResult, error) {
	if m.catalog == nil {
		return nil, domain.ErrNoCatalog
	}
	filtered := engine.FilterProducts(m.catalog.Products, criteria)
	return &domain.BrowseResult{
		Total:    len(m.catalog.Products),
		Matched:  len(filtered),
		Products: filtered,
		Groups:   engine.GroupProducts(filtered, mode),
		Mode:     mode,
	}, nil
}

func (m *mockCatalogService) Facets() domain.Facets {
	if m.catalog == nil {
		return domain.Facets{}
	}
	return m.catalog.Facets
}

func (m *mockCatalogService) Clear() {
	m.catalog = nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return m.err
}

func (m *mockSettingsService) SetDefaultSource(source, sheet, table string) error {
	m.settings.Catalog = domain.CatalogSettings{Source: source, Sheet: sheet, Table: table}
	return m.err
}

func (m *mockSettingsService) SetGrouping(mode domain.GroupingMode) error {
	m.settings.Display.Grouping = mode
	return m.err
}

func (m *mockSettingsService) SetLayout(layout domain.Layout) error {
	m.settings.Display.Layout = layout
	return m.err
}

func (m *mockSettingsService) SetWatch(enabled bool, debounce time.Duration) error {
	m.settings.Watch = domain.WatchSettings{Enabled: enabled, Debounce: debounce}
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) IsSecret(_ string) bool { return false }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func sampleCatalog() *domain.Catalog {
	products := []domain.Product{
		{SNo: 1, CompanyName: "AgroCo", ProductName: "Neem Oil", ProductType: "Pesticide", AvailableIn: "Kerala, Tamil Nadu"},
		{SNo: 2, CompanyName: "BioFarm", ProductName: "Compost", ProductType: "Fertilizer", AvailableIn: "Punjab"},
		{SNo: 3, CompanyName: "AgroCo", ProductName: "Urea Plus", ProductType: "Fertilizer", AvailableIn: "Kerala"},
	}
	return &domain.Catalog{
		ID:       "cat-1",
		Products: products,
		Facets:   engine.ExtractFacets(products),
	}
}
