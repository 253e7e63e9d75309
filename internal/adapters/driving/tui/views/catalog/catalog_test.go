package catalog

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/engine"
)

// mockCatalogService runs the real engine over a fixed catalog.
type mockCatalogService struct {
	catalog   *domain.Catalog
	browseErr error
}

func (m *mockCatalogService) Load(context.Context, domain.SourceRef) (*domain.Catalog, error) {
	return m.catalog, nil
}

func (m *mockCatalogService) Current() *domain.Catalog { return m.catalog }

func (m *mockCatalogService) Browse(
	criteria domain.FilterCriteria, mode domain.GroupingMode,
) (*domain.BrowseResult, error) {
	if m.browseErr != nil {
		return nil, m.browseErr
	}
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
	return engine.ExtractFacets(m.catalog.Products)
}

func (m *mockCatalogService) Clear() { m.catalog = nil }

func sampleCatalog() *domain.Catalog {
	return &domain.Catalog{
		ID:     "cat-1",
		Source: domain.SourceRef{Kind: domain.SourceFile, Location: "products.csv"},
		Products: []domain.Product{
			{SNo: 1, ProductName: "Shield 50", CompanyName: "AgroCo", ProductType: "Pesticide",
				SuitableCrops: "Cotton, Rice", AvailableIn: "Punjab, Haryana"},
			{SNo: 2, ProductName: "Bio NPK", CompanyName: "BioFarm", ProductType: "Fertilizer",
				SuitableCrops: "Wheat", AvailableIn: "Kerala", OrganicCertified: "Organic"},
			{SNo: 3, ProductName: "Urea Plus", CompanyName: "AgroCo", ProductType: "Fertilizer",
				BrandName: "Krishi", SuitableCrops: "Wheat, Maize", AvailableIn: "Punjab"},
		},
	}
}

func newLoadedView(t *testing.T) (*View, *mockCatalogService) {
	t.Helper()
	svc := &mockCatalogService{catalog: sampleCatalog()}
	v := NewView(nil, nil, svc)
	v.SetDimensions(120, 60)
	v.SetCatalog(svc.catalog)
	require.NotNil(t, v.Result())
	return v, svc
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, FocusList, v.Focus())
	assert.Equal(t, domain.GroupNone, v.Mode())
	assert.Equal(t, domain.LayoutCard, v.Layout())
	assert.Nil(t, v.Result())
	assert.Nil(t, v.Init())
	assert.Equal(t, domain.DefaultFilterCriteria(), v.Criteria())
}

func TestView_SetDefaults(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.SetDefaults(domain.GroupByCompany, domain.LayoutCompact)
	assert.Equal(t, domain.GroupByCompany, v.Mode())
	assert.Equal(t, domain.LayoutCompact, v.Layout())

	v.SetDefaults(domain.GroupingMode("bogus"), domain.Layout("bogus"))
	assert.Equal(t, domain.GroupByCompany, v.Mode())
	assert.Equal(t, domain.LayoutCompact, v.Layout())
}

func TestView_NoCatalog(t *testing.T) {
	v := NewView(nil, nil, &mockCatalogService{})
	v.SetDimensions(120, 40)

	v.SetCatalog(nil)

	assert.Nil(t, v.Result())
	assert.NoError(t, v.err)
	assert.Contains(t, v.View(), NoCatalogMessage)
}

func TestView_SetCatalog(t *testing.T) {
	v, _ := newLoadedView(t)

	assert.Equal(t, 3, v.Result().Matched)
	assert.Equal(t, []string{domain.MatchAny, "Fertilizer", "Pesticide"}, v.productType.Options())
	assert.Equal(t, []string{domain.MatchAny, "AgroCo", "BioFarm"}, v.company.Options())
	assert.Equal(t, []string{domain.MatchAny, "Haryana", "Kerala", "Punjab"}, v.state.Options())

	out := v.View()
	assert.Contains(t, out, "3 of 3 products")
	assert.Contains(t, out, "products.csv")
	assert.Contains(t, out, "All Products")
}

func TestView_CycleCategoricalFilter(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusType, v.Focus())
	assert.Equal(t, status.StateFiltering, v.StatusState())

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Fertilizer", v.Criteria().ProductType)
	assert.Equal(t, 2, v.Result().Matched)

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.MatchAny, v.Criteria().ProductType)
	assert.Equal(t, 3, v.Result().Matched)
}

func TestView_CategoricalIgnoresTyping(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	v.Update(key("x"))

	assert.Equal(t, domain.MatchAny, v.Criteria().ProductType)
}

func TestView_TypeTextFilter(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, FocusBrand, v.Focus())

	v.Update(key("KRI"))

	assert.Equal(t, "KRI", v.Criteria().BrandName)
	assert.Equal(t, 1, v.Result().Matched)
	assert.Equal(t, "Urea Plus", v.Result().Products[0].ProductName)
	assert.Contains(t, v.View(), "1 of 3 products")
}

func TestView_CropsFilterIsSubstring(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{SuitableCrops: "whe"})
	v.Refresh()

	assert.Equal(t, 2, v.Result().Matched)
}

func TestView_NoMatchesShowsEmptyState(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{ProductName: "does-not-exist"})
	v.Refresh()

	out := v.View()
	assert.Contains(t, out, list.EmptyMessage)
	assert.Contains(t, out, "0 of 3 products")
}

func TestView_FocusNavigation(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FocusCompany, v.Focus())
	assert.True(t, v.company.Focused())
	assert.False(t, v.productType.Focused())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, FocusType, v.Focus())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusList, v.Focus())
	assert.Equal(t, status.StateBrowsing, v.StatusState())
}

func TestView_FocusWrapsToList(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, FocusList, v.Focus())
	assert.False(t, v.brand.Focused())
}

func TestView_EnterInFilterReturnsToList(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, FocusList, v.Focus())
}

func TestView_CycleGrouping(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(key("g"))
	assert.Equal(t, domain.GroupByType, v.Mode())
	require.Len(t, v.Result().Groups, 2)
	assert.Equal(t, "Pesticide", v.Result().Groups[0].Key)
	assert.Equal(t, "Fertilizer", v.Result().Groups[1].Key)

	v.Update(key("g"))
	assert.Equal(t, domain.GroupByCompany, v.Mode())
	assert.Equal(t, "AgroCo", v.Result().Groups[0].Key)

	v.Update(key("g"))
	assert.Equal(t, domain.GroupNone, v.Mode())
	require.Len(t, v.Result().Groups, 1)
	assert.Equal(t, domain.AllProductsGroup, v.Result().Groups[0].Key)
}

func TestView_GroupingKeepsFilters(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{CompanyName: "AgroCo"})
	v.Refresh()

	v.Update(key("g"))

	assert.Equal(t, 2, v.Result().Matched)
	assert.Equal(t, "AgroCo", v.Criteria().CompanyName)
}

func TestView_ToggleLayout(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(key("v"))
	assert.Equal(t, domain.LayoutCompact, v.Layout())

	v.Update(key("v"))
	assert.Equal(t, domain.LayoutCard, v.Layout())
}

func TestView_ClearFilters(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{ProductType: "Fertilizer", BrandName: "kri"})
	v.Refresh()
	require.Equal(t, 1, v.Result().Matched)

	v.Update(key("c"))

	assert.False(t, v.Criteria().HasActiveFilters())
	assert.Equal(t, 3, v.Result().Matched)
}

func TestView_EnterOpensDetail(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.ProductSelected)
	require.True(t, ok)
	assert.Equal(t, "Bio NPK", selected.Product.ProductName)
}

func TestView_EnterWithNoProducts(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{ProductName: "nothing"})
	v.Refresh()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NavigationKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want messages.ViewType
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, messages.ViewMenu},
		{key("o"), messages.ViewLoad},
		{key("?"), messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			v, _ := newLoadedView(t)

			_, cmd := v.Update(tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Reloaded(t *testing.T) {
	v, svc := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{CompanyName: "AgroCo"})
	v.Refresh()

	svc.catalog.Products = append(svc.catalog.Products, domain.Product{
		SNo: 4, ProductName: "Zinc Boost", CompanyName: "AgroCo", ProductType: "Micronutrient",
	})
	v.Update(messages.CatalogReloaded{Catalog: svc.catalog})

	assert.Equal(t, status.StateReloaded, v.StatusState())
	assert.Equal(t, "AgroCo", v.Criteria().CompanyName)
	assert.Equal(t, 3, v.Result().Matched)
	assert.Equal(t, 4, v.Result().Total)
	assert.Contains(t, v.productType.Options(), "Micronutrient")
	assert.Contains(t, v.View(), "Catalog reloaded")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, status.StateBrowsing, v.StatusState())
}

func TestView_ReloadFailedKeepsProducts(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(messages.CatalogReloaded{Err: errors.New("parse csv: bad quote")})

	assert.Equal(t, status.StateError, v.StatusState())
	assert.Equal(t, "Load failed: parse csv: bad quote", v.StatusMessage())
	assert.Equal(t, 3, v.Result().Matched)
}

func TestView_BrowseError(t *testing.T) {
	v, svc := newLoadedView(t)
	svc.browseErr = errors.New("boom")

	v.Refresh()

	assert.Nil(t, v.Result())
	assert.Equal(t, status.StateError, v.StatusState())
}

func TestView_ErrorOccurred(t *testing.T) {
	v, _ := newLoadedView(t)

	v.Update(messages.ErrorOccurred{Err: errors.New("oops")})

	assert.Equal(t, status.StateError, v.StatusState())
	assert.Contains(t, v.View(), "Error: oops")
}

func TestView_ActiveFilterCount(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetCriteria(domain.FilterCriteria{ProductType: "Fertilizer", SuitableCrops: "wheat"})
	v.Refresh()

	assert.Contains(t, v.View(), "2 active filters")
}

func TestView_NotReady(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Contains(t, v.View(), "Initialising")

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotContains(t, v.View(), "Initialising")
}
