package load

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// mockCatalogService implements driving.CatalogService for testing.
type mockCatalogService struct {
	loadFunc func(ctx context.Context, ref domain.SourceRef) (*domain.Catalog, error)
	loaded   []domain.SourceRef
}

func (m *mockCatalogService) Load(ctx context.Context, ref domain.SourceRef) (*domain.Catalog, error) {
	m.loaded = append(m.loaded, ref)
	if m.loadFunc != nil {
		return m.loadFunc(ctx, ref)
	}
	return &domain.Catalog{ID: "c1", Source: ref}, nil
}

func (m *mockCatalogService) Current() *domain.Catalog { return nil }

func (m *mockCatalogService) Browse(domain.FilterCriteria, domain.GroupingMode) (*domain.BrowseResult, error) {
	return nil, domain.ErrNoCatalog
}

func (m *mockCatalogService) Facets() domain.Facets { return domain.Facets{} }

func (m *mockCatalogService) Clear() {}

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &mockCatalogService{})

	require.NotNil(t, v)
	assert.Len(t, v.fields, 3)
	assert.True(t, v.fields[fieldSource].Focused())
	assert.False(t, v.Loading())
	assert.NoError(t, v.Err())
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, nil, nil)

	_ = v.Init()
	assert.True(t, v.fields[fieldSource].Focused())
}

func TestView_TypeAndRef(t *testing.T) {
	v := NewView(nil, nil, &mockCatalogService{})

	typeText(v, "catalog.xlsx")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "Archive")

	ref, err := v.Ref()
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFile, ref.Kind)
	assert.Equal(t, "catalog.xlsx", ref.Location)
	assert.Equal(t, "Archive", ref.Sheet)
	assert.Equal(t, "", ref.Table)
}

func TestView_FocusWraps(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.True(t, v.fields[fieldTable].Focused())
	assert.False(t, v.fields[fieldSource].Focused())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, v.fields[fieldSource].Focused())
}

func TestView_EnterLoads(t *testing.T) {
	svc := &mockCatalogService{}
	v := NewView(nil, nil, svc)
	typeText(v, "https://example.com/products.csv")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, v.Loading())

	msg, ok := cmd().(messages.CatalogLoaded)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, domain.SourceURL, msg.Ref.Kind)
	require.Len(t, svc.loaded, 1)
	assert.Equal(t, "https://example.com/products.csv", svc.loaded[0].Location)

	v.Update(msg)
	assert.False(t, v.Loading())
	assert.NoError(t, v.Err())
}

func TestView_EnterWhileLoadingIgnored(t *testing.T) {
	v := NewView(nil, nil, &mockCatalogService{})
	typeText(v, "a.csv")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_EmptySourceShowsFailure(t *testing.T) {
	v := NewView(nil, nil, &mockCatalogService{})
	v.SetDimensions(100, 30)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	require.Error(t, v.Err())
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "Load failed:")
}

func TestView_LoadFailureShowsSingleMessage(t *testing.T) {
	svc := &mockCatalogService{
		loadFunc: func(context.Context, domain.SourceRef) (*domain.Catalog, error) {
			return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, errors.New("fetch file: not found"))
		},
	}
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 30)
	typeText(v, "missing.csv")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(cmd())

	assert.False(t, v.Loading())
	assert.ErrorIs(t, v.Err(), domain.ErrLoadFailed)
	assert.Contains(t, v.View(), "Load failed: fetch file: not found")
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)
	typeText(v, "a.csv")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(messages.ErrorOccurred)

	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoCatalogService)
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_SetSource(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.SetSource(domain.SourceRef{Kind: domain.SourceGitHub, Location: "acme/data/p.csv", Ref: "main", Table: "t"})

	ref, err := v.Ref()
	require.NoError(t, err)
	assert.Equal(t, domain.SourceGitHub, ref.Kind)
	assert.Equal(t, "main", ref.Ref)
	assert.Equal(t, "t", ref.Table)
}

func TestView_View(t *testing.T) {
	v := NewView(nil, nil, nil)
	assert.Contains(t, v.View(), "Initialising")

	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := v.View()

	assert.Contains(t, out, "Load Catalog")
	assert.Contains(t, out, "Source")
	assert.Contains(t, out, "Sheet")
	assert.Contains(t, out, "Table")
}

func TestView_Reset(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.err = errors.New("x")
	v.loading = true

	v.Reset()

	assert.NoError(t, v.Err())
	assert.False(t, v.Loading())
}

func TestView_WithContext(t *testing.T) {
	type ctxKey struct{}
	v := NewView(nil, nil, nil)
	ctx := context.WithValue(context.Background(), ctxKey{}, 1)

	assert.Equal(t, v, v.WithContext(ctx))
	assert.Equal(t, ctx, v.ctx)
}
