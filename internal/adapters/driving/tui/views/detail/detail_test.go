package detail

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

func sampleProduct() domain.Product {
	return domain.Product{
		SNo:              2,
		CompanyName:      "BioFarm",
		ProductName:      "Bio NPK",
		BrandName:        "GreenGrow",
		Description:      "Consortium of nitrogen fixing, phosphate and potash solubilising bacteria.",
		ProductType:      "Fertilizer",
		SubType:          "Biofertilizer",
		SuitableCrops:    "Wheat, Rice",
		PriceRange:       "₹250-₹400",
		AvailableIn:      "Kerala, Tamil Nadu",
		OrganicCertified: "Organic (NPOP)",
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Nil(t, v.Product())
	assert.Nil(t, v.Init())
}

func TestView_NoProduct(t *testing.T) {
	v := NewView(nil)

	assert.Contains(t, v.View(), "No product selected")
}

func TestView_SetProduct(t *testing.T) {
	v := NewView(nil)
	v.scrollOffset = 3

	v.SetProduct(sampleProduct())

	require.NotNil(t, v.Product())
	assert.Equal(t, "Bio NPK", v.Product().ProductName)
	assert.Equal(t, 0, v.scrollOffset)
}

func TestView_ShowsAllFields(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(140, 80)
	v.SetProduct(sampleProduct())

	out := v.View()

	assert.Contains(t, out, "#2 Bio NPK")
	assert.Contains(t, out, "Organic")
	for _, col := range domain.Columns() {
		assert.Contains(t, out, col+":")
	}
	assert.Contains(t, out, "Kerala, Tamil Nadu")
	assert.Contains(t, out, "₹250-₹400")
}

func TestView_NoBadgeWhenNotOrganic(t *testing.T) {
	p := sampleProduct()
	p.OrganicCertified = "ISO 9001"
	v := NewView(nil)
	v.SetDimensions(140, 80)
	v.SetProduct(p)

	header := strings.SplitN(v.View(), "\n", 2)[0]

	assert.NotContains(t, header, "Organic")
}

func TestView_EmptyFieldsShowDash(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(140, 80)
	v.SetProduct(domain.Product{SNo: 1})

	out := v.View()

	assert.Contains(t, out, "(Unnamed product)")
	assert.Contains(t, out, "-")
}

func TestView_WrapsLongValues(t *testing.T) {
	p := sampleProduct()
	p.Notes = strings.Repeat("long note ", 20)
	v := NewView(nil)
	v.SetDimensions(60, 200)
	v.SetProduct(p)

	lines := v.buildContent()

	assert.Greater(t, len(lines), len(Fields(p)))
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 10)
	v.SetProduct(sampleProduct())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.scrollOffset)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, v.scrollOffset)
	assert.Contains(t, v.View(), "[Line 3-")

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, v.scrollOffset)

	for i := 0; i < 100; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, v.maxScrollOffset(), v.scrollOffset)
}

func TestView_EscReturnsToCatalog(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewCatalog}, cmd())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil)

	v.Update(tea.WindowSizeMsg{Width: 90, Height: 30})

	assert.Equal(t, 90, v.width)
	assert.Equal(t, 30, v.height)
	assert.True(t, v.ready)
}

func TestFields_ColumnOrder(t *testing.T) {
	fields := Fields(sampleProduct())

	require.Len(t, fields, len(domain.Columns()))
	for i, col := range domain.Columns() {
		assert.Equal(t, col, fields[i][0])
	}
	assert.Equal(t, "2", fields[0][1])
}
