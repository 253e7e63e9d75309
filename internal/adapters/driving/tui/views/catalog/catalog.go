// Package catalog provides the filter panel and product list view.
package catalog

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
)

// NoCatalogMessage is shown before any catalog has been loaded.
const NoCatalogMessage = "No Products Yet"

// Filter panel positions. FocusList means the product list has focus.
const (
	FocusList = iota - 1
	FocusType
	FocusCompany
	FocusState
	FocusCrops
	FocusName
	FocusBrand
	fieldCount
)

// View is the catalog browser: a filter panel above a grouped product list.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	service   driving.CatalogService
	list      *list.ProductList
	statusbar *status.Bar

	productType *input.Choice
	company     *input.Choice
	state       *input.Choice
	crops       *input.FieldInput
	name        *input.FieldInput
	brand       *input.FieldInput

	focus  int
	mode   domain.GroupingMode
	result *domain.BrowseResult
	source string
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		service:     service,
		list:        list.NewProductList(s),
		statusbar:   status.NewBar(s, km),
		productType: input.NewChoice(s, "Product Type"),
		company:     input.NewChoice(s, "Company"),
		state:       input.NewChoice(s, "State"),
		crops:       input.NewFieldInput(s, "Crops", "any crop"),
		name:        input.NewFieldInput(s, "Product Name", "any name"),
		brand:       input.NewFieldInput(s, "Brand", "any brand"),
		focus:       FocusList,
		mode:        domain.GroupNone,
		width:       80,
		height:      24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDefaults applies the initial grouping mode and layout.
func (v *View) SetDefaults(mode domain.GroupingMode, layout domain.Layout) {
	if mode.IsValid() {
		v.mode = mode
	}
	v.list.SetLayout(layout)
}

// SetCatalog refreshes the facets and the product list after a load or
// reload. Filter values are kept.
func (v *View) SetCatalog(catalog *domain.Catalog) {
	if catalog != nil {
		v.source = catalog.Source.String()
	}
	if v.service != nil {
		facets := v.service.Facets()
		v.productType.SetOptions(facets.ProductTypes)
		v.company.SetOptions(facets.Companies)
		v.state.SetOptions(facets.States)
	}
	v.Refresh()
}

// Criteria returns the filter values currently in the panel.
func (v *View) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		ProductType:   v.productType.Value(),
		CompanyName:   v.company.Value(),
		AvailableIn:   v.state.Value(),
		SuitableCrops: v.crops.Value(),
		ProductName:   v.name.Value(),
		BrandName:     v.brand.Value(),
	}
}

// SetCriteria fills the panel from criteria.
func (v *View) SetCriteria(c domain.FilterCriteria) {
	v.productType.SetValue(c.ProductType)
	v.company.SetValue(c.CompanyName)
	v.state.SetValue(c.AvailableIn)
	v.crops.SetValue(c.SuitableCrops)
	v.name.SetValue(c.ProductName)
	v.brand.SetValue(c.BrandName)
}

// Refresh re-runs the browse query with the current criteria and mode.
func (v *View) Refresh() {
	if v.service == nil {
		v.result = nil
		return
	}

	result, err := v.service.Browse(v.Criteria(), v.mode)
	if err != nil {
		v.result = nil
		if !errors.Is(err, domain.ErrNoCatalog) {
			v.err = err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(err.Error())
		}
		v.list.SetGroups(nil)
		return
	}

	v.err = nil
	v.result = result
	v.list.SetGroups(result.Groups)
	v.statusbar.SetSummary(result.Summary())
	if v.statusbar.State() != status.StateReloaded {
		v.statusbar.SetState(v.browseState())
	}
}

func (v *View) browseState() status.State {
	if v.focus == FocusList {
		return status.StateBrowsing
	}
	return status.StateFiltering
}

// Update handles messages for the catalog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.focus == FocusList {
			return v.handleListKey(msg)
		}
		return v.handleFilterKey(msg)

	case messages.CatalogReloaded:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(messages.LoadFailed(msg.Err))
			return v, nil
		}
		v.statusbar.SetState(status.StateReloaded)
		v.SetCatalog(msg.Catalog)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Any key acknowledges a reload notice.
	if v.statusbar.State() == status.StateReloaded {
		v.statusbar.SetState(status.StateBrowsing)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, v.keymap.NextField):
		return v, v.setFocus(FocusType)

	case keymap.Matches(key, v.keymap.PrevField):
		return v, v.setFocus(FocusBrand)

	case keymap.Matches(key, v.keymap.Group):
		v.mode = v.mode.Next()
		v.Refresh()
		return v, nil

	case keymap.Matches(key, v.keymap.Layout):
		v.list.SetLayout(v.list.Layout().Toggle())
		return v, nil

	case keymap.Matches(key, v.keymap.Clear):
		v.ClearFilters()
		return v, nil

	case keymap.Matches(key, v.keymap.Open):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLoad}
		}

	case keymap.Matches(key, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}

	case keymap.Matches(key, v.keymap.Select):
		p := v.list.SelectedProduct()
		if p == nil {
			return v, nil
		}
		product := *p
		return v, func() tea.Msg {
			return messages.ProductSelected{Product: product}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back), keymap.Matches(key, v.keymap.Select):
		return v, v.setFocus(FocusList)

	case keymap.Matches(key, v.keymap.NextField), msg.Type == tea.KeyDown:
		return v, v.setFocus(v.focus + 1)

	case keymap.Matches(key, v.keymap.PrevField), msg.Type == tea.KeyUp:
		return v, v.setFocus(v.focus - 1)
	}

	if choice := v.choice(v.focus); choice != nil {
		switch {
		case keymap.Matches(key, v.keymap.CycleNext):
			choice.Next()
			v.Refresh()
		case keymap.Matches(key, v.keymap.CyclePrev):
			choice.Prev()
			v.Refresh()
		}
		return v, nil
	}

	field := v.text(v.focus)
	before := field.Value()
	updated, cmd := field.Update(msg)
	if updated.Value() != before {
		v.Refresh()
	}
	return v, cmd
}

// setFocus moves focus, wrapping from the last filter back to the list.
func (v *View) setFocus(focus int) tea.Cmd {
	if focus >= fieldCount {
		focus = FocusList
	}
	if focus < FocusList {
		focus = fieldCount - 1
	}

	for i := 0; i < fieldCount; i++ {
		if c := v.choice(i); c != nil {
			c.Blur()
		} else {
			v.text(i).Blur()
		}
	}

	v.focus = focus
	if v.statusbar.State() != status.StateError {
		v.statusbar.SetState(v.browseState())
	}

	if c := v.choice(focus); c != nil {
		c.Focus()
		return nil
	}
	if f := v.text(focus); f != nil {
		return f.Focus()
	}
	return nil
}

func (v *View) choice(i int) *input.Choice {
	switch i {
	case FocusType:
		return v.productType
	case FocusCompany:
		return v.company
	case FocusState:
		return v.state
	}
	return nil
}

func (v *View) text(i int) *input.FieldInput {
	switch i {
	case FocusCrops:
		return v.crops
	case FocusName:
		return v.name
	case FocusBrand:
		return v.brand
	}
	return nil
}

// ClearFilters resets every filter field and refreshes the list.
func (v *View) ClearFilters() {
	v.SetCriteria(domain.ClearedFilterCriteria())
	v.Refresh()
}

// View renders the catalog view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	header := v.styles.Title.Render("AgriCatalog")
	if v.source != "" {
		header += v.styles.Muted.Render("  " + v.source)
	}
	sections = append(sections, header)

	if v.result == nil {
		sections = append(sections,
			"",
			v.styles.Subtitle.Render(NoCatalogMessage),
			v.styles.Muted.Render("Press o to load a catalog."),
			"",
			v.statusbar.View(),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	info := fmt.Sprintf("%s  ·  %s  ·  %s layout",
		v.result.Summary(), v.mode.Description(), v.list.Layout())
	if n := v.Criteria().ActiveCount(); n > 0 {
		info += fmt.Sprintf("  ·  %d active filters", n)
	}
	sections = append(sections, v.styles.Normal.Render(info), "", v.renderFilters(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderFilters() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		v.productType.View(), v.company.View(), v.state.View())
	right := lipgloss.JoinVertical(lipgloss.Left,
		v.crops.View(), v.name.View(), v.brand.View())
	return v.styles.Border.Padding(0, 1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	half := max(width/2-4, 30)
	v.crops.SetWidth(half)
	v.name.SetWidth(half)
	v.brand.SetWidth(half)

	// Header, summary, filter panel (with borders) and status bar.
	listHeight := max(height-20, 3)
	v.list.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}

// Focus returns the focused filter position, or FocusList.
func (v *View) Focus() int {
	return v.focus
}

// Mode returns the grouping mode.
func (v *View) Mode() domain.GroupingMode {
	return v.mode
}

// Layout returns the product layout.
func (v *View) Layout() domain.Layout {
	return v.list.Layout()
}

// Result returns the last browse result, or nil before a catalog is loaded.
func (v *View) Result() *domain.BrowseResult {
	return v.result
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
