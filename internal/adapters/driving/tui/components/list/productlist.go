// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// EmptyMessage is shown when no product passes the filters.
const EmptyMessage = "No Products Found"

// entry is one product in display order, with the index of its group.
type entry struct {
	group   int
	product domain.Product
}

// ProductList displays grouped products in a navigable list.
type ProductList struct {
	groups   []domain.Group
	entries  []entry
	layout   domain.Layout
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProductList creates a new product list component.
func NewProductList(s *styles.Styles) *ProductList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProductList{
		layout: domain.LayoutCard,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the product list.
func (l *ProductList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProductList) Update(msg tea.Msg) (*ProductList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home":
			l.selected = 0
		case "end":
			if len(l.entries) > 0 {
				l.selected = len(l.entries) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible slice of the list.
func (l *ProductList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render(EmptyMessage)
	}

	start, end := l.window()
	lines := make([]string, 0, (end-start)*2)

	for i := start; i < end; i++ {
		e := l.entries[i]
		if i == start || e.group != l.entries[i-1].group {
			g := l.groups[e.group]
			header := l.styles.GroupHeader.Render(g.Label()) +
				l.styles.Muted.Render(fmt.Sprintf(" (%d)", len(g.Products)))
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, header)
		}
		if l.layout == domain.LayoutCompact {
			lines = append(lines, l.renderCompact(i, e.product))
		} else {
			lines = append(lines, l.renderCard(i, e.product))
		}
	}

	return strings.Join(lines, "\n")
}

// window returns the range of entries that fit the height, keeping the
// selection visible.
func (l *ProductList) window() (int, int) {
	perItem := 6
	if l.layout == domain.LayoutCompact {
		perItem = 1
	}
	visible := l.height / perItem
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.entries))
	return start, end
}

func (l *ProductList) renderCompact(index int, p domain.Product) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	nameWidth := max(l.width/3, 12)
	line := fmt.Sprintf("%s%4d  %-*s  %s", indicator, p.SNo,
		nameWidth, truncate(p.Title(), nameWidth),
		truncate(joinNonEmpty(" · ", p.CompanyName, p.ProductType), max(l.width-nameWidth-12, 10)))

	if index == l.selected {
		return l.styles.Selected.Render(line)
	}
	return l.styles.Normal.Render(line)
}

func (l *ProductList) renderCard(index int, p domain.Product) string {
	textWidth := max(l.width-6, 20)

	title := l.styles.Title.Render(truncate(fmt.Sprintf("#%d %s", p.SNo, p.Title()), textWidth))
	if p.IsOrganic() {
		title += " " + l.styles.Badge.Render("Organic")
	}

	body := []string{title}
	if s := joinNonEmpty(" · ", p.BrandName, p.CompanyName); s != "" {
		body = append(body, l.styles.Normal.Render(truncate(s, textWidth)))
	}
	if s := joinNonEmpty(" / ", p.ProductType, p.SubType); s != "" {
		body = append(body, l.styles.Subtitle.Render(truncate(s, textWidth)))
	}
	if p.SuitableCrops != "" {
		body = append(body, l.styles.Muted.Render(truncate("Crops: "+p.SuitableCrops, textWidth)))
	}
	if p.AvailableIn != "" {
		body = append(body, l.styles.Muted.Render(truncate("States: "+p.AvailableIn, textWidth)))
	}

	card := l.styles.Card
	if index == l.selected {
		card = l.styles.SelectedCard
	}
	return card.Width(textWidth + 2).Render(strings.Join(body, "\n"))
}

// SetGroups replaces the displayed groups and resets the selection.
func (l *ProductList) SetGroups(groups []domain.Group) {
	l.groups = groups
	l.entries = l.entries[:0]
	for gi, g := range groups {
		for _, p := range g.Products {
			l.entries = append(l.entries, entry{group: gi, product: p})
		}
	}
	l.selected = 0
}

// Groups returns the displayed groups.
func (l *ProductList) Groups() []domain.Group {
	return l.groups
}

// SetLayout selects card or compact rendering.
func (l *ProductList) SetLayout(layout domain.Layout) {
	if layout.IsValid() {
		l.layout = layout
	}
}

// Layout returns the current layout.
func (l *ProductList) Layout() domain.Layout {
	return l.layout
}

// Selected returns the index of the selected product.
func (l *ProductList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ProductList) SetSelected(index int) {
	if index >= 0 && index < len(l.entries) {
		l.selected = index
	}
}

// SelectedProduct returns the currently selected product, or nil if none.
func (l *ProductList) SelectedProduct() *domain.Product {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	p := l.entries[l.selected].product
	return &p
}

// MoveUp moves selection up.
func (l *ProductList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ProductList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProductList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *ProductList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *ProductList) Height() int {
	return l.height
}

// Count returns the number of products across all groups.
func (l *ProductList) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the list has no products.
func (l *ProductList) IsEmpty() bool {
	return len(l.entries) == 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
