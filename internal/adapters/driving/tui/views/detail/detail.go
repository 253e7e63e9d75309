// Package detail provides the product card view for the TUI.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// labelWidth fits the longest column name.
const labelWidth = 30

// View shows every field of one product.
type View struct {
	styles *styles.Styles

	product      *domain.Product
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new product detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetProduct sets the product to display.
func (v *View) SetProduct(p domain.Product) {
	v.product = &p
	v.scrollOffset = 0
}

// Product returns the displayed product, or nil.
func (v *View) Product() *domain.Product {
	return v.product
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc", "backspace":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCatalog}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	// Title, badge line, separator and help footer.
	return max(v.height-7, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

// Fields returns label/value pairs in column order.
func Fields(p domain.Product) [][2]string {
	return [][2]string{
		{domain.ColumnSNo, strconv.Itoa(p.SNo)},
		{domain.ColumnCompanyName, p.CompanyName},
		{domain.ColumnProductName, p.ProductName},
		{domain.ColumnBrandName, p.BrandName},
		{domain.ColumnDescription, p.Description},
		{domain.ColumnProductType, p.ProductType},
		{domain.ColumnSubType, p.SubType},
		{domain.ColumnAppliedSeasons, p.AppliedSeasons},
		{domain.ColumnSuitableCrops, p.SuitableCrops},
		{domain.ColumnBenefits, p.Benefits},
		{domain.ColumnDosage, p.Dosage},
		{domain.ColumnApplicationMethod, p.ApplicationMethod},
		{domain.ColumnPackSizes, p.PackSizes},
		{domain.ColumnPriceRange, p.PriceRange},
		{domain.ColumnAvailableIn, p.AvailableIn},
		{domain.ColumnOrganicCertified, p.OrganicCertified},
		{domain.ColumnProductImageLink, p.ProductImageLink},
		{domain.ColumnSourceURL, p.SourceURL},
		{domain.ColumnNotes, p.Notes},
	}
}

// buildContent renders each field, wrapping long values under their label.
func (v *View) buildContent() []string {
	if v.product == nil {
		return nil
	}

	valueWidth := max(v.width-labelWidth-4, 20)
	wrap := lipgloss.NewStyle().Width(valueWidth)
	indent := strings.Repeat(" ", labelWidth)

	var lines []string
	for _, f := range Fields(*v.product) {
		value := f[1]
		if value == "" {
			value = "-"
		}
		for i, part := range strings.Split(wrap.Render(value), "\n") {
			part = strings.TrimRight(part, " ")
			if i == 0 {
				lines = append(lines,
					v.styles.Subtitle.Render(fmt.Sprintf("%-*s", labelWidth, f[0]+":"))+v.styles.Normal.Render(part))
				continue
			}
			lines = append(lines, indent+v.styles.Normal.Render(part))
		}
	}
	return lines
}

// View renders the product card.
func (v *View) View() string {
	var b strings.Builder

	if v.product == nil {
		b.WriteString(v.styles.Title.Render("Product"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No product selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	title := v.styles.Title.Render(fmt.Sprintf("#%d %s", v.product.SNo, v.product.Title()))
	if v.product.IsOrganic() {
		title += "  " + v.styles.Badge.Render("Organic")
	}
	b.WriteString(title)
	b.WriteString("\n")
	if sub := v.product.BrandName; sub != "" {
		b.WriteString(v.styles.Muted.Render(sub))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 72), 10)))
	b.WriteString("\n")

	lines := v.buildContent()
	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(lines))
	for _, line := range lines[v.scrollOffset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, end, len(lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
