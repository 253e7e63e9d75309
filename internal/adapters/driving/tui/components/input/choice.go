package input

import (
	"slices"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

// Choice is a categorical selector cycling through domain.MatchAny and a
// list of facet values.
type Choice struct {
	styles  *styles.Styles
	label   string
	options []string
	index   int
	focused bool
}

// NewChoice creates a selector with only domain.MatchAny available.
func NewChoice(s *styles.Styles, label string) *Choice {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Choice{
		styles:  s,
		label:   label,
		options: []string{domain.MatchAny},
	}
}

// SetOptions replaces the selectable values. The current value is kept,
// even when it is no longer among the values.
func (c *Choice) SetOptions(values []string) {
	current := c.Value()

	options := make([]string, 0, len(values)+1)
	options = append(options, domain.MatchAny)
	for _, v := range values {
		if v != domain.MatchAny && v != "" {
			options = append(options, v)
		}
	}
	if !domain.IsUnset(current) && !slices.Contains(options, current) {
		options = append(options, current)
	}

	c.options = options
	c.index = max(slices.Index(options, current), 0)
}

// Options returns the selectable values, domain.MatchAny first.
func (c *Choice) Options() []string {
	return c.options
}

// Value returns the selected value.
func (c *Choice) Value() string {
	if c.index < 0 || c.index >= len(c.options) {
		return domain.MatchAny
	}
	return c.options[c.index]
}

// SetValue selects value, adding it when unknown. Empty selects MatchAny.
func (c *Choice) SetValue(value string) {
	if domain.IsUnset(value) {
		c.index = 0
		return
	}
	if i := slices.Index(c.options, value); i >= 0 {
		c.index = i
		return
	}
	c.options = append(c.options, value)
	c.index = len(c.options) - 1
}

// Next selects the following value, wrapping around.
func (c *Choice) Next() {
	c.index = (c.index + 1) % len(c.options)
}

// Prev selects the preceding value, wrapping around.
func (c *Choice) Prev() {
	c.index = (c.index - 1 + len(c.options)) % len(c.options)
}

// Reset selects MatchAny.
func (c *Choice) Reset() {
	c.index = 0
}

// Label returns the field label.
func (c *Choice) Label() string {
	return c.label
}

// Focus marks the selector as focused.
func (c *Choice) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *Choice) Blur() {
	c.focused = false
}

// Focused returns whether the selector is focused.
func (c *Choice) Focused() bool {
	return c.focused
}

// View renders the label and the selected value.
func (c *Choice) View() string {
	label := c.styles.Label.Render(c.label)
	value := "‹ " + c.Value() + " ›"
	if c.focused {
		return label + c.styles.Selected.Render(value)
	}
	return label + c.styles.Normal.Render(value)
}
