// Package load provides the view that asks for a catalog source.
package load

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
)

// Field indices.
const (
	fieldSource = iota
	fieldSheet
	fieldTable
)

// View asks for a source and loads it.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	fields  []*input.FieldInput
	focus   int
	service driving.CatalogService
	ctx     context.Context

	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new load view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles: s,
		keymap: km,
		fields: []*input.FieldInput{
			input.NewFieldInput(s, "Source", "path, URL, github:owner/repo/file or gdrive:<id>"),
			input.NewFieldInput(s, "Sheet", "first sheet"),
			input.NewFieldInput(s, "Table", "products"),
		},
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
	v.fields[fieldSource].Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Focus()
}

// Update handles messages for the load view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CatalogLoaded:
		v.loading = false
		v.err = msg.Err
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(msg.String(), v.keymap.NextField), msg.Type == tea.KeyDown:
		return v, v.moveFocus(1)

	case keymap.Matches(msg.String(), v.keymap.PrevField), msg.Type == tea.KeyUp:
		return v, v.moveFocus(-1)

	case msg.Type == tea.KeyEnter:
		if v.loading {
			return v, nil
		}
		ref, err := v.Ref()
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.loading = true
		return v, v.load(ref)
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].Focus()
}

// Ref builds a source reference from the inputs.
func (v *View) Ref() (domain.SourceRef, error) {
	ref, err := domain.ParseSourceRef(v.fields[fieldSource].Value())
	if err != nil {
		return domain.SourceRef{}, err
	}
	ref.Sheet = v.fields[fieldSheet].Value()
	ref.Table = v.fields[fieldTable].Value()
	return ref, nil
}

func (v *View) load(ref domain.SourceRef) tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.ErrorOccurred{Err: ErrNoCatalogService}
		}
		catalog, err := v.service.Load(v.ctx, ref)
		return messages.CatalogLoaded{Ref: ref, Catalog: catalog, Err: err}
	}
}

// View renders the load view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Load Catalog"), ""}
	for _, f := range v.fields {
		sections = append(sections, f.View())
	}
	sections = append(sections, "")

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render(messages.LoadFailed(v.err)))
	default:
		sections = append(sections, v.styles.Muted.Render("CSV, TSV, XLSX and SQLite sources are supported."))
	}

	sections = append(sections, "", v.styles.Help.Render("[enter] Load  [tab] Next field  [esc] Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSource pre-fills the inputs from a reference.
func (v *View) SetSource(ref domain.SourceRef) {
	v.fields[fieldSource].SetValue(ref.String())
	v.fields[fieldSheet].SetValue(ref.Sheet)
	v.fields[fieldTable].SetValue(ref.Table)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Reset clears the error and loading state, keeping the inputs.
func (v *View) Reset() {
	v.err = nil
	v.loading = false
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
