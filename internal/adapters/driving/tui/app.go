package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/views/catalog"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/views/load"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	loadView    *load.View
	catalogView *catalog.View
	detailView  *detail.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// source is loaded on start when set.
	source *domain.SourceRef

	// watch enables live reload of file sources.
	watch       bool
	reloads     chan messages.CatalogReloaded
	listening   bool
	watchMu     sync.Mutex
	watchCancel context.CancelFunc

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s),
		loadView:    load.NewView(s, km, ports.Catalog),
		catalogView: catalog.NewView(s, km, ports.Catalog),
		detailView:  detail.NewView(s),
		currentView: messages.ViewMenu,
		reloads:     make(chan messages.CatalogReloaded, 1),
	}

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			a.catalogView.SetDefaults(settings.Display.Grouping, settings.Display.Layout)
		} else {
			logger.Warn("Failed to read display settings: %v", err)
		}
	}

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loadView.WithContext(ctx)
	return a
}

// WithSource loads ref as soon as the program starts.
func (a *App) WithSource(ref domain.SourceRef) *App {
	a.source = &ref
	a.loadView.SetSource(ref)
	return a
}

// WithWatch enables live reload of file sources.
func (a *App) WithWatch(enabled bool) *App {
	a.watch = enabled
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("agricatalog"),
	}

	switch {
	case a.source != nil:
		cmds = append(cmds, a.load(*a.source))
	case a.ports.Catalog.Current() != nil:
		current := a.ports.Catalog.Current()
		cmds = append(cmds, func() tea.Msg {
			return messages.CatalogLoaded{Ref: current.Source, Catalog: current}
		})
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.stopWatch()
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewLoad:
			a.loadView.Reset()
			return a, a.loadView.Init()
		case messages.ViewCatalog:
			a.catalogView.Refresh()
		case messages.ViewMenu, messages.ViewDetail, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.CatalogLoaded:
		a.loadView, _ = a.loadView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("%s", messages.LoadFailed(msg.Err))
			a.loadView.SetSource(msg.Ref)
			a.currentView = messages.ViewLoad
			return a, nil
		}
		a.err = nil
		a.catalogView.SetCatalog(msg.Catalog)
		a.menuView.SetSource(msg.Ref.String())
		a.currentView = messages.ViewCatalog
		return a, a.startWatch(msg.Ref)

	case messages.CatalogReloaded:
		a.catalogView, _ = a.catalogView.Update(msg)
		if a.currentView == messages.ViewDetail && msg.Err == nil {
			// The product on screen may be gone.
			a.currentView = messages.ViewCatalog
		}
		return a, a.waitForReload()

	case messages.ProductSelected:
		a.detailView.SetProduct(msg.Product)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewLoad:
			a.loadView, cmd = a.loadView.Update(msg)
		case messages.ViewCatalog:
			a.catalogView, cmd = a.catalogView.Update(msg)
		case messages.ViewMenu, messages.ViewDetail, messages.ViewHelp:
			// Other views don't display errors
		}
		return a, cmd

	case messages.Quit:
		a.stopWatch()
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active input view
	if a.currentView == messages.ViewLoad {
		a.loadView, cmd = a.loadView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewLoad:
		a.loadView, cmd = a.loadView.Update(msg)
	case messages.ViewCatalog:
		if a.catalogView.Focus() == catalog.FocusList && keymap.Matches(msg.String(), a.keymap.Quit) {
			a.stopWatch()
			return a, tea.Quit
		}
		a.catalogView, cmd = a.catalogView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		switch {
		case keymap.Matches(msg.String(), a.keymap.Back):
			a.currentView = messages.ViewMenu
			if a.catalogView.Result() != nil {
				a.currentView = messages.ViewCatalog
			}
		case keymap.Matches(msg.String(), a.keymap.Quit):
			a.stopWatch()
			return a, tea.Quit
		}
	}
	return a, cmd
}

// load runs a catalog load in the background.
func (a *App) load(ref domain.SourceRef) tea.Cmd {
	catalogService := a.ports.Catalog
	ctx := a.ctx
	return func() tea.Msg {
		c, err := catalogService.Load(ctx, ref)
		return messages.CatalogLoaded{Ref: ref, Catalog: c, Err: err}
	}
}

// startWatch replaces any running watch with one on ref. The first call
// also starts listening for reloads.
func (a *App) startWatch(ref domain.SourceRef) tea.Cmd {
	if !a.watch || a.ports.Watch == nil || ref.Kind != domain.SourceFile {
		return nil
	}

	a.stopWatch()
	ctx, cancel := context.WithCancel(a.ctx)
	a.watchMu.Lock()
	a.watchCancel = cancel
	a.watchMu.Unlock()

	reloads := a.reloads
	go func() {
		err := a.ports.Watch.Watch(ctx, ref, func(c *domain.Catalog, err error) {
			select {
			case reloads <- messages.CatalogReloaded{Catalog: c, Err: err}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Warn("Live reload unavailable for %s: %v", ref.Location, err)
		}
	}()

	if a.listening {
		return nil
	}
	a.listening = true
	return a.waitForReload()
}

// waitForReload blocks until the watch delivers a reload.
func (a *App) waitForReload() tea.Cmd {
	reloads := a.reloads
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case msg := <-reloads:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) stopWatch() {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	if a.watchCancel != nil {
		a.watchCancel()
		a.watchCancel = nil
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewLoad:
		return a.loadView.View()
	case messages.ViewCatalog:
		return a.catalogView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view from the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	sections := []string{"Navigation", "Filters", "Catalog", "General"}
	for i, row := range a.keymap.FullHelp() {
		if i < len(sections) {
			b.WriteString(a.styles.Subtitle.Render(sections[i] + ":"))
			b.WriteString("\n")
		}
		for _, binding := range row {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("Categorical filters (type, company, state) cycle through \"all\" and the catalog's values."))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("Text filters (crops, name, brand) match any part of the field, ignoring case."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.stopWatch()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.loadView.SetDimensions(width, height)
	a.catalogView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
