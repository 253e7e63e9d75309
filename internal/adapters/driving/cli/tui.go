package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/agricatalog/internal/adapters/driving/tui"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	CatalogService  driving.CatalogService
	SettingsService driving.SettingsService
	WatchService    driving.WatchService

	// LogPath receives verbose logs while the terminal is taken over.
	LogPath string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var (
	tuiWatch bool
	tuiSheet string
	tuiTable string
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [source]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for AgriCatalog.

The TUI loads a catalog and shows it as product cards with a filter panel.
Without a source argument the catalog.source setting is loaded, if any.

Controls:
  tab/shift+tab - Move between filters and the product list
  ←/→           - Cycle type, company and state values
  g             - Cycle grouping (none, type, company)
  v             - Toggle card/compact layout
  c             - Clear filters
  Enter         - Open product details
  o             - Load another source
  Esc           - Back
  ?             - Help
  q             - Quit

With --watch, a local file source is reloaded whenever it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "reload a local file source when it changes (default from settings)")
	tuiCmd.Flags().StringVar(&tuiSheet, "sheet", "", "worksheet to read from a workbook")
	tuiCmd.Flags().StringVar(&tuiTable, "table", "", "table to read from a SQLite database")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports := &tui.Ports{}
	logPath := ""
	if tuiConfig != nil {
		ports.Catalog = tuiConfig.CatalogService
		ports.Settings = tuiConfig.SettingsService
		ports.Watch = tuiConfig.WatchService
		logPath = tuiConfig.LogPath
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	settings := currentSettings()
	watch := settings.Watch.Enabled
	if cmd.Flags().Changed("watch") {
		watch = tuiWatch
	}
	app.WithContext(cmd.Context()).WithWatch(watch)

	if ref, err := resolveSource(args, tuiSheet, tuiTable); err == nil {
		app.WithSource(ref)
	} else if len(args) > 0 {
		return err
	}

	// The alt screen owns the terminal; keep logs off it.
	restore := redirectLogs(logPath)
	defer restore()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends verbose log output to path, or discards it when no
// path is set or the file cannot be opened.
func redirectLogs(path string) func() {
	if !logger.IsVerbose() {
		return func() {}
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			logger.SetOutput(f)
			return func() {
				logger.SetOutput(os.Stderr)
				_ = f.Close()
			}
		}
	}

	logger.SetOutput(io.Discard)
	return func() { logger.SetOutput(os.Stderr) }
}
