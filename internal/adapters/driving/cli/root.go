// Package cli provides the cobra command tree for agricatalog.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driving"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

var (
	version = "dev"
	verbose bool
)

// Services injected by main.
var (
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// errNoSource is returned when no source argument is given and no default
// source is configured.
var errNoSource = errors.New("no source given and catalog.source is not set")

var rootCmd = &cobra.Command{
	Use:   "agricatalog",
	Short: "Browse agricultural product catalogs",
	Long: `AgriCatalog loads a product catalog from a spreadsheet, CSV file, SQLite
database, URL, GitHub repository or Google Drive file, and lets you filter
and group the products from the command line, a terminal UI, or an MCP
client.

A source is a path or URL, or one of:
  github:owner/repo/path/to/file.xlsx[@ref]
  gdrive:<file-id>`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
}

// ExecuteContext runs the root command with ctx, which commands see as
// cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetCatalogService sets the catalog service used by commands.
func SetCatalogService(s driving.CatalogService) {
	catalogService = s
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetWatchService sets the watch service used by the tui command.
func SetWatchService(s driving.WatchService) {
	watchService = s
}

// resolveSource picks the source from args, falling back to the
// catalog.source setting. Non-empty sheet and table override the
// configured ones.
func resolveSource(args []string, sheet, table string) (domain.SourceRef, error) {
	var ref domain.SourceRef

	if len(args) > 0 {
		parsed, err := domain.ParseSourceRef(args[0])
		if err != nil {
			return domain.SourceRef{}, err
		}
		ref = parsed
	} else {
		if settingsService == nil {
			return domain.SourceRef{}, errNoSource
		}
		settings, err := settingsService.Get()
		if err != nil {
			return domain.SourceRef{}, fmt.Errorf("failed to get settings: %w", err)
		}
		if settings.Catalog.Source == "" {
			return domain.SourceRef{}, errNoSource
		}
		if ref, err = settings.SourceRef(); err != nil {
			return domain.SourceRef{}, err
		}
	}

	if sheet != "" {
		ref.Sheet = sheet
	}
	if table != "" {
		ref.Table = table
	}
	return ref, nil
}

// currentSettings returns stored settings, or defaults when no settings
// service is configured or the config cannot be read.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}
