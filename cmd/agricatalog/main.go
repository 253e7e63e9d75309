// Command agricatalog browses agricultural product catalogs from the
// command line, a terminal UI, or an MCP client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/agricatalog/internal/adapters/driven/config/file"
	"github.com/custodia-labs/agricatalog/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/agricatalog/internal/adapters/driven/watch"
	"github.com/custodia-labs/agricatalog/internal/adapters/driving/cli"
	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/connectors/filesystem"
	"github.com/custodia-labs/agricatalog/internal/connectors/github"
	"github.com/custodia-labs/agricatalog/internal/connectors/google"
	"github.com/custodia-labs/agricatalog/internal/connectors/google/drive"
	"github.com/custodia-labs/agricatalog/internal/connectors/web"
	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/core/services"
	"github.com/custodia-labs/agricatalog/internal/logger"
	"github.com/custodia-labs/agricatalog/internal/parsers"
	"github.com/custodia-labs/agricatalog/internal/parsers/csv"
	"github.com/custodia-labs/agricatalog/internal/parsers/sqlite"
	"github.com/custodia-labs/agricatalog/internal/parsers/xlsx"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	var configStore driven.ConfigStore
	if store, err := file.NewConfigStore(configDir); err == nil {
		configStore = store
	} else {
		// Settings still work for this run; they are just not persisted.
		fmt.Fprintf(os.Stderr, "Warning: %v; settings will not be saved\n", err)
		configStore = memory.NewConfigStore()
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	registry := connectors.NewRegistry(buildConnectors(ctx, settings.Tokens)...)
	parserRegistry := parsers.NewRegistry(csv.New(), xlsx.New(), sqlite.New())
	catalogService := services.NewCatalogService(registry, parserRegistry)

	debounce := settings.Watch.Debounce
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounce
	}
	watchService := services.NewWatchService(catalogService, watch.New(debounce))

	cli.SetVersion(version)
	cli.SetCatalogService(catalogService)
	cli.SetSettingsService(settingsService)
	cli.SetWatchService(watchService)
	cli.SetTUIConfig(&cli.TUIConfig{
		CatalogService:  catalogService,
		SettingsService: settingsService,
		WatchService:    watchService,
		LogPath:         filepath.Join(configDir, "tui.log"),
	})

	return cli.ExecuteContext(ctx)
}

// buildConnectors creates one connector per source kind. A remote
// connector that cannot be built is left out and its kind reports
// unsupported.
func buildConnectors(ctx context.Context, tokens domain.TokenSettings) []driven.Connector {
	cs := []driven.Connector{
		filesystem.New(),
		web.New(nil),
	}

	if client, err := github.NewClient(ctx, tokens.GitHubToken); err == nil {
		cs = append(cs, github.New(client))
	} else {
		logger.Warn("GitHub sources unavailable: %v", err)
	}

	creds := google.Credentials{APIKey: tokens.GoogleAPIKey, AccessToken: tokens.GoogleAccessToken}
	if svc, err := google.NewDriveService(ctx, creds); err == nil {
		cs = append(cs, drive.New(svc))
	} else {
		logger.Warn("Google Drive sources unavailable: %v", err)
	}

	return cs
}
