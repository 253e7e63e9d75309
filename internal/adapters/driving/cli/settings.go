package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the default catalog source, display defaults, live
reload and the credentials used for GitHub and Google Drive sources.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting",
	Long: `Change one setting by key.

Keys:
  catalog.source       default source (path, URL, github:..., gdrive:...)
  catalog.sheet        default worksheet for workbooks
  catalog.table        default table for SQLite databases
  display.grouping     none, type or company
  display.layout       card or compact
  watch.enabled        true or false
  watch.debounce_ms    reload delay in milliseconds
  github.token         GitHub token (or GITHUB_TOKEN)
  google.api_key       Google API key (or GOOGLE_API_KEY)
  google.access_token  Google OAuth access token (or GOOGLE_ACCESS_TOKEN)

Credentials are prompted for without echo when no value is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Catalog]")
	cmd.Printf("  Source: %s\n", orNotSet(settings.Catalog.Source))
	if settings.Catalog.Source != "" {
		if ref, err := settings.SourceRef(); err == nil {
			cmd.Printf("  Kind: %s\n", ref.Kind.Description())
		}
	}
	cmd.Printf("  Sheet: %s\n", orDefault(settings.Catalog.Sheet, "first sheet"))
	cmd.Printf("  Table: %s\n", orDefault(settings.Catalog.Table, "products"))
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Grouping: %s\n", settings.Display.Grouping.Description())
	cmd.Printf("  Layout: %s\n", settings.Display.Layout)
	cmd.Println()

	cmd.Println("[Watch]")
	if settings.Watch.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Printf("  Debounce: %s\n", settings.Watch.Debounce)
	cmd.Println()

	cmd.Println("[Credentials]")
	cmd.Printf("  GitHub token: %s\n", maskedOrNotSet(settings.Tokens.GitHubToken))
	cmd.Printf("  Google API key: %s\n", maskedOrNotSet(settings.Tokens.GoogleAPIKey))
	cmd.Printf("  Google access token: %s\n", maskedOrNotSet(settings.Tokens.GoogleAccessToken))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	secret := settingsService.IsSecret(key)

	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case secret:
		cmd.Printf("Enter %s: ", key)
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if secret {
		shown = maskAPIKey(value)
	}
	if value == "" {
		cmd.Printf("Cleared %s\n", key)
		return nil
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo from a terminal, or a plain line
// otherwise.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func maskedOrNotSet(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return maskAPIKey(secret)
}

func orNotSet(v string) string {
	return orDefault(v, "")
}

func orDefault(v, fallback string) string {
	switch {
	case v != "":
		return v
	case fallback != "":
		return "(default: " + fallback + ")"
	default:
		return "(not set)"
	}
}
