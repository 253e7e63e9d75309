package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

var (
	browseType    string
	browseCompany string
	browseState   string
	browseCrops   string
	browseName    string
	browseBrand   string
	browseGroupBy string
	browseLayout  string
	browseSheet   string
	browseTable   string
	browseJSON    bool
)

var browseCmd = &cobra.Command{
	Use:   "browse [source]",
	Short: "Filter and list catalog products",
	Long: `Loads a catalog and prints the products matching every given filter.

Each filter is a case-insensitive substring match. The categorical filters
(--type, --company, --state) also accept "all". Without a source argument
the catalog.source setting is used.

Examples:
  agricatalog browse products.xlsx --type fertilizer --group-by company
  agricatalog browse https://example.com/catalog.csv --state punjab --json
  agricatalog browse github:acme/data/catalog.csv@main --layout compact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseType, "type", "", "filter by product type")
	f.StringVar(&browseCompany, "company", "", "filter by company name")
	f.StringVar(&browseState, "state", "", "filter by state the product is available in")
	f.StringVar(&browseCrops, "crops", "", "filter by suitable crops")
	f.StringVar(&browseName, "name", "", "filter by product name")
	f.StringVar(&browseBrand, "brand", "", "filter by brand name")
	f.StringVar(&browseGroupBy, "group-by", "", "grouping: none, type or company (default from settings)")
	f.StringVar(&browseLayout, "layout", "", "layout: card or compact (default from settings, compact when piped)")
	f.StringVar(&browseSheet, "sheet", "", "worksheet to read from a workbook")
	f.StringVar(&browseTable, "table", "", "table to read from a SQLite database")
	f.BoolVar(&browseJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(browseCmd)
}

// browseOutput is the JSON shape of the browse command.
type browseOutput struct {
	Source  string         `json:"source"`
	Summary string         `json:"summary"`
	Total   int            `json:"total"`
	Matched int            `json:"matched"`
	GroupBy string         `json:"groupBy"`
	Groups  []domain.Group `json:"groups"`
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ref, err := resolveSource(args, browseSheet, browseTable)
	if err != nil {
		return err
	}

	settings := currentSettings()
	mode := settings.Display.Grouping
	if browseGroupBy != "" {
		if mode, err = domain.ParseGroupingMode(browseGroupBy); err != nil {
			return err
		}
	}
	layout, err := resolveLayout(cmd.OutOrStdout(), settings.Display.Layout)
	if err != nil {
		return err
	}

	if _, err := catalogService.Load(cmd.Context(), ref); err != nil {
		return err
	}

	result, err := catalogService.Browse(browseCriteria(), mode)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if browseJSON {
		return outputBrowseJSON(cmd, ref, result)
	}
	outputBrowse(cmd, result, layout)
	return nil
}

func browseCriteria() domain.FilterCriteria {
	criteria := domain.DefaultFilterCriteria()
	if browseType != "" {
		criteria.ProductType = browseType
	}
	if browseCompany != "" {
		criteria.CompanyName = browseCompany
	}
	if browseState != "" {
		criteria.AvailableIn = browseState
	}
	criteria.SuitableCrops = browseCrops
	criteria.ProductName = browseName
	criteria.BrandName = browseBrand
	return criteria
}

// resolveLayout prefers the flag, then compact for non-terminal output,
// then the configured layout.
func resolveLayout(out io.Writer, configured domain.Layout) (domain.Layout, error) {
	if browseLayout != "" {
		return domain.ParseLayout(browseLayout)
	}
	if !isTerminal(out) {
		return domain.LayoutCompact, nil
	}
	if !configured.IsValid() {
		return domain.LayoutCard, nil
	}
	return configured, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputBrowseJSON(cmd *cobra.Command, ref domain.SourceRef, result *domain.BrowseResult) error {
	out := browseOutput{
		Source:  ref.String(),
		Summary: result.Summary(),
		Total:   result.Total,
		Matched: result.Matched,
		GroupBy: result.Mode.String(),
		Groups:  result.Groups,
	}
	if out.Groups == nil {
		out.Groups = []domain.Group{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputBrowse(cmd *cobra.Command, result *domain.BrowseResult, layout domain.Layout) {
	cmd.Printf("%s · %s\n", result.Summary(), result.Mode.Description())
	cmd.Println()

	if result.Matched == 0 {
		cmd.Println("No Products Found")
		return
	}

	for _, g := range result.Groups {
		if result.Mode != domain.GroupNone {
			cmd.Printf("%s (%d)\n", g.Label(), len(g.Products))
		}
		for i := range g.Products {
			if layout == domain.LayoutCompact {
				printCompact(cmd, &g.Products[i])
			} else {
				printCard(cmd, &g.Products[i])
			}
		}
		cmd.Println()
	}
}

func printCompact(cmd *cobra.Command, p *domain.Product) {
	meta := joinNonEmpty(" · ", p.CompanyName, p.ProductType)
	if meta != "" {
		cmd.Printf("  %4d  %s  (%s)\n", p.SNo, p.Title(), meta)
		return
	}
	cmd.Printf("  %4d  %s\n", p.SNo, p.Title())
}

func printCard(cmd *cobra.Command, p *domain.Product) {
	title := fmt.Sprintf("#%d %s", p.SNo, p.Title())
	if p.IsOrganic() {
		title += " [Organic]"
	}
	cmd.Printf("  %s\n", title)

	if line := joinNonEmpty(" · ", p.BrandName, p.CompanyName); line != "" {
		cmd.Printf("      %s\n", line)
	}
	if line := joinNonEmpty(" / ", p.ProductType, p.SubType); line != "" {
		cmd.Printf("      Type: %s\n", line)
	}
	if p.SuitableCrops != "" {
		cmd.Printf("      Crops: %s\n", p.SuitableCrops)
	}
	if p.AvailableIn != "" {
		cmd.Printf("      States: %s\n", p.AvailableIn)
	}
	if p.PriceRange != "" {
		cmd.Printf("      Price: %s\n", p.PriceRange)
	}
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
