package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	facetsSheet string
	facetsTable string
	facetsJSON  bool
)

var facetsCmd = &cobra.Command{
	Use:   "facets [source]",
	Short: "List the companies, product types and states in a catalog",
	Long: `Loads a catalog and prints the distinct values of its categorical
fields. These are the values the --type, --company and --state filters of
browse select from.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacets,
}

func init() {
	facetsCmd.Flags().StringVar(&facetsSheet, "sheet", "", "worksheet to read from a workbook")
	facetsCmd.Flags().StringVar(&facetsTable, "table", "", "table to read from a SQLite database")
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "output facets as JSON")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ref, err := resolveSource(args, facetsSheet, facetsTable)
	if err != nil {
		return err
	}
	if _, err := catalogService.Load(cmd.Context(), ref); err != nil {
		return err
	}

	facets := catalogService.Facets()
	if facetsJSON {
		data, err := json.MarshalIndent(facets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal facets: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printFacet(cmd, "Companies", facets.Companies)
	printFacet(cmd, "Product Types", facets.ProductTypes)
	printFacet(cmd, "States", facets.States)
	return nil
}

func printFacet(cmd *cobra.Command, title string, values []string) {
	cmd.Printf("[%s] (%d)\n", title, len(values))
	if len(values) == 0 {
		cmd.Println("  (none)")
	}
	for _, v := range values {
		cmd.Printf("  %s\n", v)
	}
	cmd.Println()
}
