package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/adapters/driven/config/file"
	"github.com/custodia-labs/agricatalog/internal/connectors"
	"github.com/custodia-labs/agricatalog/internal/connectors/filesystem"
	"github.com/custodia-labs/agricatalog/internal/core/services"
	"github.com/custodia-labs/agricatalog/internal/parsers"
	"github.com/custodia-labs/agricatalog/internal/parsers/csv"
)

const testCatalogCSV = `S.No,Company Name,Product Name,Brand Name,Product Type,Sub-Type,Suitable Crops,Available In (States),Organic/Certified
1,AgroCo,Shield 50,Shield,Pesticide,Insecticide,"Cotton, Paddy","Punjab, Haryana",No
2,BioFarm,Bio NPK,GreenGrow,Fertilizer,Bio-fertilizer,Wheat,Punjab,Organic
3,AgroCo,Urea Plus,,Fertilizer,,"Wheat, Maize",Bihar,
`

// setupTestServices wires real services over a temp config dir and
// returns the path of a small catalog CSV.
func setupTestServices(t *testing.T) string {
	t.Helper()

	for _, env := range []string{services.EnvGitHubToken, services.EnvGoogleAPIKey, services.EnvGoogleAccessToken} {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	store, err := file.NewConfigStore(filepath.Join(dir, "config"))
	require.NoError(t, err)

	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogCSV), 0o600))

	oldCatalog, oldSettings, oldWatch := catalogService, settingsService, watchService
	catalogService = services.NewCatalogService(
		connectors.NewRegistry(filesystem.New()),
		parsers.NewRegistry(csv.New()),
	)
	settingsService = services.NewSettingsService(store)
	watchService = nil

	t.Cleanup(func() {
		catalogService, settingsService, watchService = oldCatalog, oldSettings, oldWatch
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	})
	return path
}

// resetFlags restores package-level flag values between executions.
func resetFlags() {
	browseType, browseCompany, browseState = "", "", ""
	browseCrops, browseName, browseBrand = "", "", ""
	browseGroupBy, browseLayout, browseSheet, browseTable = "", "", "", ""
	browseJSON = false
	facetsSheet, facetsTable, facetsJSON = "", "", false
	tuiWatch, tuiSheet, tuiTable = false, "", ""
	verbose = false
}
