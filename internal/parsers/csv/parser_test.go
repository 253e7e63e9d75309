package csv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
)

func sheet(content string) *domain.RawSheet {
	return &domain.RawSheet{Name: "catalog.csv", MIMEType: domain.MIMETypeCSV, Content: []byte(content)}
}

func TestParser_SupportedMIMETypes(t *testing.T) {
	assert.ElementsMatch(t, []string{domain.MIMETypeCSV, domain.MIMETypeTSV}, New().SupportedMIMETypes())
}

func TestParser_Parse(t *testing.T) {
	content := "S.No,Company Name,Product Name,Available In (States)\n" +
		"1,AgroCo,Neem Oil,\"Kerala, Tamil Nadu\"\n" +
		"2,BioFarm,Compost,Punjab\n"

	rows, err := New().Parse(context.Background(), sheet(content))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"S.No", "Company Name", "Product Name", "Available In (States)"}, rows[0].Columns)
	assert.Equal(t, "AgroCo", rows[0].Get(domain.ColumnCompanyName))
	assert.Equal(t, "Kerala, Tamil Nadu", rows[0].Get(domain.ColumnAvailableIn))
	assert.Equal(t, "Compost", rows[1].Get(domain.ColumnProductName))
}

func TestParser_Parse_StripsBOM(t *testing.T) {
	rows, err := New().Parse(context.Background(), sheet("\ufeffS.No,Company Name\n7,AgroCo\n"))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].Get(domain.ColumnSNo))
}

func TestParser_Parse_SkipsBlankRows(t *testing.T) {
	content := "Company Name,Product Name\n,\nAgroCo,Neem Oil\n\n ,  \nBioFarm,Compost\n"

	rows, err := New().Parse(context.Background(), sheet(content))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AgroCo", rows[0].Get(domain.ColumnCompanyName))
	assert.Equal(t, "BioFarm", rows[1].Get(domain.ColumnCompanyName))
}

func TestParser_Parse_RaggedRecords(t *testing.T) {
	content := "Company Name,Product Name,Notes\nAgroCo\nBioFarm,Compost,fresh,extra\n"

	rows, err := New().Parse(context.Background(), sheet(content))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AgroCo", rows[0].Get(domain.ColumnCompanyName))
	assert.Equal(t, "", rows[0].Get(domain.ColumnProductName))
	assert.Equal(t, "fresh", rows[1].Get(domain.ColumnNotes))
}

func TestParser_Parse_UnknownAndDuplicateColumns(t *testing.T) {
	content := " Company Name ,Warehouse,,Company Name\nAgroCo,North,x,Ignored\n"

	rows, err := New().Parse(context.Background(), sheet(content))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Company Name", "Warehouse"}, rows[0].Columns)
	assert.Equal(t, "AgroCo", rows[0].Get(domain.ColumnCompanyName))
	assert.Equal(t, "North", rows[0].Get("Warehouse"))
}

func TestParser_Parse_TSV(t *testing.T) {
	raw := &domain.RawSheet{
		Name:     "catalog.tsv",
		MIMEType: domain.MIMETypeTSV,
		Content:  []byte("Company Name\tPack Sizes\nAgroCo\t1L, 5L\n"),
	}

	rows, err := New().Parse(context.Background(), raw)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1L, 5L", rows[0].Get(domain.ColumnPackSizes))
}

func TestParser_Parse_HeaderOnly(t *testing.T) {
	rows, err := New().Parse(context.Background(), sheet("S.No,Company Name\n"))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParser_Parse_Empty(t *testing.T) {
	for _, content := range []string{"", "\ufeff", "\n\n", ",,\n"} {
		_, err := New().Parse(context.Background(), sheet(content))
		assert.True(t, errors.Is(err, domain.ErrEmptySheet), "content %q", content)
	}
}

func TestParser_Parse_Nil(t *testing.T) {
	_, err := New().Parse(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParser_Parse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Parse(ctx, sheet("Company Name\nAgroCo\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUniqueHeader(t *testing.T) {
	got := uniqueHeader([]string{" A ", "", "A", "B"})

	assert.Equal(t, "A", got[0])
	assert.Equal(t, "B", got[3])
	assert.NotEqual(t, got[1], got[2])
	assert.NotEqual(t, "A", got[2])
}

func TestRecord_MapsEveryCatalogColumn(t *testing.T) {
	var rec record
	for _, col := range domain.Columns() {
		_, ok := rec.value(col)
		assert.True(t, ok, col)
	}
	_, ok := rec.value("Warehouse")
	assert.False(t, ok)
}

func TestBuildRow_CatalogCellsComeFromDecodedRecord(t *testing.T) {
	names := uniqueHeader([]string{"Company Name", "Warehouse", "", "Company Name", "Notes"})
	rec := &record{CompanyName: "Decoded", Notes: "from struct"}
	raw := []string{"raw company", "North", "x", "dup", "raw notes"}

	row := buildRow(names, rec, raw, map[int]bool{1: true, 2: true, 3: true})

	assert.Equal(t, []string{"Company Name", "Warehouse", "Notes"}, row.Columns)
	assert.Equal(t, "Decoded", row.Values[domain.ColumnCompanyName])
	assert.Equal(t, "from struct", row.Values[domain.ColumnNotes])
	assert.Equal(t, "North", row.Values["Warehouse"])
}

func TestParser_Parse_ReorderedHeaderFeedsProducts(t *testing.T) {
	content := "Notes,Product Type,Warehouse,S.No,Company Name\n" +
		"keep dry,Fertilizer,North,7,AgroCo\n"

	rows, err := New().Parse(context.Background(), sheet(content))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Notes", "Product Type", "Warehouse", "S.No", "Company Name"}, rows[0].Columns)

	p := domain.ProductFromRow(rows[0], 0)
	assert.Equal(t, 7, p.SNo)
	assert.Equal(t, "AgroCo", p.CompanyName)
	assert.Equal(t, "Fertilizer", p.ProductType)
	assert.Equal(t, "keep dry", p.Notes)
	assert.Equal(t, "North", rows[0].Get("Warehouse"))
}
