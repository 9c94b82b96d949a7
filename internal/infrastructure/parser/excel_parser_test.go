package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/phone-price-bot/internal/domain/entity"
)

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFile_XLSXWithDefaultArabicHeaders(t *testing.T) {
	def := entity.DefaultColumns()
	path := writeXLSX(t, [][]interface{}{
		{def.Address, def.Name, def.Price, def.Brand, def.Store},
		{"Karrada", "Galaxy S23", "750,000", "Samsung", "Store A"},
		{"", "", "", "", ""},
		{"Mansour", "iPhone 15", "1,200,000", "Apple", "Store B"},
	})

	rows, err := NewExcelParser(entity.ColumnMapping{}).ParseFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.CatalogRow{Name: "Galaxy S23", Price: "750,000", Brand: "Samsung", Store: "Store A", Address: "Karrada"}, rows[0])
	assert.Equal(t, "iPhone 15", rows[1].Name)
}

func TestParseFile_CustomColumnMapping(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Model", "Cost", "Shop"},
		{"Redmi Note 12", "300000", "Store C"},
	})
	columns := entity.ColumnMapping{Name: "model", Price: "COST", Store: "Shop"}

	rows, err := NewExcelParser(columns).ParseFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Redmi Note 12", rows[0].Name)
	assert.Equal(t, "300000", rows[0].Price)
	assert.Equal(t, "Store C", rows[0].Store)
	assert.Empty(t, rows[0].Brand)
}

func TestParseFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	content := "\ufeffname,price,brand,store,address\nGalaxy S23,\"750,000\",Samsung,Store A,Karrada\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	columns := entity.ColumnMapping{Name: "name", Price: "price", Brand: "brand", Store: "store", Address: "address"}

	rows, err := NewExcelParser(columns).ParseFile(path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "750,000", rows[0].Price)
}

func TestParseFile_MissingFileIsLoadError(t *testing.T) {
	_, err := NewExcelParser(entity.ColumnMapping{}).ParseFile(filepath.Join(t.TempDir(), "nope.xlsx"))

	var loadErr *entity.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, entity.ErrSourceNotFound)
}

func TestParseFile_MissingRequiredColumn(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Model", "Shop"},
		{"Redmi Note 12", "Store C"},
	})

	_, err := NewExcelParser(entity.ColumnMapping{Name: "Model"}).ParseFile(path)

	assert.ErrorIs(t, err, entity.ErrMalformedSource)
}

func TestParseFile_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a zip"), 0o644))

	_, err := NewExcelParser(entity.ColumnMapping{}).ParseFile(path)

	var loadErr *entity.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, entity.ErrMalformedSource)
}

func TestFileSource_Rows(t *testing.T) {
	def := entity.DefaultColumns()
	path := writeXLSX(t, [][]interface{}{
		{def.Name, def.Price},
		{"Galaxy S23", "750,000"},
	})
	src := NewFileSource(path, entity.ColumnMapping{})

	rows, err := src.Rows(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, path, src.Name())
}

func TestLoadSpecLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones_urls.json")
	doc := `{
		"Samsung": [{"name": "Galaxy S23", "url": "https://specs.example/s23"}, {"name": ""}],
		"Apple": [{"name": "iPhone 15", "url": "https://specs.example/ip15"}, {"name": "iPhone SE"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	links, err := LoadSpecLinks(path)

	require.NoError(t, err)
	assert.Equal(t, []entity.SpecLink{
		{Name: "Galaxy S23", URL: "https://specs.example/s23"},
		{Name: "iPhone 15", URL: "https://specs.example/ip15"},
		{Name: "iPhone SE"},
	}, links)
}

func TestParseSpecLinks_FileOrderAndDuplicateGroups(t *testing.T) {
	doc := `{
		"Samsung": [{"name": "Galaxy S23", "url": "https://specs.example/old"}, {"name": "Galaxy A54", "url": "https://specs.example/a54"}],
		"Apple": [{"name": "iPhone 15", "url": "https://specs.example/ip15"}],
		"Samsung": [{"name": "Galaxy S23", "url": "https://specs.example/s23"}],
		"Google": null
	}`

	links, err := ParseSpecLinks([]byte(doc))

	require.NoError(t, err)
	assert.Equal(t, []entity.SpecLink{
		{Name: "Galaxy S23", URL: "https://specs.example/s23"},
		{Name: "iPhone 15", URL: "https://specs.example/ip15"},
	}, links)
}

func TestLoadSpecLinks_Errors(t *testing.T) {
	_, err := LoadSpecLinks(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, entity.ErrSourceNotFound)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Samsung": "oops"}`), 0o644))
	_, err = LoadSpecLinks(path)
	assert.ErrorIs(t, err, entity.ErrMalformedSource)

	for _, doc := range []string{`[]`, `{"Samsung": []} {}`, `{"Samsung": [}`, ``} {
		_, err := ParseSpecLinks([]byte(doc))
		assert.ErrorIs(t, err, entity.ErrMalformedSource, doc)
	}
}
