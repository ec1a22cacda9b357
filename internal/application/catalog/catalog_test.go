package catalog_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/jhoicas/elikia-api/internal/application/catalog"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/memory"
)

func TestReadCSV_UTF8(t *testing.T) {
	in := "\ufeffName,SKU,category,price,purchase_price,stock,description\n" +
		"T-Shirt,TSH-001,Textile,19.99,8.0,10,Coton\n" +
		"Sans SKU,,Textile,1,1,1,\n" +
		",,,,,,\n" +
		"Café,CAF-1,,\"2,50\",1,3.0,\n" +
		"Prix faux,PF-1,,abc,1,1,\n"

	res, err := catalog.ReadCSV(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, 2, res.Skipped)

	p := res.Products[0]
	assert.Equal(t, "T-Shirt", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, "Coton", p.Description)

	assert.Equal(t, "Café", res.Products[1].Name)
	assert.True(t, res.Products[1].Price.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, 3, res.Products[1].Stock)
}

func TestReadCSV_Windows1252PuntoYComa(t *testing.T) {
	// "Café;CAF-1;Épicerie" en Windows-1252.
	in := "name;sku;category\nCaf\xe9;CAF-1;\xc9picerie\n"

	res, err := catalog.ReadCSV(strings.NewReader(in), "windows-1252")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Café", res.Products[0].Name)
	assert.Equal(t, "Épicerie", res.Products[0].Category)
}

func TestReadCSV_Errores(t *testing.T) {
	_, err := catalog.ReadCSV(strings.NewReader("name,price\nA,1\n"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta sku")

	_, err = catalog.ReadCSV(strings.NewReader("name,sku\n"), "ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = catalog.ReadCSV(strings.NewReader(""), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadXLSX(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Produits")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range []string{"name", "sku", "category", "price", "purchase_price", "stock"} {
		header.AddCell().SetString(h)
	}
	row := sheet.AddRow()
	row.AddCell().SetString("Savon")
	row.AddCell().SetString("SAV-1")
	row.AddCell().SetString("Hygiène")
	row.AddCell().SetString("3.5")
	row.AddCell().SetString("1.2")
	row.AddCell().SetInt(24)
	bad := sheet.AddRow()
	bad.AddCell().SetString("Sans SKU")

	path := filepath.Join(t.TempDir(), "catalogue.xlsx")
	require.NoError(t, file.Save(path))

	res, err := catalog.ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "SAV-1", res.Products[0].SKU)
	assert.Equal(t, 24, res.Products[0].Stock)
	assert.True(t, res.Products[0].Price.Equal(decimal.RequireFromString("3.5")))
}

func TestImport_Idempotente(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(repository.CollectionProducts)
	products := []entity.Product{
		{Name: "T-Shirt", SKU: "TSH-001", Price: decimal.RequireFromString("19.99")},
		{Name: "T-Shirt bis", SKU: "tsh-001"},
		{Name: "Savon", SKU: "SAV-1"},
	}

	rep, err := catalog.Import(ctx, backend, products)
	require.NoError(t, err)
	assert.Equal(t, catalog.Report{Inserted: 2, Existing: 1}, rep)

	rep, err = catalog.Import(ctx, backend, products)
	require.NoError(t, err)
	assert.Equal(t, catalog.Report{Inserted: 0, Existing: 3}, rep)

	rows, err := backend.FetchAll(ctx, repository.CollectionProducts, repository.FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestImport_SinEsquema(t *testing.T) {
	_, err := catalog.Import(context.Background(), memory.New(), []entity.Product{{Name: "A", SKU: "A"}})
	assert.ErrorIs(t, err, domain.ErrSchemaMissing)
}

func TestEnsureStoreSettings(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(repository.CollectionStoreSettings)

	created, err := catalog.EnsureStoreSettings(ctx, backend)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = catalog.EnsureStoreSettings(ctx, backend)
	require.NoError(t, err)
	assert.False(t, created)
}
