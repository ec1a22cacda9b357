package view_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

func TestInitialView_PorRol(t *testing.T) {
	cases := map[entity.Role]string{
		entity.RoleAdmin:    view.Dashboard,
		entity.RoleCaisse:   view.POS,
		entity.RoleGestock:  view.Inventory,
		entity.Role("OTRO"): view.Dashboard,
		entity.Role(""):     view.Dashboard,
	}
	for role, want := range cases {
		assert.Equal(t, want, view.InitialView(role), string(role))
	}
}

func TestExists(t *testing.T) {
	for _, k := range []string{"dashboard", "reports", "settings", "pos", "inventory", "suppliers"} {
		assert.True(t, view.Exists(k), k)
	}
	assert.False(t, view.Exists("unknown"))
	assert.False(t, view.Exists(""))
}

func TestRender_VistaDesconocidaNoRenderiza(t *testing.T) {
	r := view.NewRenderer()
	payload, ok := r.Render("unknown", view.Data{}, view.Options{})
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestRender_Inventory_FiltraPorBusquedaSinAcentos(t *testing.T) {
	data := view.Data{
		Products: []entity.Product{
			{ID: "1", Name: "Café Arabica", SKU: "CAF-1", Category: "Boissons"},
			{ID: "2", Name: "Pain", SKU: "PAI-1", Category: "Boulangerie"},
			{ID: "3", Name: "Thé vert", SKU: "THE-1", Category: "Boissons"},
		},
		Suppliers: []entity.Supplier{{ID: "s", Name: "Textiles SARL"}},
	}
	r := view.NewRenderer()

	payload, ok := r.Render(view.Inventory, data, view.Options{Query: "cafe"})
	require.True(t, ok)
	inv := payload.(dto.InventoryView)
	require.Len(t, inv.Products, 1)
	assert.Equal(t, "1", inv.Products[0].ID)
	assert.Len(t, inv.Suppliers, 1)

	payload, _ = r.Render(view.Inventory, data, view.Options{Query: "BOISSONS"})
	assert.Len(t, payload.(dto.InventoryView).Products, 2)

	payload, _ = r.Render(view.Inventory, data, view.Options{Query: "  "})
	assert.Len(t, payload.(dto.InventoryView).Products, 3)
}

func TestRender_SettingsYPOS(t *testing.T) {
	data := view.Data{
		Settings: entity.DefaultStoreSettings(),
		Products: []entity.Product{{ID: "1", Name: "Pain", SKU: "P", Price: decimal.NewFromInt(2)}},
	}
	r := view.NewRenderer()

	payload, ok := r.Render(view.Settings, data, view.Options{})
	require.True(t, ok)
	sv := payload.(dto.SettingsView)
	assert.Equal(t, "Elikia", sv.Settings.Name)
	assert.Equal(t, 1, sv.ProductCount)
	assert.Equal(t, 0, sv.TransactionCount)

	payload, ok = r.Render(view.POS, data, view.Options{})
	require.True(t, ok)
	assert.Len(t, payload.(dto.POSView).Products, 1)

	payload, ok = r.Render(view.Suppliers, data, view.Options{})
	require.True(t, ok)
	assert.NotNil(t, payload.(dto.SuppliersView).Suppliers)
}

func TestRender_Reports(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	data := view.Data{
		Products: []entity.Product{
			{ID: "p1", Name: "T-Shirt", SKU: "TSH", Category: "Textile"},
		},
		Transactions: []entity.Transaction{
			{ID: "t1", Date: now.Add(-time.Hour), Total: decimal.RequireFromString("39.98"), Items: []entity.CartItem{
				{ProductID: "p1", Price: decimal.RequireFromString("19.99"), Quantity: 2},
			}},
			{ID: "t2", Date: now.AddDate(0, 0, -1), Total: decimal.NewFromInt(5), Items: []entity.CartItem{
				{ProductID: "borrado", Price: decimal.NewFromInt(5), Quantity: 1},
			}},
			{ID: "viejo", Date: now.AddDate(0, 0, -60), Total: decimal.NewFromInt(100)},
		},
	}
	r := view.NewRenderer().WithClock(func() time.Time { return now })

	payload, ok := r.Render(view.Reports, data, view.Options{})
	require.True(t, ok)
	rep := payload.(dto.ReportsView)

	require.Len(t, rep.Daily, 30)
	last := rep.Daily[29]
	assert.Equal(t, "2026-03-15", last.Day)
	assert.True(t, last.Sales.Equal(decimal.RequireFromString("39.98")))
	assert.Equal(t, 1, last.TransactionCount)
	assert.True(t, rep.Daily[28].Sales.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "2026-02-14", rep.Daily[0].Day)

	require.Len(t, rep.ByCategory, 2)
	assert.Equal(t, "Textile", rep.ByCategory[0].Category)
	assert.Equal(t, 2, rep.ByCategory[0].Units)
	assert.Equal(t, "General", rep.ByCategory[1].Category)
}
