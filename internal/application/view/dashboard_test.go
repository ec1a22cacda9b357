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

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDashboard_VentasYMargen(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	tshirt := entity.Product{ID: "p1", Name: "T-Shirt", SKU: "TSH", Price: d("19.99"), PurchasePrice: d("8"), Stock: 10}
	pain := entity.Product{ID: "p2", Name: "Pain", SKU: "PAI", Price: d("2.5"), PurchasePrice: d("1"), Stock: 3}

	data := view.Data{
		Products: []entity.Product{tshirt, pain},
		Transactions: []entity.Transaction{
			// hoy
			{ID: "t1", Date: now.Add(-2 * time.Hour), Total: d("39.98"), Items: []entity.CartItem{
				{ProductID: "p1", SKU: "TSH", Price: d("19.99"), Quantity: 2},
			}},
			// este mes
			{ID: "t2", Date: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Total: d("10"), Items: []entity.CartItem{
				{ProductID: "p2", SKU: "PAI", Price: d("2.5"), Quantity: 4},
			}},
			// mes anterior, no cuenta
			{ID: "t3", Date: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC), Total: d("100")},
		},
	}

	r := view.NewRenderer().WithClock(func() time.Time { return now })
	payload, ok := r.Render(view.Dashboard, data, view.Options{})
	require.True(t, ok)
	db := payload.(dto.DashboardView)

	assert.Equal(t, "39.98", db.TodaySales.StringFixed(2))
	assert.Equal(t, "23.98", db.TodayMargin.StringFixed(2))
	assert.Equal(t, "49.98", db.MonthlySales.StringFixed(2))
	assert.Equal(t, "29.98", db.MonthlyMargin.StringFixed(2))
	assert.Equal(t, 3, db.TransactionCount)
	assert.Equal(t, "83.00", db.InventoryValue.StringFixed(2))
	assert.Equal(t, "Mars 2026", db.DateLabel)

	require.Len(t, db.LowStock, 1)
	assert.Equal(t, "p2", db.LowStock[0].ID)

	require.Len(t, db.TopProducts, 2)
	assert.Equal(t, "TSH", db.TopProducts[0].SKU)
	assert.Equal(t, 2, db.TopProducts[0].QuantitySold)
	assert.Equal(t, "59.98", db.TopProducts[0].MarginPercentage.StringFixed(2))
	assert.Equal(t, "PAI", db.TopProducts[1].SKU)
	assert.Equal(t, "60.00", db.TopProducts[1].MarginPercentage.StringFixed(2))
}

func TestDashboard_SinDatos(t *testing.T) {
	r := view.NewRenderer().WithClock(func() time.Time { return time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) })
	payload, ok := r.Render(view.Dashboard, view.Data{}, view.Options{})
	require.True(t, ok)
	db := payload.(dto.DashboardView)

	assert.True(t, db.TodaySales.IsZero())
	assert.True(t, db.MonthlyMargin.IsZero())
	assert.Empty(t, db.TopProducts)
	assert.NotNil(t, db.LowStock)
	assert.Equal(t, "Janvier 2026", db.DateLabel)
}
