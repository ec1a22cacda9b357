package view

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

type productAgg struct {
	product  entity.Product
	quantity int
	revenue  decimal.Decimal
	cost     decimal.Decimal
}

// dashboard resumen del día y del mes en curso sobre las transacciones en memoria.
// El costo de cada línea usa el precio de compra actual del producto.
func (r *Renderer) dashboard(data Data) dto.DashboardView {
	now := r.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	byID := indexProducts(data.Products)

	todaySales, todayCost := decimal.Zero, decimal.Zero
	monthSales, monthCost := decimal.Zero, decimal.Zero
	aggs := make(map[string]*productAgg)

	for _, tx := range data.Transactions {
		if tx.Date.Before(monthStart) || tx.Date.After(todayEnd) {
			continue
		}
		cost := transactionCost(tx, byID)
		monthSales = monthSales.Add(tx.Total)
		monthCost = monthCost.Add(cost)
		if !tx.Date.Before(todayStart) {
			todaySales = todaySales.Add(tx.Total)
			todayCost = todayCost.Add(cost)
		}
		for _, it := range tx.Items {
			a, ok := aggs[it.ProductID]
			if !ok {
				p, known := byID[it.ProductID]
				if !known {
					p = entity.Product{ID: it.ProductID, SKU: it.SKU, Name: it.Name}
				}
				a = &productAgg{product: p, revenue: decimal.Zero, cost: decimal.Zero}
				aggs[it.ProductID] = a
			}
			a.quantity += it.Quantity
			a.revenue = a.revenue.Add(it.Subtotal())
			a.cost = a.cost.Add(a.product.PurchasePrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	inventoryValue := decimal.Zero
	lowStock := make([]entity.Product, 0)
	for _, p := range data.Products {
		inventoryValue = inventoryValue.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.Stock <= r.lowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}

	return dto.DashboardView{
		TodaySales:       todaySales.Round(2),
		TodayMargin:      todaySales.Sub(todayCost).Round(2),
		MonthlySales:     monthSales.Round(2),
		MonthlyMargin:    monthSales.Sub(monthCost).Round(2),
		TransactionCount: len(data.Transactions),
		InventoryValue:   inventoryValue.Round(2),
		LowStock:         dto.NewProductList(lowStock),
		TopProducts:      topProducts(aggs, dashboardTopProducts),
		DateLabel:        monthLabel(now),
	}
}

func indexProducts(products []entity.Product) map[string]entity.Product {
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

func transactionCost(tx entity.Transaction, byID map[string]entity.Product) decimal.Decimal {
	cost := decimal.Zero
	for _, it := range tx.Items {
		if p, ok := byID[it.ProductID]; ok {
			cost = cost.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return cost
}

func topProducts(aggs map[string]*productAgg, limit int) []dto.TopProductDTO {
	list := make([]*productAgg, 0, len(aggs))
	for _, a := range aggs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := list[i].revenue.Cmp(list[j].revenue); c != 0 {
			return c > 0
		}
		return list[i].product.SKU < list[j].product.SKU
	})
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]dto.TopProductDTO, 0, len(list))
	for _, a := range list {
		pct := decimal.Zero
		if a.revenue.IsPositive() {
			pct = a.revenue.Sub(a.cost).Div(a.revenue).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, dto.TopProductDTO{
			ProductID:        a.product.ID,
			SKU:              a.product.SKU,
			Name:             a.product.Name,
			QuantitySold:     a.quantity,
			TotalRevenue:     a.revenue.Round(2),
			MarginPercentage: pct,
		})
	}
	return out
}

// monthLabel etiqueta legible del mes, ej: "Mars 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
