package view

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/mapper"
)

const reportDays = 30

// reports ventas diarias de los últimos 30 días (incluye días sin ventas) e ingreso por categoría.
func (r *Renderer) reports(data Data) dto.ReportsView {
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	first := today.AddDate(0, 0, -(reportDays - 1))

	daily := make([]dto.DailySalesDTO, reportDays)
	index := make(map[string]int, reportDays)
	for i := 0; i < reportDays; i++ {
		day := first.AddDate(0, 0, i).Format("2006-01-02")
		daily[i] = dto.DailySalesDTO{Day: day, Sales: decimal.Zero}
		index[day] = i
	}

	byID := indexProducts(data.Products)
	categories := make(map[string]*dto.CategorySalesDTO)

	for _, tx := range data.Transactions {
		if i, ok := index[tx.Date.In(now.Location()).Format("2006-01-02")]; ok {
			daily[i].Sales = daily[i].Sales.Add(tx.Total)
			daily[i].TransactionCount++
		}
		for _, it := range tx.Items {
			category := mapper.DefaultCategory
			if p, ok := byID[it.ProductID]; ok && p.Category != "" {
				category = p.Category
			}
			c, ok := categories[category]
			if !ok {
				c = &dto.CategorySalesDTO{Category: category, Revenue: decimal.Zero}
				categories[category] = c
			}
			c.Revenue = c.Revenue.Add(it.Subtotal())
			c.Units += it.Quantity
		}
	}

	byCategory := make([]dto.CategorySalesDTO, 0, len(categories))
	for _, c := range categories {
		byCategory = append(byCategory, *c)
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if c := byCategory[i].Revenue.Cmp(byCategory[j].Revenue); c != 0 {
			return c > 0
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	return dto.ReportsView{Daily: daily, ByCategory: byCategory}
}
