package dto

import "github.com/shopspring/decimal"

// DashboardView vista inicial del ADMIN.
// Métricas del día y del mes en curso calculadas sobre las transacciones cargadas.
type DashboardView struct {
	TodaySales    decimal.Decimal `json:"todaySales"`
	TodayMargin   decimal.Decimal `json:"todayMargin"` // ventas - costo de compra
	MonthlySales  decimal.Decimal `json:"monthlySales"`
	MonthlyMargin decimal.Decimal `json:"monthlyMargin"`

	TransactionCount int               `json:"transactionCount"`
	InventoryValue   decimal.Decimal   `json:"inventoryValue"` // stock * precio de compra
	LowStock         []ProductResponse `json:"lowStock"`
	TopProducts      []TopProductDTO   `json:"topProducts"` // top 5 del mes por ingreso

	DateLabel string `json:"dateLabel"` // ej: "Mars 2026"
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID        string          `json:"productId"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	QuantitySold     int             `json:"quantitySold"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	MarginPercentage decimal.Decimal `json:"marginPercentage"` // (ingreso - costo) / ingreso * 100
}
