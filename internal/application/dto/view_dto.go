package dto

import "github.com/shopspring/decimal"

// ReportsView ventas por día y por categoría.
type ReportsView struct {
	Daily      []DailySalesDTO    `json:"daily"`
	ByCategory []CategorySalesDTO `json:"byCategory"`
}

type DailySalesDTO struct {
	Day              string          `json:"day"` // 2006-01-02
	Sales            decimal.Decimal `json:"sales"`
	TransactionCount int             `json:"transactionCount"`
}

type CategorySalesDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Units    int             `json:"units"`
}

// SettingsView configuración más conteos de colecciones.
type SettingsView struct {
	Settings         StoreSettingsDTO `json:"settings"`
	ProductCount     int              `json:"productCount"`
	SupplierCount    int              `json:"supplierCount"`
	TransactionCount int              `json:"transactionCount"`
}

// POSView datos del punto de venta.
type POSView struct {
	Settings StoreSettingsDTO  `json:"settings"`
	Products []ProductResponse `json:"products"`
}

// InventoryView productos (filtrados por Query si viene) y proveedores para el selector.
type InventoryView struct {
	Query     string             `json:"query,omitempty"`
	Products  []ProductResponse  `json:"products"`
	Suppliers []SupplierResponse `json:"suppliers"`
}

// SuppliersView gestión de proveedores.
type SuppliersView struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}
