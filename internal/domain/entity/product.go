package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// ID lo asigna el backend al crear; SupplierID vacío significa "sin proveedor".
type Product struct {
	ID            string
	Name          string
	Category      string
	Price         decimal.Decimal // precio de venta
	PurchasePrice decimal.Decimal // precio de compra
	Stock         int
	SKU           string
	Description   string
	ImageURL      string
	SupplierID    string
}

// Margin margen unitario: precio de venta - precio de compra.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.PurchasePrice)
}

// Valid verifica los campos obligatorios antes de intentar persistir.
func (p Product) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.SKU) != ""
}
