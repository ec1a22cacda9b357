package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea de venta embebida en la transacción (secuencia ordenada).
type CartItem struct {
	ProductID string
	Name      string
	SKU       string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal precio * cantidad.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction venta registrada por el punto de venta. Solo lectura en este servicio.
type Transaction struct {
	ID        string
	Date      time.Time
	Total     decimal.Decimal
	CashierID string
	Items     []CartItem
}
