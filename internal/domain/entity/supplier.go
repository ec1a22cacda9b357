package entity

import "strings"

// Supplier proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
}

// Valid el nombre es obligatorio.
func (s Supplier) Valid() bool {
	return strings.TrimSpace(s.Name) != ""
}
