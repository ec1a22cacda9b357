// Package view resuelve qué vista ve cada rol y arma los datos de solo lectura de cada vista.
package view

import (
	"time"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// Claves de vista.
const (
	Dashboard = "dashboard"
	Reports   = "reports"
	Settings  = "settings"
	POS       = "pos"
	Inventory = "inventory"
	Suppliers = "suppliers"
)

var known = map[string]struct{}{
	Dashboard: {}, Reports: {}, Settings: {}, POS: {}, Inventory: {}, Suppliers: {},
}

// InitialView vista inicial según el rol, evaluada una vez por login.
func InitialView(role entity.Role) string {
	switch role {
	case entity.RoleCaisse:
		return POS
	case entity.RoleGestock:
		return Inventory
	default:
		return Dashboard
	}
}

// Exists indica si hay una vista registrada para key.
func Exists(key string) bool {
	_, ok := known[key]
	return ok
}

// Data colecciones de solo lectura que reciben las vistas.
type Data struct {
	Settings     entity.StoreSettings
	Suppliers    []entity.Supplier
	Products     []entity.Product
	Transactions []entity.Transaction
}

// Options parámetros opcionales de una vista (hoy solo la búsqueda del inventario).
type Options struct {
	Query string
}

// Renderer arma el payload de cada vista.
type Renderer struct {
	now               func() time.Time
	lowStockThreshold int
}

// NewRenderer construye el renderer con el reloj del sistema.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now, lowStockThreshold: 5}
}

// WithClock fija el reloj (tests).
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render devuelve el payload de la vista key. Para claves desconocidas devuelve (nil, false):
// la vista no renderiza nada.
func (r *Renderer) Render(key string, data Data, opts Options) (any, bool) {
	switch key {
	case Dashboard:
		return r.dashboard(data), true
	case Reports:
		return r.reports(data), true
	case Settings:
		return dto.SettingsView{
			Settings:         dto.NewStoreSettingsDTO(data.Settings),
			ProductCount:     len(data.Products),
			SupplierCount:    len(data.Suppliers),
			TransactionCount: len(data.Transactions),
		}, true
	case POS:
		return dto.POSView{
			Settings: dto.NewStoreSettingsDTO(data.Settings),
			Products: dto.NewProductList(data.Products),
		}, true
	case Inventory:
		return dto.InventoryView{
			Query:     opts.Query,
			Products:  dto.NewProductList(FilterProducts(data.Products, opts.Query)),
			Suppliers: dto.NewSupplierList(data.Suppliers),
		}, true
	case Suppliers:
		return dto.SuppliersView{Suppliers: dto.NewSupplierList(data.Suppliers)}, true
	default:
		return nil, false
	}
}
