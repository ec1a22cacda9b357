package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// ProductRequest entrada para crear o actualizar un producto (forma UI, camelCase).
type ProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Stock         int             `json:"stock"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	SupplierID    string          `json:"supplierId"`
}

// ToEntity arma la entidad; el id lo pone el caller (vacío al crear).
func (r ProductRequest) ToEntity(id string) entity.Product {
	return entity.Product{
		ID:            id,
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price,
		PurchasePrice: r.PurchasePrice,
		Stock:         r.Stock,
		SKU:           r.SKU,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		SupplierID:    r.SupplierID,
	}
}

// ProductResponse salida de un producto, con el margen calculado.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Margin        decimal.Decimal `json:"margin"`
	Stock         int             `json:"stock"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	SupplierID    string          `json:"supplierId,omitempty"`
}

func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		Price:         p.Price,
		PurchasePrice: p.PurchasePrice,
		Margin:        p.Margin(),
		Stock:         p.Stock,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		SupplierID:    p.SupplierID,
	}
}

func NewProductList(list []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
