package mapper

import (
	"strings"

	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

// ProductFromRow fila -> entidad. Categoría vacía = General, imagen vacía = placeholder,
// numéricos ausentes = 0.
func ProductFromRow(row repository.Row) entity.Product {
	p := entity.Product{
		ID:            stringValue(row["id"]),
		Name:          stringValue(row["name"]),
		Category:      stringValue(row["category"]),
		Price:         decimalValue(row["price"]),
		PurchasePrice: decimalValue(row["purchase_price"]),
		Stock:         intValue(row["stock"]),
		SKU:           stringValue(row["sku"]),
		Description:   stringValue(row["description"]),
		ImageURL:      stringValue(row["image_url"]),
		SupplierID:    stringValue(row["supplier_id"]),
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = DefaultCategory
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		p.ImageURL = PlaceholderImageURL
	}
	return p
}

// ProductToRow entidad -> fila. supplier_id vacío se normaliza a nil.
func ProductToRow(p entity.Product) repository.Row {
	category := p.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	image := p.ImageURL
	if strings.TrimSpace(image) == "" {
		image = PlaceholderImageURL
	}
	row := repository.Row{
		"name":           p.Name,
		"category":       category,
		"price":          p.Price,
		"purchase_price": p.PurchasePrice,
		"stock":          p.Stock,
		"sku":            p.SKU,
		"description":    p.Description,
		"image_url":      image,
		"supplier_id":    nullableString(p.SupplierID),
	}
	return withID(row, p.ID)
}
