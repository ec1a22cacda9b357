package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/elikia-api/internal/application/mapper"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

// Report resultado de una importación.
type Report struct {
	Inserted int
	Existing int // SKU ya presente en el backend o repetido en el archivo
}

// Import inserta los productos cuyo SKU no existe todavía. Se puede ejecutar varias veces.
func Import(ctx context.Context, backend repository.Backend, products []entity.Product) (Report, error) {
	rows, err := backend.FetchAll(ctx, repository.CollectionProducts, repository.FetchOptions{})
	if err != nil {
		return Report{}, fmt.Errorf("importar catálogo: %w", err)
	}
	seen := make(map[string]struct{}, len(rows)+len(products))
	for _, row := range rows {
		seen[skuKey(mapper.ProductFromRow(row).SKU)] = struct{}{}
	}

	var rep Report
	for _, p := range products {
		key := skuKey(p.SKU)
		if _, ok := seen[key]; ok {
			rep.Existing++
			continue
		}
		p.ID = ""
		if _, err := backend.Insert(ctx, repository.CollectionProducts, mapper.ProductToRow(p).WithoutID()); err != nil {
			return rep, fmt.Errorf("importar %s: %w", p.SKU, err)
		}
		seen[key] = struct{}{}
		rep.Inserted++
	}
	return rep, nil
}

// EnsureStoreSettings escribe la configuración por defecto si la colección está vacía.
// Devuelve true si la creó.
func EnsureStoreSettings(ctx context.Context, backend repository.Backend) (bool, error) {
	rows, err := backend.FetchAll(ctx, repository.CollectionStoreSettings, repository.FetchOptions{})
	if err != nil {
		return false, fmt.Errorf("configuración inicial: %w", err)
	}
	if len(rows) > 0 {
		return false, nil
	}
	if _, err := backend.Insert(ctx, repository.CollectionStoreSettings, mapper.SettingsToRow(entity.DefaultStoreSettings()).WithoutID()); err != nil {
		return false, fmt.Errorf("configuración inicial: %w", err)
	}
	return true, nil
}

func skuKey(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
