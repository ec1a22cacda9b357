package view

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// fold minúsculas y sin diacríticos: "Café Arabica" -> "cafe arabica".
// El transformer tiene estado, se crea uno por llamada.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// FilterProducts filtra por nombre, SKU o categoría. Query vacía devuelve todos.
func FilterProducts(products []entity.Product, query string) []entity.Product {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold(p.Name), q) ||
			strings.Contains(fold(p.SKU), q) ||
			strings.Contains(fold(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
