// Package memory implementa el backend en memoria: colecciones registradas explícitamente,
// orden de inserción estable y orden en servidor. Se usa en desarrollo y en tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var (
	_ repository.Backend  = (*Backend)(nil)
	_ repository.Migrator = (*Backend)(nil)
)

type collection struct {
	order []string
	rows  map[string]repository.Row
}

// Backend almacén en memoria seguro para uso concurrente.
type Backend struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// New crea el backend con las colecciones indicadas ya registradas. Sin argumentos no hay
// ninguna: FetchAll devuelve ErrSchemaMissing hasta que se ejecute Migrate.
func New(collections ...string) *Backend {
	b := &Backend{collections: make(map[string]*collection)}
	b.EnsureCollections(collections...)
	return b
}

func (b *Backend) Name() string { return "memory" }

// EnsureCollections registra las colecciones que falten.
func (b *Backend) EnsureCollections(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range names {
		if _, ok := b.collections[n]; !ok {
			b.collections[n] = &collection{rows: make(map[string]repository.Row)}
		}
	}
}

// Migrate registra las cuatro colecciones de la aplicación.
func (b *Backend) Migrate(_ context.Context) error {
	b.EnsureCollections(repository.Collections...)
	return nil
}

func (b *Backend) get(name string) (*collection, error) {
	c, ok := b.collections[name]
	if !ok {
		return nil, fmt.Errorf("memory %s: %w", name, domain.ErrSchemaMissing)
	}
	return c, nil
}

func (b *Backend) FetchAll(ctx context.Context, name string, opts repository.FetchOptions) ([]repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	c, err := b.get(name)
	if err != nil {
		b.mu.RUnlock()
		return nil, err
	}
	out := make([]repository.Row, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneRow(c.rows[id]))
	}
	b.mu.RUnlock()

	if opts.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compareValues(out[i][opts.OrderBy], out[j][opts.OrderBy])
			if opts.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return out, nil
}

// Insert usa el id de la fila si viene; si no, genera un uuid.
func (b *Backend) Insert(ctx context.Context, name string, row repository.Row) (repository.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.get(name)
	if err != nil {
		return nil, err
	}
	id, _ := row["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := c.rows[id]; exists {
		return nil, fmt.Errorf("memory %s/%s: %w", name, id, domain.ErrDuplicate)
	}
	stored := cloneRow(row)
	stored["id"] = id
	c.rows[id] = stored
	c.order = append(c.order, id)
	return cloneRow(stored), nil
}

func (b *Backend) Update(ctx context.Context, name, id string, row repository.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.get(name)
	if err != nil {
		return err
	}
	stored, ok := c.rows[id]
	if !ok {
		return fmt.Errorf("memory %s/%s: %w", name, id, domain.ErrNotFound)
	}
	for k, v := range row {
		if k == "id" {
			continue
		}
		stored[k] = cloneValue(v)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, name, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.get(name)
	if err != nil {
		return err
	}
	if _, ok := c.rows[id]; !ok {
		return fmt.Errorf("memory %s/%s: %w", name, id, domain.ErrNotFound)
	}
	delete(c.rows, id)
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (b *Backend) Close() error { return nil }

func cloneRow(r repository.Row) repository.Row {
	out := make(repository.Row, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case repository.Row:
		return cloneRow(x)
	case map[string]any:
		return map[string]any(cloneRow(x))
	case []map[string]any:
		out := make([]map[string]any, len(x))
		for i, m := range x {
			out[i] = cloneRow(m)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// compareValues compara fechas, decimales y números por valor; el resto como texto.
func compareValues(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if da, ok := asDecimal(a); ok {
		if db, ok := asDecimal(b); ok {
			return da.Cmp(db)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	}
	return decimal.Decimal{}, false
}
