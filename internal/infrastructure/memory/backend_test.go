package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/internal/infrastructure/memory"
)

func TestBackend_ColeccionNoRegistradaEsSchemaFaltante(t *testing.T) {
	b := memory.New()
	_, err := b.FetchAll(context.Background(), repository.CollectionProducts, repository.FetchOptions{})
	assert.ErrorIs(t, err, domain.ErrSchemaMissing)

	require.NoError(t, b.Migrate(context.Background()))
	rows, err := b.FetchAll(context.Background(), repository.CollectionProducts, repository.FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBackend_CRUD(t *testing.T) {
	ctx := context.Background()
	b := memory.New(repository.Collections...)

	created, err := b.Insert(ctx, repository.CollectionProducts, repository.Row{"name": "Pain", "sku": "PAI"})
	require.NoError(t, err)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	require.NoError(t, b.Update(ctx, repository.CollectionProducts, id, repository.Row{"stock": 4}))
	rows, err := b.FetchAll(ctx, repository.CollectionProducts, repository.FetchOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0]["stock"])
	assert.Equal(t, "Pain", rows[0]["name"])

	assert.ErrorIs(t, b.Update(ctx, repository.CollectionProducts, "nope", repository.Row{}), domain.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, repository.CollectionProducts, "nope"), domain.ErrNotFound)

	require.NoError(t, b.Delete(ctx, repository.CollectionProducts, id))
	rows, _ = b.FetchAll(ctx, repository.CollectionProducts, repository.FetchOptions{})
	assert.Empty(t, rows)
}

func TestBackend_IDExplicitoDuplicado(t *testing.T) {
	ctx := context.Background()
	b := memory.New(repository.CollectionSuppliers)
	_, err := b.Insert(ctx, repository.CollectionSuppliers, repository.Row{"id": "s-1", "name": "A"})
	require.NoError(t, err)
	_, err = b.Insert(ctx, repository.CollectionSuppliers, repository.Row{"id": "s-1", "name": "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestBackend_OrdenPorFechaDescendente(t *testing.T) {
	ctx := context.Background()
	b := memory.New(repository.CollectionTransactions)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []int{2, 0, 5} {
		_, err := b.Insert(ctx, repository.CollectionTransactions, repository.Row{
			"id": string(rune('a' + i)), "date": base.AddDate(0, 0, offset),
		})
		require.NoError(t, err)
	}

	rows, err := b.FetchAll(ctx, repository.CollectionTransactions, repository.FetchOptions{OrderBy: "date", Descending: true})
	require.NoError(t, err)
	var ids []string
	for _, r := range rows {
		ids = append(ids, r["id"].(string))
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestBackend_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	b := memory.New(repository.CollectionTransactions)
	items := []map[string]any{{"product_id": "p-1", "quantity": 1}}
	_, err := b.Insert(ctx, repository.CollectionTransactions, repository.Row{"id": "t", "items": items})
	require.NoError(t, err)

	items[0]["quantity"] = 99
	rows, _ := b.FetchAll(ctx, repository.CollectionTransactions, repository.FetchOptions{})
	rows[0]["items"].([]map[string]any)[0]["quantity"] = 50

	again, _ := b.FetchAll(ctx, repository.CollectionTransactions, repository.FetchOptions{})
	assert.Equal(t, 1, again[0]["items"].([]map[string]any)[0]["quantity"])
}
