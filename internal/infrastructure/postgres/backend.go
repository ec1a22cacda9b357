package postgres

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var (
	_ repository.Backend  = (*Backend)(nil)
	_ repository.Migrator = (*Backend)(nil)
)

// Backend CRUD genérico por tabla sobre la base de Supabase. Los nombres de tabla y columna
// se sanean con pgx.Identifier; los valores van siempre como parámetros.
type Backend struct {
	q    Querier
	pool *pgxpool.Pool // nil cuando el backend está atado a una tx
}

// NewBackend construye el backend sobre el pool. Close cierra el pool.
func NewBackend(pool *pgxpool.Pool) *Backend {
	return &Backend{q: pool, pool: pool}
}

func newTxBackend(tx pgx.Tx) *Backend {
	return &Backend{q: tx}
}

func (b *Backend) Name() string { return "supabase" }

func table(collection string) (string, error) {
	if !slices.Contains(repository.Collections, collection) {
		return "", fmt.Errorf("tabla %q: %w", collection, domain.ErrSchemaMissing)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
}

// sortedColumns orden determinista de columnas para que el SQL generado sea estable.
func sortedColumns(row repository.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func (b *Backend) FetchAll(ctx context.Context, collection string, opts repository.FetchOptions) ([]repository.Row, error) {
	tbl, err := table(collection)
	if err != nil {
		return nil, err
	}
	sql := "SELECT * FROM " + tbl
	if opts.OrderBy != "" {
		dir := "ASC"
		if opts.Descending {
			dir = "DESC"
		}
		sql += " ORDER BY " + pgx.Identifier{opts.OrderBy}.Sanitize() + " " + dir
	}

	rows, err := b.q.Query(ctx, sql)
	if err != nil {
		return nil, classify("select "+collection, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify("select "+collection, err)
	}
	out := make([]repository.Row, 0, len(maps))
	for _, m := range maps {
		out = append(out, repository.Row(m))
	}
	return out, nil
}

// Insert devuelve la fila completa (RETURNING *), con el id generado por la base.
func (b *Backend) Insert(ctx context.Context, collection string, row repository.Row) (repository.Row, error) {
	tbl, err := table(collection)
	if err != nil {
		return nil, err
	}
	var sql string
	var args []any
	if len(row) == 0 {
		sql = "INSERT INTO " + tbl + " DEFAULT VALUES RETURNING *"
	} else {
		cols := sortedColumns(row)
		names := make([]string, len(cols))
		params := make([]string, len(cols))
		args = make([]any, len(cols))
		for i, c := range cols {
			names[i] = pgx.Identifier{c}.Sanitize()
			params[i] = fmt.Sprintf("$%d", i+1)
			args[i] = row[c]
		}
		sql = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			tbl, strings.Join(names, ", "), strings.Join(params, ", "))
	}

	rows, err := b.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify("insert "+collection, err)
	}
	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify("insert "+collection, err)
	}
	return repository.Row(created), nil
}

// Update actualización parcial por id. El id se compara como texto: un id mal formado es
// simplemente inexistente.
func (b *Backend) Update(ctx context.Context, collection, id string, row repository.Row) error {
	tbl, err := table(collection)
	if err != nil {
		return err
	}
	row = row.WithoutID()
	if len(row) == 0 {
		return fmt.Errorf("update %s: %w: sin columnas", collection, domain.ErrInvalidInput)
	}
	cols := sortedColumns(row)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{c}.Sanitize(), i+1)
		args = append(args, row[c])
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id::text = $%d", tbl, strings.Join(sets, ", "), len(args))

	tag, err := b.q.Exec(ctx, sql, args...)
	if err != nil {
		return classify("update "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	tbl, err := table(collection)
	if err != nil {
		return err
	}
	tag, err := b.q.Exec(ctx, "DELETE FROM "+tbl+" WHERE id::text = $1", id)
	if err != nil {
		return classify("delete "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

func (b *Backend) Close() error {
	if b.pool != nil {
		b.pool.Close()
	}
	return nil
}
