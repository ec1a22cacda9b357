// Package redisstore implementa el backend sobre Redis como almacén de documentos.
//
// Claves:
//
//	{prefix}:collections        set con las colecciones registradas
//	{prefix}:col:{name}         hash id -> documento JSON
//	{prefix}:idx:{name}         sorted set id -> secuencia de inserción
//	{prefix}:seq                contador de inserciones
//
// Redis no ordena por campos del documento: FetchAll con OrderBy devuelve
// ErrOrderingUnsupported y el caller ordena en memoria.
package redisstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/config"
)

var (
	_ repository.Backend  = (*Backend)(nil)
	_ repository.Migrator = (*Backend)(nil)
)

// Backend documentos JSON en hashes de Redis.
type Backend struct {
	client *redis.Client
	prefix string
}

// NewClient crea el cliente a partir de REDIS_URL.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w: %w", domain.ErrConfigurationMissing, err)
	}
	return redis.NewClient(opts), nil
}

func NewBackend(client *redis.Client, prefix string) *Backend {
	if prefix == "" {
		prefix = "elikia"
	}
	return &Backend{client: client, prefix: prefix}
}

func (b *Backend) Name() string { return "redis" }

func (b *Backend) collectionsKey() string     { return b.prefix + ":collections" }
func (b *Backend) seqKey() string             { return b.prefix + ":seq" }
func (b *Backend) hashKey(name string) string { return b.prefix + ":col:" + name }
func (b *Backend) idxKey(name string) string  { return b.prefix + ":idx:" + name }

// Ping verifica la conexión.
func (b *Backend) Ping(ctx context.Context) error {
	return classify("redis ping", b.client.Ping(ctx).Err())
}

// EnsureCollections registra las colecciones (seed).
func (b *Backend) EnsureCollections(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	members := make([]any, len(names))
	for i, n := range names {
		members[i] = n
	}
	return classify("redis sadd", b.client.SAdd(ctx, b.collectionsKey(), members...).Err())
}

// Migrate registra las cuatro colecciones de la aplicación.
func (b *Backend) Migrate(ctx context.Context) error {
	return b.EnsureCollections(ctx, repository.Collections...)
}

func (b *Backend) requireCollection(ctx context.Context, name string) error {
	ok, err := b.client.SIsMember(ctx, b.collectionsKey(), name).Result()
	if err != nil {
		return classify("redis "+name, err)
	}
	if !ok {
		return fmt.Errorf("redis %s: %w", name, domain.ErrSchemaMissing)
	}
	return nil
}

func (b *Backend) FetchAll(ctx context.Context, name string, opts repository.FetchOptions) ([]repository.Row, error) {
	if opts.OrderBy != "" {
		return nil, fmt.Errorf("redis %s order by %s: %w", name, opts.OrderBy, domain.ErrOrderingUnsupported)
	}
	if err := b.requireCollection(ctx, name); err != nil {
		return nil, err
	}
	ids, err := b.client.ZRange(ctx, b.idxKey(name), 0, -1).Result()
	if err != nil {
		return nil, classify("redis zrange "+name, err)
	}
	if len(ids) == 0 {
		return []repository.Row{}, nil
	}
	vals, err := b.client.HMGet(ctx, b.hashKey(name), ids...).Result()
	if err != nil {
		return nil, classify("redis hmget "+name, err)
	}
	out := make([]repository.Row, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // índice huérfano
		}
		row, err := decode(s)
		if err != nil {
			return nil, fmt.Errorf("redis %s/%s: %w", name, ids[i], err)
		}
		row["id"] = ids[i]
		out = append(out, row)
	}
	return out, nil
}

// insertScript indexa y guarda el documento en una sola operación atómica. El índice va
// antes que el hash: si algo falla, queda a lo sumo un índice huérfano, que FetchAll ignora.
//
// KEYS: hash, índice, secuencia. ARGV: id, documento.
var insertScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
  return 0
end
local seq = redis.call('INCR', KEYS[3])
redis.call('ZADD', KEYS[2], seq, ARGV[1])
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return 1
`)

func (b *Backend) Insert(ctx context.Context, name string, row repository.Row) (repository.Row, error) {
	if err := b.requireCollection(ctx, name); err != nil {
		return nil, err
	}
	id, _ := row["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(row.WithoutID())
	if err != nil {
		return nil, fmt.Errorf("redis %s: %w: %w", name, domain.ErrInvalidInput, err)
	}
	created, err := insertScript.Run(ctx, b.client,
		[]string{b.hashKey(name), b.idxKey(name), b.seqKey()}, id, payload).Int64()
	if err != nil {
		return nil, classify("redis insert "+name, err)
	}
	if created == 0 {
		return nil, fmt.Errorf("redis %s/%s: %w", name, id, domain.ErrDuplicate)
	}

	out, err := decode(string(payload))
	if err != nil {
		return nil, err
	}
	out["id"] = id
	return out, nil
}

// Update lee, fusiona y escribe el documento dentro de un WATCH: si otro cliente lo modificó
// entre medio, la transacción se reintenta una vez.
func (b *Backend) Update(ctx context.Context, name, id string, row repository.Row) error {
	if err := b.requireCollection(ctx, name); err != nil {
		return err
	}
	key := b.hashKey(name)
	apply := func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis %s/%s: %w", name, id, domain.ErrNotFound)
		}
		if err != nil {
			return classify("redis hget "+name, err)
		}
		doc, err := decode(current)
		if err != nil {
			return err
		}
		for k, v := range row.WithoutID() {
			doc[k] = v
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("redis %s: %w: %w", name, domain.ErrInvalidInput, err)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, id, payload)
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = b.client.Watch(ctx, apply, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil && !isDomain(err) {
		return classify("redis update "+name, err)
	}
	return err
}

func (b *Backend) Delete(ctx context.Context, name, id string) error {
	if err := b.requireCollection(ctx, name); err != nil {
		return err
	}
	n, err := b.client.HDel(ctx, b.hashKey(name), id).Result()
	if err != nil {
		return classify("redis hdel "+name, err)
	}
	if n == 0 {
		return fmt.Errorf("redis %s/%s: %w", name, id, domain.ErrNotFound)
	}
	if err := b.client.ZRem(ctx, b.idxKey(name), id).Err(); err != nil {
		return classify("redis zrem "+name, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}

// decode conserva los números como json.Number para no perder precisión en los montos.
func decode(s string) (repository.Row, error) {
	dec := json.NewDecoder(bytes.NewBufferString(s))
	dec.UseNumber()
	row := repository.Row{}
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("documento inválido: %w", err)
	}
	return row, nil
}

func isDomain(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrSchemaMissing) || errors.Is(err, domain.ErrUnreachable) ||
		errors.Is(err, domain.ErrPermissionDenied)
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var netErr net.Error
	switch {
	case strings.HasPrefix(msg, "NOPERM"), strings.HasPrefix(msg, "NOAUTH"), strings.HasPrefix(msg, "WRONGPASS"):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrPermissionDenied, err)
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded), errors.Is(err, redis.ErrClosed):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnreachable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
