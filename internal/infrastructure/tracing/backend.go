// Package tracing decora un repository.Backend con un span de OpenTelemetry y una línea de
// log por llamada.
package tracing

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

var (
	_ repository.Backend  = (*Backend)(nil)
	_ repository.Migrator = (*Backend)(nil)
)

// Backend decorador transparente: no cambia resultados ni errores.
type Backend struct {
	next   repository.Backend
	tracer trace.Tracer
	log    *logger.Logger
}

func Wrap(next repository.Backend, tracer trace.Tracer, log *logger.Logger) *Backend {
	return &Backend{next: next, tracer: tracer, log: log}
}

// Unwrap backend decorado.
func (b *Backend) Unwrap() repository.Backend { return b.next }

func (b *Backend) Name() string { return b.next.Name() }

func (b *Backend) start(ctx context.Context, op, collection string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	attrs = append(attrs,
		attribute.String("backend.provider", b.next.Name()),
		attribute.String("backend.collection", collection),
	)
	ctx, span := b.tracer.Start(ctx, "backend."+op, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindClient))
	return ctx, span, time.Now()
}

// expected errores que forman parte del flujo normal: el Store ordena en memoria ante
// ErrOrderingUnsupported y ErrNotFound es un error del cliente, no del backend.
func expected(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrOrderingUnsupported):
		return "ordering_unsupported", true
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", true
	default:
		return "", false
	}
}

func (b *Backend) finish(span trace.Span, op, collection string, started time.Time, err error) {
	defer span.End()
	ev := b.log.Debug()
	if outcome, ok := expected(err); ok {
		span.SetAttributes(attribute.String("backend.outcome", outcome))
		ev = ev.Err(err)
	} else if err != nil {
		kind := domain.Classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		span.SetAttributes(attribute.String("backend.failure", string(kind)))
		ev = b.log.Warn().Err(err).Str("failure", string(kind))
	}
	ev.Str("op", op).
		Str("collection", collection).
		Dur("elapsed", time.Since(started)).
		Msg("backend")
}

func (b *Backend) FetchAll(ctx context.Context, collection string, opts repository.FetchOptions) ([]repository.Row, error) {
	ctx, span, started := b.start(ctx, "fetch_all", collection, attribute.String("backend.order_by", opts.OrderBy))
	rows, err := b.next.FetchAll(ctx, collection, opts)
	span.SetAttributes(attribute.Int("backend.rows", len(rows)))
	b.finish(span, "fetch_all", collection, started, err)
	return rows, err
}

func (b *Backend) Insert(ctx context.Context, collection string, row repository.Row) (repository.Row, error) {
	ctx, span, started := b.start(ctx, "insert", collection)
	out, err := b.next.Insert(ctx, collection, row)
	b.finish(span, "insert", collection, started, err)
	return out, err
}

func (b *Backend) Update(ctx context.Context, collection, id string, row repository.Row) error {
	ctx, span, started := b.start(ctx, "update", collection, attribute.String("backend.id", id))
	err := b.next.Update(ctx, collection, id, row)
	b.finish(span, "update", collection, started, err)
	return err
}

func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	ctx, span, started := b.start(ctx, "delete", collection, attribute.String("backend.id", id))
	err := b.next.Delete(ctx, collection, id)
	b.finish(span, "delete", collection, started, err)
	return err
}

// Migrate delega si el backend sabe crear su esquema; Firestore no lo necesita.
func (b *Backend) Migrate(ctx context.Context) error {
	m, ok := b.next.(repository.Migrator)
	if !ok {
		b.log.Info().Str("backend", b.next.Name()).Msg("el backend no requiere migración")
		return nil
	}
	ctx, span, started := b.start(ctx, "migrate", "*")
	err := m.Migrate(ctx)
	b.finish(span, "migrate", "*", started, err)
	return err
}

func (b *Backend) Close() error {
	return b.next.Close()
}
