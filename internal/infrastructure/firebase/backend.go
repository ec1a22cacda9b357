package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

var _ repository.Backend = (*Backend)(nil)

// Backend una colección de Firestore por colección de la aplicación; el id es el id del documento.
type Backend struct {
	client *firestore.Client
}

func NewBackend(client *firestore.Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) Name() string { return "firebase" }

func (b *Backend) FetchAll(ctx context.Context, collection string, opts repository.FetchOptions) ([]repository.Row, error) {
	q := b.client.Collection(collection).Query
	kind := opQuery
	if opts.OrderBy != "" {
		dir := firestore.Asc
		if opts.Descending {
			dir = firestore.Desc
		}
		q = q.OrderBy(opts.OrderBy, dir)
		kind = opOrderedQuery
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, classify("firestore "+collection, kind, err)
	}
	out := make([]repository.Row, 0, len(docs))
	for _, d := range docs {
		row := repository.Row(d.Data())
		row["id"] = d.Ref.ID
		out = append(out, row)
	}
	return out, nil
}

// Insert usa Add (id generado por Firestore) o Create si la fila trae id.
func (b *Backend) Insert(ctx context.Context, collection string, row repository.Row) (repository.Row, error) {
	id, _ := row["id"].(string)
	data := normalizeRow(row.WithoutID())

	col := b.client.Collection(collection)
	if id == "" {
		ref, _, err := col.Add(ctx, data)
		if err != nil {
			return nil, classify("firestore add "+collection, opDocument, err)
		}
		id = ref.ID
	} else if _, err := col.Doc(id).Create(ctx, data); err != nil {
		return nil, classify("firestore create "+collection+"/"+id, opDocument, err)
	}

	out := repository.Row(data)
	out["id"] = id
	return out, nil
}

// Update falla con ErrNotFound si el documento no existe (Doc.Update no crea).
func (b *Backend) Update(ctx context.Context, collection, id string, row repository.Row) error {
	data := normalizeRow(row.WithoutID())
	if len(data) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	if _, err := b.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return classify(fmt.Sprintf("firestore update %s/%s", collection, id), opDocument, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	if _, err := b.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return classify(fmt.Sprintf("firestore delete %s/%s", collection, id), opDocument, err)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}

// normalizeRow Firestore no tiene tipo decimal: los montos se guardan como float64.
func normalizeRow(row repository.Row) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case repository.Row:
		return normalizeRow(x)
	case map[string]any:
		return normalizeRow(x)
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = normalizeRow(m)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
