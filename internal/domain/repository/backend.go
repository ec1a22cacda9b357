package repository

import "context"

// Colecciones que maneja la aplicación (tablas en Supabase, colecciones en Firestore/Redis).
const (
	CollectionStoreSettings = "store_settings"
	CollectionSuppliers     = "suppliers"
	CollectionProducts      = "products"
	CollectionTransactions  = "transactions"
)

// Collections orden canónico de carga.
var Collections = []string{
	CollectionStoreSettings,
	CollectionSuppliers,
	CollectionProducts,
	CollectionTransactions,
}

// Row representación cruda de una entidad en el backend (columnas snake_case).
type Row map[string]any

// WithoutID copia la fila sin la clave "id" (el backend asigna o ya conoce el id).
func (r Row) WithoutID() Row {
	out := make(Row, len(r))
	for k, v := range r {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// FetchOptions orden solicitado al servidor. OrderBy vacío = sin orden.
type FetchOptions struct {
	OrderBy    string
	Descending bool
}

// Backend puerto de persistencia genérico por colección (DIP).
// Los errores envuelven los sentinels de domain (ErrSchemaMissing, ErrUnreachable, ...).
type Backend interface {
	// Name identifica la implementación (supabase, firebase, redis, memory).
	Name() string
	// FetchAll devuelve todas las filas de la colección. Si el backend no soporta el orden
	// pedido devuelve ErrOrderingUnsupported.
	FetchAll(ctx context.Context, collection string, opts FetchOptions) ([]Row, error)
	// Insert crea el registro y devuelve la fila creada con el id asignado.
	Insert(ctx context.Context, collection string, row Row) (Row, error)
	// Update aplica la actualización parcial. ErrNotFound si el id no existe.
	Update(ctx context.Context, collection, id string, row Row) error
	// Delete elimina por id. ErrNotFound si el id no existe.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// Migrator lo implementan los backends que pueden crear su esquema (seed).
type Migrator interface {
	Migrate(ctx context.Context) error
}
