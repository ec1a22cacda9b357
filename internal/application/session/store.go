package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/jhoicas/elikia-api/internal/application/mapper"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

// Snapshot copia de solo lectura del Store.
type Snapshot struct {
	State        State
	Settings     entity.StoreSettings
	Suppliers    []entity.Supplier
	Products     []entity.Product
	Transactions []entity.Transaction
}

// Store datos de una sesión. Cada Load toma una generación nueva; una carga reemplazada
// o cancelada nunca publica. El lock nunca se mantiene durante una llamada al backend.
type Store struct {
	backend repository.Backend
	log     *logger.Logger

	mu           sync.RWMutex
	gen          uint64
	state        State
	changed      chan struct{} // se cierra y reemplaza en cada cambio de estado
	settings     entity.StoreSettings
	suppliers    []entity.Supplier
	products     []entity.Product
	transactions []entity.Transaction
	pending      []func() // escrituras confirmadas durante una carga en curso
}

// NewStore crea un Store en Idle con la configuración por defecto.
func NewStore(backend repository.Backend, log *logger.Logger) *Store {
	return &Store{
		backend:      backend,
		log:          log,
		state:        idle(),
		changed:      make(chan struct{}),
		settings:     entity.DefaultStoreSettings(),
		suppliers:    []entity.Supplier{},
		products:     []entity.Product{},
		transactions: []entity.Transaction{},
	}
}

type dataset struct {
	settings     entity.StoreSettings
	suppliers    []entity.Supplier
	products     []entity.Product
	transactions []entity.Transaction
}

// Load carga las cuatro colecciones en orden y publica el resultado de forma atómica.
// Devuelve ErrSuperseded si otra carga empezó mientras tanto.
func (s *Store) Load(ctx context.Context) error {
	return s.run(ctx, s.begin())
}

// begin abre una generación nueva y pasa a Loading.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.setState(loading())
	return s.gen
}

func (s *Store) run(ctx context.Context, gen uint64) error {
	data, err := s.fetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return fmt.Errorf("load gen %d: %w", gen, domain.ErrSuperseded)
	}
	if err != nil {
		s.pending = nil
		if errors.Is(ctx.Err(), context.Canceled) {
			s.setState(idle())
			return err
		}
		kind := domain.Classify(err)
		s.setState(failed(kind))
		s.log.Error().Err(err).Str("failure", string(kind)).Msg("carga de datos fallida")
		return err
	}

	s.settings = data.settings
	s.suppliers = data.suppliers
	s.products = data.products
	s.transactions = data.transactions
	for _, op := range s.pending {
		op()
	}
	s.pending = nil
	s.setState(ready())
	s.log.Info().
		Int("suppliers", len(data.suppliers)).
		Int("products", len(data.products)).
		Int("transactions", len(data.transactions)).
		Msg("datos cargados")
	return nil
}

// fetchAll respeta el orden store_settings, suppliers, products, transactions y se detiene
// en el primer error.
func (s *Store) fetchAll(ctx context.Context) (*dataset, error) {
	rows, err := s.backend.FetchAll(ctx, repository.CollectionStoreSettings, repository.FetchOptions{})
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", repository.CollectionStoreSettings, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cargar %s: %w: sin datos iniciales", repository.CollectionStoreSettings, domain.ErrSchemaMissing)
	}
	data := &dataset{settings: mapper.SettingsFromRow(rows[0])}

	if rows, err = s.backend.FetchAll(ctx, repository.CollectionSuppliers, repository.FetchOptions{}); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", repository.CollectionSuppliers, err)
	}
	data.suppliers = make([]entity.Supplier, 0, len(rows))
	for _, r := range rows {
		data.suppliers = append(data.suppliers, mapper.SupplierFromRow(r))
	}

	if rows, err = s.backend.FetchAll(ctx, repository.CollectionProducts, repository.FetchOptions{}); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", repository.CollectionProducts, err)
	}
	data.products = make([]entity.Product, 0, len(rows))
	for _, r := range rows {
		data.products = append(data.products, mapper.ProductFromRow(r))
	}

	if data.transactions, err = s.fetchTransactions(ctx); err != nil {
		return nil, err
	}
	return data, nil
}

// fetchTransactions pide orden por fecha descendente; si el backend no ordena, trae sin
// orden y ordena en memoria (estable).
func (s *Store) fetchTransactions(ctx context.Context) ([]entity.Transaction, error) {
	rows, err := s.backend.FetchAll(ctx, repository.CollectionTransactions, repository.FetchOptions{OrderBy: "date", Descending: true})
	sortLocally := false
	if errors.Is(err, domain.ErrOrderingUnsupported) {
		s.log.Debug().Str("backend", s.backend.Name()).Msg("orden en servidor no soportado, se ordena en memoria")
		rows, err = s.backend.FetchAll(ctx, repository.CollectionTransactions, repository.FetchOptions{})
		sortLocally = true
	}
	if err != nil {
		return nil, fmt.Errorf("cargar %s: %w", repository.CollectionTransactions, err)
	}
	out := make([]entity.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapper.TransactionFromRow(r))
	}
	if sortLocally {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	}
	return out, nil
}

// setState requiere s.mu tomado.
func (s *Store) setState(st State) {
	s.state = st
	close(s.changed)
	s.changed = make(chan struct{})
}

// State estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Wait bloquea hasta que la carga termine o ctx expire.
func (s *Store) Wait(ctx context.Context) (State, error) {
	for {
		s.mu.RLock()
		st, ch := s.state, s.changed
		s.mu.RUnlock()
		if st.Settled() {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Snapshot copias de las colecciones y el estado.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:        s.state,
		Settings:     s.settings,
		Suppliers:    slices.Clone(s.suppliers),
		Products:     slices.Clone(s.products),
		Transactions: slices.Clone(s.transactions),
	}
}

// destroy invalida cualquier carga en curso y descarta los datos.
func (s *Store) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.settings = entity.DefaultStoreSettings()
	s.suppliers, s.products, s.transactions = nil, nil, nil
	s.pending = nil
	s.setState(idle())
}

// applyConfirmed aplica localmente una escritura ya confirmada por el backend. Con una
// carga en curso la difiere hasta que esa carga publique, porque sus lecturas pueden ser
// anteriores a la escritura. op debe ser idempotente (upsert o borrado por id) y corre
// con s.mu tomado.
func (s *Store) applyConfirmed(op func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.Phase {
	case PhaseReady:
		op()
	case PhaseLoading:
		s.pending = append(s.pending, op)
	}
	// Idle o Failed: sesión cerrada o recarga fallida, la próxima carga trae el dato.
}

func upsertByID[T any](items []T, item T, id func(T) string) []T {
	if i := slices.IndexFunc(items, func(x T) bool { return id(x) == id(item) }); i >= 0 {
		items[i] = item
		return items
	}
	return append(items, item)
}

func deleteByID[T any](items []T, target string, id func(T) string) []T {
	if i := slices.IndexFunc(items, func(x T) bool { return id(x) == target }); i >= 0 {
		return slices.Delete(items, i, i+1)
	}
	return items
}

func productID(p entity.Product) string   { return p.ID }
func supplierID(x entity.Supplier) string { return x.ID }

func (s *Store) requireReady() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Phase != PhaseReady {
		return domain.ErrNotReady
	}
	return nil
}

// --- Productos ---

// AddProduct valida, inserta en el backend y, confirmado, agrega el producto con el id asignado.
func (s *Store) AddProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if !p.Valid() {
		return entity.Product{}, fmt.Errorf("crear producto: %w: nombre y sku son obligatorios", domain.ErrInvalidInput)
	}
	if err := s.requireReady(); err != nil {
		return entity.Product{}, err
	}
	row, err := s.backend.Insert(ctx, repository.CollectionProducts, mapper.ProductToRow(p).WithoutID())
	if err != nil {
		s.log.Warn().Err(err).Str("sku", p.SKU).Msg("crear producto")
		return entity.Product{}, fmt.Errorf("crear producto: %w", err)
	}
	created := mapper.ProductFromRow(row)

	s.applyConfirmed(func() { s.products = upsertByID(s.products, created, productID) })
	return created, nil
}

// UpdateProduct reemplaza por id una vez confirmado por el backend.
func (s *Store) UpdateProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	if p.ID == "" || !p.Valid() {
		return entity.Product{}, fmt.Errorf("actualizar producto: %w: id, nombre y sku son obligatorios", domain.ErrInvalidInput)
	}
	if err := s.requireReady(); err != nil {
		return entity.Product{}, err
	}
	row := mapper.ProductToRow(p)
	if err := s.backend.Update(ctx, repository.CollectionProducts, p.ID, row.WithoutID()); err != nil {
		s.log.Warn().Err(err).Str("id", p.ID).Msg("actualizar producto")
		return entity.Product{}, fmt.Errorf("actualizar producto %s: %w", p.ID, err)
	}
	updated := mapper.ProductFromRow(row)

	s.applyConfirmed(func() { s.products = upsertByID(s.products, updated, productID) })
	return updated, nil
}

// DeleteProduct elimina en el backend y luego exactamente una entrada local con ese id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := s.requireReady(); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, repository.CollectionProducts, id); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("eliminar producto")
		return fmt.Errorf("eliminar producto %s: %w", id, err)
	}
	s.applyConfirmed(func() { s.products = deleteByID(s.products, id, productID) })
	return nil
}

// --- Proveedores ---

func (s *Store) AddSupplier(ctx context.Context, sup entity.Supplier) (entity.Supplier, error) {
	if !sup.Valid() {
		return entity.Supplier{}, fmt.Errorf("crear proveedor: %w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if err := s.requireReady(); err != nil {
		return entity.Supplier{}, err
	}
	row, err := s.backend.Insert(ctx, repository.CollectionSuppliers, mapper.SupplierToRow(sup).WithoutID())
	if err != nil {
		s.log.Warn().Err(err).Str("name", sup.Name).Msg("crear proveedor")
		return entity.Supplier{}, fmt.Errorf("crear proveedor: %w", err)
	}
	created := mapper.SupplierFromRow(row)

	s.applyConfirmed(func() { s.suppliers = upsertByID(s.suppliers, created, supplierID) })
	return created, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup entity.Supplier) (entity.Supplier, error) {
	if sup.ID == "" || !sup.Valid() {
		return entity.Supplier{}, fmt.Errorf("actualizar proveedor: %w: id y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if err := s.requireReady(); err != nil {
		return entity.Supplier{}, err
	}
	row := mapper.SupplierToRow(sup)
	if err := s.backend.Update(ctx, repository.CollectionSuppliers, sup.ID, row.WithoutID()); err != nil {
		s.log.Warn().Err(err).Str("id", sup.ID).Msg("actualizar proveedor")
		return entity.Supplier{}, fmt.Errorf("actualizar proveedor %s: %w", sup.ID, err)
	}
	updated := mapper.SupplierFromRow(row)

	s.applyConfirmed(func() { s.suppliers = upsertByID(s.suppliers, updated, supplierID) })
	return updated, nil
}

// DeleteSupplier no toca los productos que lo referencian; el backend decide (FK con
// ON DELETE SET NULL en Supabase).
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	if err := s.requireReady(); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, repository.CollectionSuppliers, id); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("eliminar proveedor")
		return fmt.Errorf("eliminar proveedor %s: %w", id, err)
	}
	s.applyConfirmed(func() { s.suppliers = deleteByID(s.suppliers, id, supplierID) })
	return nil
}

// --- Configuración ---

// UpdateSettings actualiza el registro único de configuración (el id cargado si no viene).
func (s *Store) UpdateSettings(ctx context.Context, st entity.StoreSettings) (entity.StoreSettings, error) {
	if err := s.requireReady(); err != nil {
		return entity.StoreSettings{}, err
	}
	s.mu.RLock()
	currentID := s.settings.ID
	s.mu.RUnlock()
	if st.ID == "" {
		st.ID = currentID
	}
	if st.ID == "" {
		return entity.StoreSettings{}, fmt.Errorf("actualizar configuración: %w: sin id", domain.ErrInvalidInput)
	}
	row := mapper.SettingsToRow(st)
	if err := s.backend.Update(ctx, repository.CollectionStoreSettings, st.ID, row.WithoutID()); err != nil {
		s.log.Warn().Err(err).Str("id", st.ID).Msg("actualizar configuración")
		return entity.StoreSettings{}, fmt.Errorf("actualizar configuración: %w", err)
	}
	updated := mapper.SettingsFromRow(row)

	s.applyConfirmed(func() { s.settings = updated })
	return updated, nil
}
