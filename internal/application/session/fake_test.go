package session_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
)

// fakeBackend backend en memoria con inyección de fallos por colección y operación.
type fakeBackend struct {
	mu         sync.Mutex
	rows       map[string][]repository.Row
	fetchErr   map[string]error
	insertErr  error
	updateErr  error
	deleteErr  error
	noOrdering bool
	fetched    []string
	inserted   []repository.Row
	nextID     int

	// gates: la n-ésima lectura de gateOn (store_settings si está vacío) espera a que se
	// cierre gates[n].
	gates   []chan struct{}
	gateOn  string
	entered chan struct{}

	// hooks de Insert, llamados sin f.mu: antes de guardar la fila y después.
	beforeInsert func()
	afterInsert  func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		rows: map[string][]repository.Row{
			repository.CollectionStoreSettings: {{"id": "cfg", "name": "Elikia", "city": "Kinshasa"}},
			repository.CollectionSuppliers:     {{"id": "s-1", "name": "Textiles SARL"}},
			repository.CollectionProducts: {
				{"id": "p-1", "name": "Pain", "sku": "PAI-1", "price": "2.5", "purchase_price": "1", "stock": 40},
				{"id": "p-2", "name": "Café", "sku": "CAF-1", "price": "6", "purchase_price": "3", "stock": 3},
			},
			repository.CollectionTransactions: {
				{"id": "t-old", "date": "2026-03-01T10:00:00Z", "total": "5"},
				{"id": "t-new", "date": "2026-03-10T10:00:00Z", "total": "7"},
				{"id": "t-mid", "date": "2026-03-05T10:00:00Z", "total": "6"},
			},
		},
		fetchErr: map[string]error{},
		entered:  make(chan struct{}, 8),
	}
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) FetchAll(ctx context.Context, collection string, opts repository.FetchOptions) ([]repository.Row, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, collection)
	if err := f.fetchErr[collection]; err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if opts.OrderBy != "" && f.noOrdering {
		f.mu.Unlock()
		return nil, fmt.Errorf("fetch %s: %w", collection, domain.ErrOrderingUnsupported)
	}
	out := make([]repository.Row, 0, len(f.rows[collection]))
	for _, r := range f.rows[collection] {
		cp := repository.Row{}
		for k, v := range r {
			cp[k] = v
		}
		out = append(out, cp)
	}
	var gate chan struct{}
	gateOn := f.gateOn
	if gateOn == "" {
		gateOn = repository.CollectionStoreSettings
	}
	if collection == gateOn && len(f.gates) > 0 {
		gate, f.gates = f.gates[0], f.gates[1:]
	}
	f.mu.Unlock()

	if opts.OrderBy == "date" {
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := time.Parse(time.RFC3339, fmt.Sprint(out[i]["date"]))
			b, _ := time.Parse(time.RFC3339, fmt.Sprint(out[j]["date"]))
			if opts.Descending {
				return a.After(b)
			}
			return a.Before(b)
		})
	}
	if gate != nil {
		f.entered <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

func (f *fakeBackend) Insert(_ context.Context, collection string, row repository.Row) (repository.Row, error) {
	if f.beforeInsert != nil {
		f.beforeInsert()
	}
	f.mu.Lock()
	if f.insertErr != nil {
		f.mu.Unlock()
		return nil, f.insertErr
	}
	f.nextID++
	out := repository.Row{"id": fmt.Sprintf("%s-%d", collection, f.nextID)}
	for k, v := range row {
		out[k] = v
	}
	f.inserted = append(f.inserted, row)
	f.rows[collection] = append(f.rows[collection], out)
	f.mu.Unlock()

	if f.afterInsert != nil {
		f.afterInsert()
	}
	return out, nil
}

func (f *fakeBackend) Update(_ context.Context, collection, id string, row repository.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, r := range f.rows[collection] {
		if r["id"] == id {
			for k, v := range row {
				r[k] = v
			}
			return nil
		}
	}
	return fmt.Errorf("update %s/%s: %w", collection, id, domain.ErrNotFound)
}

func (f *fakeBackend) Delete(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.rows[collection] {
		if r["id"] == id {
			f.rows[collection] = append(f.rows[collection][:i], f.rows[collection][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s/%s: %w", collection, id, domain.ErrNotFound)
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) fetchedCollections() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func (f *fakeBackend) setSettingsName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[repository.CollectionStoreSettings][0]["name"] = name
}

// fakeAuth acepta cualquier email registrado en users.
type fakeAuth struct {
	users map[string]entity.User
}

func (a fakeAuth) Authenticate(_ context.Context, creds repository.Credentials) (*entity.User, error) {
	u, ok := a.users[creds.Email]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &u, nil
}
