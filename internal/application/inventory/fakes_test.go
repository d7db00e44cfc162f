package inventory_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// memStore simula la BD: una transacción a la vez (equivale al bloqueo de fila)
// y rollback restaurando la copia tomada al iniciar.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements map[string]*entity.Movement

	failMovementWrite error
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.Movement),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) deleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

type snapshot struct {
	products  map[string]entity.Product
	movements map[string]entity.Movement
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		movements: make(map[string]entity.Movement, len(s.movements)),
	}
	for k, v := range s.products {
		snap.products[k] = *v
	}
	for k, v := range s.movements {
		snap.movements[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.products = make(map[string]*entity.Product, len(snap.products))
	s.movements = make(map[string]*entity.Movement, len(snap.movements))
	for k, v := range snap.products {
		p := v
		s.products[k] = &p
	}
	for k, v := range snap.movements {
		m := v
		s.movements[k] = &m
	}
}

type memTxRunner struct {
	store *memStore
}

func (r memTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	err := fn(&memMovementRepo{store: r.store, inTx: true}, &memProductRepo{store: r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// memProductRepo solo se usa dentro de una transacción.
type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *memProductRepo) CountByCategory(context.Context, string) (int, error) { return 0, nil }

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.store.products, id)
	return nil
}

// memMovementRepo fuera de una transacción toma el lock del store.
type memMovementRepo struct {
	store *memStore
	inTx  bool
}

func (r *memMovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.store.failMovementWrite != nil {
		return r.store.failMovementWrite
	}
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	defer r.lock()()
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	if p, ok := r.store.products[m.ProductID]; ok {
		cp.ProductName, cp.ProductDescription = p.Name, p.Description
	} else {
		cp.ProductName, cp.ProductDescription = "", ""
	}
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovementRepo) Update(_ context.Context, m *entity.Movement) error {
	if r.store.failMovementWrite != nil {
		return r.store.failMovementWrite
	}
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	delete(r.store.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	defer r.lock()()
	var out []*entity.Movement
	for _, m := range r.store.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	total := len(out)
	if f.Offset >= len(out) {
		return []*entity.Movement{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

type recordedMetric struct {
	operation, movementType, outcome string
}

type fakeMetrics struct {
	mu      sync.Mutex
	records []recordedMetric
}

func (m *fakeMetrics) ObserveMovement(operation, movementType, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, recordedMetric{operation, movementType, outcome})
}

func (m *fakeMetrics) count(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.outcome == outcome {
			n++
		}
	}
	return n
}
