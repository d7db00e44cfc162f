package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// memDB base en memoria compartida por todos los repositorios del servidor de prueba.
type memDB struct {
	mu         sync.Mutex
	txMu       sync.Mutex
	users      map[string]*entity.User
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	movements  map[string]*entity.Movement
}

func newMemDB() *memDB {
	return &memDB{
		users:      make(map[string]*entity.User),
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
		movements:  make(map[string]*entity.Movement),
	}
}

func (db *memDB) stock(id string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.products[id].Stock
}

type memTxRunner struct{ db *memDB }

func (r memTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	r.db.mu.Lock()
	products := make(map[string]entity.Product, len(r.db.products))
	for k, v := range r.db.products {
		products[k] = *v
	}
	movements := make(map[string]entity.Movement, len(r.db.movements))
	for k, v := range r.db.movements {
		movements[k] = *v
	}
	r.db.mu.Unlock()

	err := fn(&memMovementRepo{db: r.db}, &memProductRepo{db: r.db})
	if err != nil {
		r.db.mu.Lock()
		r.db.products = make(map[string]*entity.Product, len(products))
		for k, v := range products {
			p := v
			r.db.products[k] = &p
		}
		r.db.movements = make(map[string]*entity.Movement, len(movements))
		for k, v := range movements {
			m := v
			r.db.movements[k] = &m
		}
		r.db.mu.Unlock()
	}
	return err
}

// ─── users ───────────────────────────────────────────────────────────────────

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.users {
		if other.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.users, id)
	return nil
}

// ─── categories ──────────────────────────────────────────────────────────────

type memCategoryRepo struct{ db *memDB }

func (r *memCategoryRepo) nameTaken(c *entity.Category) bool {
	for _, other := range r.db.categories {
		if other.ID != c.ID && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.categories, id)
	return nil
}

// ─── products ────────────────────────────────────────────────────────────────

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) withCategory(p *entity.Product) *entity.Product {
	cp := *p
	if c, ok := r.db.categories[p.CategoryID]; ok {
		cp.CategoryName = c.Name
	}
	return &cp
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return domain.ErrConflict
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(p), nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	cp.Stock = current.Stock
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	search := strings.ToLower(f.Search)
	var out []*entity.Product
	for _, p := range r.db.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		out = append(out, r.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r *memProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, p := range r.db.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.products, id)
	return nil
}

// ─── movements ───────────────────────────────────────────────────────────────

type memMovementRepo struct{ db *memDB }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *m
	r.db.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	cp.ProductName, cp.ProductDescription = "", ""
	if p, ok := r.db.products[m.ProductID]; ok {
		cp.ProductName, cp.ProductDescription = p.Name, p.Description
	}
	return &cp, nil
}

func (r *memMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovementRepo) Update(_ context.Context, m *entity.Movement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *m
	r.db.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.db.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		cp := *m
		if p, ok := r.db.products[m.ProductID]; ok {
			cp.ProductName, cp.ProductDescription = p.Name, p.Description
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

// ─── reports ─────────────────────────────────────────────────────────────────

type memReportRepo struct{ db *memDB }

func (r *memReportRepo) GetSummary(_ context.Context, dayStart time.Time) (*repository.InventorySummaryResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := &repository.InventorySummaryResult{TotalValue: decimal.Zero, Categories: len(r.db.categories)}
	for _, p := range r.db.products {
		if !p.Active {
			continue
		}
		out.ActiveProducts++
		out.TotalUnits += p.Stock
		out.TotalValue = out.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.IsLowStock() {
			out.LowStockCount++
		}
	}
	for _, m := range r.db.movements {
		if !m.Date.Before(dayStart) {
			out.MovementsToday++
		}
	}
	return out, nil
}

func (r *memReportRepo) ListLowStock(context.Context) ([]*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.db.products {
		if p.Active && p.IsLowStock() {
			cp := *p
			if c, ok := r.db.categories[p.CategoryID]; ok {
				cp.CategoryName = c.Name
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MinStock-out[i].Stock > out[j].MinStock-out[j].Stock
	})
	return out, nil
}

func (r *memReportRepo) GetValueByCategory(context.Context) ([]repository.CategoryValueResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []repository.CategoryValueResult
	for _, c := range r.db.categories {
		row := repository.CategoryValueResult{CategoryID: c.ID, CategoryName: c.Name, Value: decimal.Zero}
		for _, p := range r.db.products {
			if p.Active && p.CategoryID == c.ID {
				row.Products++
				row.Units += p.Stock
				row.Value = row.Value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out, nil
}

// ─── rate limit ──────────────────────────────────────────────────────────────

type memRateLimitStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newMemRateLimitStore() *memRateLimitStore {
	return &memRateLimitStore{counts: make(map[string]int64)}
}

func (s *memRateLimitStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *memRateLimitStore) RateLimitKey(parts ...string) string {
	return "test:rl:" + strings.Join(parts, ":")
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
