package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// Repositorios en memoria con las mismas reglas de unicidad que las tablas.

type memCategoryRepo struct {
	items map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: make(map[string]*entity.Category)}
}

func (r *memCategoryRepo) nameTaken(c *entity.Category) bool {
	for _, other := range r.items {
		if other.ID != c.ID && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	if r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memProductRepo struct {
	items map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: make(map[string]*entity.Product)}
}

func (r *memProductRepo) barcodeTaken(p *entity.Product) bool {
	if p.Barcode == "" {
		return false
	}
	for _, other := range r.items {
		if other.ID != p.ID && other.Barcode == p.Barcode {
			return true
		}
	}
	return false
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.barcodeTaken(p) {
		return domain.ErrDuplicate
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update conserva el stock almacenado, igual que el UPDATE de la tabla.
func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	if r.barcodeTaken(p) {
		return domain.ErrDuplicate
	}
	cp := *p
	cp.Stock = r.items[p.ID].Stock
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	r.items[id].Stock = stock
	return nil
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	search := strings.ToLower(f.Search)
	for _, p := range r.items {
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
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	if f.Offset >= total {
		return []*entity.Product{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, p := range r.items {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memUserRepo struct {
	items map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{items: make(map[string]*entity.User)}
	for _, u := range users {
		r.items[u.ID] = u
	}
	return r
}

func (r *memUserRepo) emailTaken(u *entity.User) bool {
	for _, other := range r.items {
		if other.ID != u.ID && other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.emailTaken(u) {
		return domain.ErrDuplicate
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if r.emailTaken(u) {
		return domain.ErrDuplicate
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	out := make([]*entity.User, 0, len(r.items))
	for _, u := range r.items {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	if offset >= total {
		return []*entity.User{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}
