package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, 0) {
		return domain.ErrDuplicate
	}
	now := r.s.now()
	p.ID = r.s.nextID("products")
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.t.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.t.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.t.products {
		if p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.t.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.t.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.s.t.products {
		if f.Type != nil && (p.Type == nil || *p.Type != *f.Type) {
			continue
		}
		if f.Critical != nil && p.Critical != *f.Critical {
			continue
		}
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.t.products, id)
	for sid, st := range r.s.t.stocks {
		if st.ProductID == id {
			r.s.deleteStockCascade(sid)
		}
	}
	return nil
}

func (r *ProductRepo) skuTaken(sku string, except int64) bool {
	for _, p := range r.s.t.products {
		if p.SKU == sku && p.ID != except {
			return true
		}
	}
	return false
}
