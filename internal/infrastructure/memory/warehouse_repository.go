package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ s *Store }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	w.ID = r.s.nextID("warehouses")
	w.CreatedAt, w.UpdatedAt = now, now
	c := *w
	r.s.t.warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.t.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.t.warehouses[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	w.CreatedAt = cur.CreatedAt
	w.UpdatedAt = r.s.now()
	c := *w
	r.s.t.warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return r.list(func(*entity.Warehouse) bool { return true }, limit, offset), nil
}

func (r *WarehouseRepo) ListByType(_ context.Context, t entity.WarehouseType) ([]*entity.Warehouse, error) {
	return r.list(func(w *entity.Warehouse) bool { return w.Type == t }, 0, 0), nil
}

func (r *WarehouseRepo) list(keep func(*entity.Warehouse) bool, limit, offset int) []*entity.Warehouse {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Warehouse
	for _, w := range r.s.t.warehouses {
		if keep(w) {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset)
}

func (r *WarehouseRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.t.warehouses, id)
	for sid, st := range r.s.t.stocks {
		if st.WarehouseID == id {
			r.s.deleteStockCascade(sid)
		}
	}
	for _, u := range r.s.t.users {
		u.WarehouseIDs = slices.DeleteFunc(u.WarehouseIDs, func(wid int64) bool { return wid == id })
	}
	return nil
}
