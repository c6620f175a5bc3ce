package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stocks en memoria.
type StockRepo struct{ s *Store }

func (r *StockRepo) Create(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(st); err != nil {
		return err
	}
	st.ID = r.s.nextID("stocks")
	st.LastUpdated = r.s.now()
	r.s.t.stocks[st.ID] = copyStock(st)
	return nil
}

func (r *StockRepo) GetByID(_ context.Context, id int64) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.t.stocks[id]
	if !ok {
		return nil, nil
	}
	return copyStock(st), nil
}

func (r *StockRepo) Update(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.stocks[st.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(st); err != nil {
		return err
	}
	st.LastUpdated = r.s.now()
	r.s.t.stocks[st.ID] = copyStock(st)
	return nil
}

func (r *StockRepo) List(_ context.Context, f repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	return r.filter(func(st *entity.Stock) bool {
		if f.ProductID != nil && st.ProductID != *f.ProductID {
			return false
		}
		return f.WarehouseID == nil || st.WarehouseID == *f.WarehouseID
	}, limit, offset), nil
}

func (r *StockRepo) ListBelowThreshold(_ context.Context, warehouseID *int64) ([]*entity.Stock, error) {
	return r.filter(func(st *entity.Stock) bool {
		if warehouseID != nil && st.WarehouseID != *warehouseID {
			return false
		}
		return st.BelowThreshold()
	}, 0, 0), nil
}

func (r *StockRepo) ListExpiringBefore(_ context.Context, t time.Time) ([]*entity.Stock, error) {
	out := r.filter(func(st *entity.Stock) bool {
		return st.ExpirationDate != nil && st.ExpirationDate.Before(t)
	}, 0, 0)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	return out, nil
}

func (r *StockRepo) UnitsByProduct(_ context.Context, t entity.WarehouseType) (map[int64]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[int64]int{}
	for _, st := range r.s.t.stocks {
		if w, ok := r.s.t.warehouses[st.WarehouseID]; ok && w.Type == t {
			out[st.ProductID] += st.UnitQuantity
		}
	}
	return out, nil
}

func (r *StockRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.stocks[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteStockCascade(id)
	return nil
}

func (r *StockRepo) filter(keep func(*entity.Stock) bool, limit, offset int) []*entity.Stock {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Stock
	for _, st := range r.s.t.stocks {
		if keep(st) {
			out = append(out, copyStock(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset)
}

// checkRefs equivalente a las FK de stocks. Requiere s.mu tomado.
func (r *StockRepo) checkRefs(st *entity.Stock) error {
	if _, ok := r.s.t.products[st.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.t.warehouses[st.WarehouseID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}
