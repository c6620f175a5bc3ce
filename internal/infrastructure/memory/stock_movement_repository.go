package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/inventory"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct{ s *Store }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.stocks[m.StockID]; !ok {
		return domain.ErrNotFound
	}
	if m.CreatedBy != nil {
		if _, ok := r.s.t.users[*m.CreatedBy]; !ok {
			return domain.ErrNotFound
		}
	}
	m.ID = r.s.nextID("stock_movements")
	m.Timestamp = r.s.now()
	r.s.t.movements[m.ID] = copyMovement(m)
	return nil
}

func (r *StockMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.t.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func (r *StockMovementRepo) ListByStock(_ context.Context, stockID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.window(stockID, from, to)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return page(out, limit, offset), nil
}

func (r *StockMovementRepo) BalanceByStock(_ context.Context, stockID int64, from, to *time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return inventory.LedgerBalance(r.window(stockID, from, to)), nil
}

// window copia los movimientos del stock en [from, to). Requiere el lock tomado.
func (r *StockMovementRepo) window(stockID int64, from, to *time.Time) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.s.t.movements {
		if m.StockID != stockID {
			continue
		}
		if from != nil && m.Timestamp.Before(*from) {
			continue
		}
		if to != nil && !m.Timestamp.Before(*to) {
			continue
		}
		out = append(out, copyMovement(m))
	}
	return out
}
