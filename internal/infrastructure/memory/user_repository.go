package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios y perfiles en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.t.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	if err := r.checkWarehouses(u.WarehouseIDs); err != nil {
		return err
	}
	u.WarehouseIDs = normalizeIDs(u.WarehouseIDs)
	now := r.s.now()
	u.ID = r.s.nextID("users")
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.t.users[u.ID] = copyUser(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.t.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.t.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.t.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.t.users {
		if other.Username == u.Username && other.ID != u.ID {
			return domain.ErrDuplicate
		}
	}
	next := copyUser(u)
	next.WarehouseIDs = slices.Clone(cur.WarehouseIDs)
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = r.s.now()
	u.UpdatedAt = next.UpdatedAt
	r.s.t.users[u.ID] = next
	return nil
}

func (r *UserRepo) SetWarehouses(_ context.Context, userID int64, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.t.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkWarehouses(ids); err != nil {
		return err
	}
	u.WarehouseIDs = normalizeIDs(ids)
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.t.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.t.users, id)
	for _, m := range r.s.t.movements {
		if m.CreatedBy != nil && *m.CreatedBy == id {
			m.CreatedBy = nil
		}
	}
	return nil
}

func (r *UserRepo) checkWarehouses(ids []int64) error {
	for _, id := range ids {
		if _, ok := r.s.t.warehouses[id]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

// normalizeIDs ordena y quita duplicados, como la PK compuesta de user_profile_warehouses.
func normalizeIDs(ids []int64) []int64 {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return slices.Compact(ids)
}
