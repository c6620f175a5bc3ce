package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre users, user_profiles y user_profile_warehouses.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.username, u.password_hash, u.first_name, u.last_name, u.email, u.is_active,
		COALESCE(p.profile, 'USR'),
		COALESCE(array_agg(w.warehouse_id ORDER BY w.warehouse_id) FILTER (WHERE w.warehouse_id IS NOT NULL), '{}'),
		u.created_at, u.updated_at
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
	LEFT JOIN user_profile_warehouses w ON w.user_id = u.id`

const userGroupBy = ` GROUP BY u.id, p.profile`

// Create inserta usuario, perfil y bodegas. Debe ejecutarse dentro de una transacción (TxRunner.RunUsers).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert user", err)
	}
	if _, err := r.q.Exec(ctx, `INSERT INTO user_profiles (user_id, profile) VALUES ($1, $2)`, u.ID, string(u.Profile)); err != nil {
		return mapWriteErr("insert user profile", err)
	}
	return r.insertWarehouses(ctx, u.ID, u.WarehouseIDs)
}

// GetByID obtiene un usuario con su perfil y bodegas.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+` WHERE u.id = $1`+userGroupBy, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username (login).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+` WHERE u.username = $1`+userGroupBy, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Update modifica datos del usuario y hace upsert del perfil.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		UPDATE users SET username = $2, password_hash = $3, first_name = $4, last_name = $5, email = $6,
			is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.IsActive,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapWriteErr("update user", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO user_profiles (user_id, profile) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile`,
		u.ID, string(u.Profile))
	if err != nil {
		return mapWriteErr("upsert user profile", err)
	}
	return nil
}

// SetWarehouses reemplaza las bodegas del perfil.
func (r *UserRepo) SetWarehouses(ctx context.Context, userID int64, warehouseIDs []int64) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_profiles WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("check user profile: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM user_profile_warehouses WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user warehouses: %w", err)
	}
	return r.insertWarehouses(ctx, userID, warehouseIDs)
}

// Delete elimina el usuario; perfil y bodegas caen en cascada, los movimientos quedan sin autor.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return affectedOne(tag)
}

func (r *UserRepo) insertWarehouses(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_profile_warehouses (user_id, warehouse_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, userID, ids)
	if err != nil {
		return mapWriteErr("insert user warehouses", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u       entity.User
		profile string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &u.IsActive,
		&profile, &u.WarehouseIDs, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	p, err := entity.ParseProfile(profile)
	if err != nil {
		return nil, err
	}
	u.Profile = p
	return &u, nil
}
