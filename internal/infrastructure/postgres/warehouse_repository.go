package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, name, location, warehouse_type, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO warehouses (name, location, warehouse_type) VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		w.Name, w.Location, string(w.Type),
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// Update actualiza nombre, ubicación y tipo.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		UPDATE warehouses SET name = $2, location = $3, warehouse_type = $4, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		w.ID, w.Name, w.Location, string(w.Type),
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapWriteErr("update warehouse", err)
	}
	return nil
}

// List lista bodegas con paginación.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return r.query(ctx, `SELECT `+warehouseColumns+` FROM warehouses ORDER BY id LIMIT $1 OFFSET $2`, limitArg(limit), offset)
}

// ListByType lista las bodegas de un tipo.
func (r *WarehouseRepo) ListByType(ctx context.Context, t entity.WarehouseType) ([]*entity.Warehouse, error) {
	return r.query(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE warehouse_type = $1 ORDER BY id`, string(t))
}

// Delete elimina una bodega; ON DELETE CASCADE borra stocks, movimientos y accesos de usuarios.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return affectedOne(tag)
}

func (r *WarehouseRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := []*entity.Warehouse{}
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var (
		w   entity.Warehouse
		typ string
	)
	if err := row.Scan(&w.ID, &w.Name, &w.Location, &typ, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	t, err := entity.ParseWarehouseType(typ)
	if err != nil {
		return nil, err
	}
	w.Type = t
	return &w, nil
}
