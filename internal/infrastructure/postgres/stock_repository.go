package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `s.id, s.product_id, s.warehouse_id, s.unit_quantity, s.stock_unit, s.pack_quantity,
	s.stock_packaging, s.last_updated, s.shelving, s.batch, s.expiration_date, s.reception_date, s.threshold`

// Create inserta el stock; last_updated = now().
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (product_id, warehouse_id, unit_quantity, stock_unit, pack_quantity, stock_packaging,
			last_updated, shelving, batch, expiration_date, reception_date, threshold)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7, $8, $9, $10, $11)
		RETURNING id, last_updated`
	err := r.q.QueryRow(ctx, query,
		s.ProductID, s.WarehouseID, s.UnitQuantity, string(s.Unit), s.PackQuantity, string(s.Packaging),
		s.Shelving, s.Batch, s.ExpirationDate, s.ReceptionDate, s.Threshold,
	).Scan(&s.ID, &s.LastUpdated)
	if err != nil {
		return mapWriteErr("insert stock", err)
	}
	return nil
}

// GetByID obtiene un stock por ID.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stocks s WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// Update reescribe el stock; last_updated = now() en cada escritura.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	query := `
		UPDATE stocks SET product_id = $2, warehouse_id = $3, unit_quantity = $4, stock_unit = $5,
			pack_quantity = $6, stock_packaging = $7, last_updated = now(), shelving = $8, batch = $9,
			expiration_date = $10, reception_date = $11, threshold = $12
		WHERE id = $1
		RETURNING last_updated`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.ProductID, s.WarehouseID, s.UnitQuantity, string(s.Unit), s.PackQuantity, string(s.Packaging),
		s.Shelving, s.Batch, s.ExpirationDate, s.ReceptionDate, s.Threshold,
	).Scan(&s.LastUpdated)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return mapWriteErr("update stock", err)
	}
	return nil
}

// List lista stocks filtrando por producto y/o bodega.
func (r *StockRepo) List(ctx context.Context, f repository.StockFilter, limit, offset int) ([]*entity.Stock, error) {
	return r.query(ctx, `
		SELECT `+stockColumns+` FROM stocks s
		WHERE ($1::bigint IS NULL OR s.product_id = $1) AND ($2::bigint IS NULL OR s.warehouse_id = $2)
		ORDER BY s.id LIMIT $3 OFFSET $4`,
		f.ProductID, f.WarehouseID, limitArg(limit), offset)
}

// ListBelowThreshold stocks en o bajo su umbral.
func (r *StockRepo) ListBelowThreshold(ctx context.Context, warehouseID *int64) ([]*entity.Stock, error) {
	return r.query(ctx, `
		SELECT `+stockColumns+` FROM stocks s
		WHERE s.unit_quantity <= s.threshold AND ($1::bigint IS NULL OR s.warehouse_id = $1)
		ORDER BY s.id`, warehouseID)
}

// ListExpiringBefore stocks con vencimiento anterior a t.
func (r *StockRepo) ListExpiringBefore(ctx context.Context, t time.Time) ([]*entity.Stock, error) {
	return r.query(ctx, `
		SELECT `+stockColumns+` FROM stocks s
		WHERE s.expiration_date IS NOT NULL AND s.expiration_date < $1::date
		ORDER BY s.expiration_date, s.id`, t)
}

// UnitsByProduct suma unidades por producto en bodegas del tipo dado.
func (r *StockRepo) UnitsByProduct(ctx context.Context, t entity.WarehouseType) (map[int64]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.product_id, SUM(s.unit_quantity)::int
		FROM stocks s JOIN warehouses w ON w.id = s.warehouse_id
		WHERE w.warehouse_type = $1
		GROUP BY s.product_id`, string(t))
	if err != nil {
		return nil, fmt.Errorf("units by product: %w", err)
	}
	defer rows.Close()
	out := map[int64]int{}
	for rows.Next() {
		var (
			productID int64
			units     int
		)
		if err := rows.Scan(&productID, &units); err != nil {
			return nil, fmt.Errorf("scan units: %w", err)
		}
		out[productID] = units
	}
	return out, rows.Err()
}

// Delete elimina el stock; ON DELETE CASCADE borra sus movimientos.
func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return affectedOne(tag)
}

func (r *StockRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	list := []*entity.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var (
		s               entity.Stock
		unit, packaging string
	)
	if err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.UnitQuantity, &unit, &s.PackQuantity,
		&packaging, &s.LastUpdated, &s.Shelving, &s.Batch, &s.ExpirationDate, &s.ReceptionDate, &s.Threshold); err != nil {
		return nil, err
	}
	var err error
	if s.Unit, err = entity.ParseStockUnit(unit); err != nil {
		return nil, err
	}
	if s.Packaging, err = entity.ParseStockPackaging(packaging); err != nil {
		return nil, err
	}
	return &s, nil
}
