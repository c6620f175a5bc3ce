package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, stock_id, movement_type, quantity, "timestamp", reason, created_by`

// Create inserta el movimiento; "timestamp" lo fija el DEFAULT now() de la tabla.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (stock_id, movement_type, quantity, reason, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, "timestamp"`,
		m.StockID, string(m.Type), m.Quantity, m.Reason, m.CreatedBy,
	).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return mapWriteErr("insert stock movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByStock movimientos de un stock en [from, to), orden cronológico.
func (r *StockMovementRepo) ListByStock(ctx context.Context, stockID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE stock_id = $1
			AND ($2::timestamptz IS NULL OR "timestamp" >= $2)
			AND ($3::timestamptz IS NULL OR "timestamp" < $3)
		ORDER BY "timestamp", id LIMIT $4 OFFSET $5`,
		stockID, from, to, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// BalanceByStock suma entradas menos salidas en [from, to) sobre todo el libro, no sobre una página.
func (r *StockMovementRepo) BalanceByStock(ctx context.Context, stockID int64, from, to *time.Time) (int, error) {
	var balance int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE movement_type WHEN 'IN' THEN quantity ELSE -quantity END), 0)::int
		FROM stock_movements
		WHERE stock_id = $1
			AND ($2::timestamptz IS NULL OR "timestamp" >= $2)
			AND ($3::timestamptz IS NULL OR "timestamp" < $3)`,
		stockID, from, to).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("balance stock movements: %w", err)
	}
	return balance, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		typ string
	)
	if err := row.Scan(&m.ID, &m.StockID, &typ, &m.Quantity, &m.Timestamp, &m.Reason, &m.CreatedBy); err != nil {
		return nil, err
	}
	t, err := entity.ParseMovementType(typ)
	if err != nil {
		return nil, err
	}
	m.Type = t
	return &m, nil
}
