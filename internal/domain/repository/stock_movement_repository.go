package repository

import (
	"context"
	"time"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos.
// Sin Update: el Timestamp se asigna una sola vez al insertar.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	ListByStock(ctx context.Context, stockID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// BalanceByStock entradas menos salidas en [from, to), sin paginar.
	BalanceByStock(ctx context.Context, stockID int64, from, to *time.Time) (int, error)
}
