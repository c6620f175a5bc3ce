package repository

import (
	"context"
	"time"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// StockFilter criterios opcionales para listar stocks.
type StockFilter struct {
	ProductID   *int64
	WarehouseID *int64
}

// StockRepository define el puerto de persistencia para Stock.
// Create y Update fijan LastUpdated al instante de la escritura.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id int64) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.Stock, error)
	// ListBelowThreshold stocks con unit_quantity <= threshold; warehouseID nil = todas las bodegas.
	ListBelowThreshold(ctx context.Context, warehouseID *int64) ([]*entity.Stock, error)
	// ListExpiringBefore stocks con fecha de vencimiento anterior a t, ordenados por vencimiento.
	ListExpiringBefore(ctx context.Context, t time.Time) ([]*entity.Stock, error)
	// UnitsByProduct suma unit_quantity por producto en las bodegas del tipo dado.
	UnitsByProduct(ctx context.Context, t entity.WarehouseType) (map[int64]int, error)
	// Delete elimina el stock y en cascada sus movimientos.
	Delete(ctx context.Context, id int64) error
}
