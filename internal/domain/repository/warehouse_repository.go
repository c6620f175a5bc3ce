package repository

import (
	"context"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	ListByType(ctx context.Context, t entity.WarehouseType) ([]*entity.Warehouse, error)
	// Delete elimina la bodega y en cascada sus stocks y movimientos.
	Delete(ctx context.Context, id int64) error
}
