package repository

import (
	"context"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// ProductFilter criterios opcionales para listar productos.
type ProductFilter struct {
	Type     *entity.ProductType
	Critical *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) si no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	// Delete elimina el producto y en cascada sus stocks y movimientos.
	Delete(ctx context.Context, id int64) error
}
