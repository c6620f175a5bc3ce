package usecase

import (
	"context"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/mapper"
	"github.com/jhoicas/labstock/internal/application/validation"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía StockUseCase.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El SKU es único (domain.ErrDuplicate).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Supplier:        in.Supplier,
		SupplierRef:     in.SupplierRef,
		Manufacturer:    in.Manufacturer,
		ManufacturerRef: in.ManufacturerRef,
		Critical:        in.Critical,
	}
	if in.Type != nil {
		t, err := entity.ParseProductType(*in.Type)
		if err != nil {
			return nil, domain.NewValidationError("type", "oneof")
		}
		product.Type = &t
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := mapper.Product(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapper.Product(product)
	return &out, nil
}

// Update aplica una actualización parcial.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Type != nil {
		t, err := entity.ParseProductType(*in.Type)
		if err != nil {
			return nil, domain.NewValidationError("type", "oneof")
		}
		product.Type = &t
	}
	if in.Price != nil {
		product.Price = in.Price
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.SupplierRef != nil {
		product.SupplierRef = *in.SupplierRef
	}
	if in.Manufacturer != nil {
		product.Manufacturer = *in.Manufacturer
	}
	if in.ManufacturerRef != nil {
		product.ManufacturerRef = *in.ManufacturerRef
	}
	if in.Critical != nil {
		product.Critical = *in.Critical
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := mapper.Product(product)
	return &out, nil
}

// List lista productos con filtros opcionales y paginación.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if err := validation.Struct(q).Err(); err != nil {
		return nil, err
	}
	q.DefaultPage()
	filter := repository.ProductFilter{Critical: q.Critical}
	if q.Type != "" {
		t, err := entity.ParseProductType(q.Type)
		if err != nil {
			return nil, domain.NewValidationError("type", "oneof")
		}
		filter.Type = &t
	}
	list, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: mapper.Products(list),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un producto por ID junto con sus stocks y movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
