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

// WarehouseUseCase aplica reglas de negocio para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso con el puerto de persistencia.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega; sin tipo queda como Store.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	t, err := entity.ParseWarehouseType(in.Type)
	if err != nil {
		return nil, domain.NewValidationError("type", "oneof")
	}
	w := &entity.Warehouse{Name: in.Name, Location: in.Location, Type: t}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := mapper.Warehouse(w)
	return &out, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapper.Warehouse(w)
	return &out, nil
}

// Update actualiza nombre, ubicación o tipo.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	w, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Location != nil {
		w.Location = *in.Location
	}
	if in.Type != nil {
		t, err := entity.ParseWarehouseType(*in.Type)
		if err != nil {
			return nil, domain.NewValidationError("type", "oneof")
		}
		w.Type = t
	}
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	out := mapper.Warehouse(w)
	return &out, nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	if err := validation.Struct(page).Err(); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseListResponse{
		Items: mapper.Warehouses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una bodega; sus stocks y movimientos se borran en cascada.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *WarehouseUseCase) get(ctx context.Context, id int64) (*entity.Warehouse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}
