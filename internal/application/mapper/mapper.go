// Package mapper convierte entidades de dominio en DTOs de respuesta.
package mapper

import (
	"github.com/samber/lo"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/domain/entity"
)

func Product(p *entity.Product) dto.ProductResponse {
	var typ *string
	if p.Type != nil {
		typ = lo.ToPtr(string(*p.Type))
	}
	return dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		Type:            typ,
		Price:           p.Price,
		Supplier:        p.Supplier,
		SupplierRef:     p.SupplierRef,
		Manufacturer:    p.Manufacturer,
		ManufacturerRef: p.ManufacturerRef,
		Critical:        p.Critical,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func Products(list []*entity.Product) []dto.ProductResponse {
	return lo.Map(list, func(p *entity.Product, _ int) dto.ProductResponse { return Product(p) })
}

func Warehouse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Type:      string(w.Type),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func Warehouses(list []*entity.Warehouse) []dto.WarehouseResponse {
	return lo.Map(list, func(w *entity.Warehouse, _ int) dto.WarehouseResponse { return Warehouse(w) })
}

func Stock(s *entity.Stock) dto.StockResponse {
	var exp *string
	if s.ExpirationDate != nil {
		exp = lo.ToPtr(s.ExpirationDate.Format(dto.DateLayout))
	}
	return dto.StockResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		WarehouseID:    s.WarehouseID,
		UnitQuantity:   s.UnitQuantity,
		Unit:           string(s.Unit),
		PackQuantity:   s.PackQuantity,
		Packaging:      string(s.Packaging),
		LastUpdated:    s.LastUpdated,
		Shelving:       s.Shelving,
		Batch:          s.Batch,
		ExpirationDate: exp,
		ReceptionDate:  s.ReceptionDate.Format(dto.DateLayout),
		Threshold:      s.Threshold,
	}
}

func Stocks(list []*entity.Stock) []dto.StockResponse {
	return lo.Map(list, func(s *entity.Stock, _ int) dto.StockResponse { return Stock(s) })
}

func Movement(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		StockID:   m.StockID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Timestamp: m.Timestamp,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
	}
}

func Movements(list []*entity.StockMovement) []dto.MovementResponse {
	return lo.Map(list, func(m *entity.StockMovement, _ int) dto.MovementResponse { return Movement(m) })
}

// User nunca expone el hash de la contraseña.
func User(u *entity.User) dto.UserResponse {
	ids := u.WarehouseIDs
	if ids == nil {
		ids = []int64{}
	}
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		DisplayName:  u.DisplayName(),
		Email:        u.Email,
		IsActive:     u.IsActive,
		Profile:      string(u.Profile),
		ProfileLabel: u.Profile.Label(),
		WarehouseIDs: ids,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
