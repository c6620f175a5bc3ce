package inventory

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/mapper"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/inventory"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// AlertsUseCase reporta stocks bajo umbral, lotes por vencer y faltantes de productos críticos.
type AlertsUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	opts        options
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository, opts ...Option) *AlertsUseCase {
	return &AlertsUseCase{stockRepo: stockRepo, productRepo: productRepo, opts: buildOptions(opts)}
}

// LowStock stocks con unit_quantity <= threshold; warehouseID nil = todas las bodegas.
func (uc *AlertsUseCase) LowStock(ctx context.Context, warehouseID *int64) (*dto.AlertListResponse, error) {
	list, err := uc.stockRepo.ListBelowThreshold(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.toAlerts(list, 0), nil
}

// Expiring stocks que vencen antes de now+within, incluidos los ya vencidos.
func (uc *AlertsUseCase) Expiring(ctx context.Context, within time.Duration) (*dto.AlertListResponse, error) {
	list, err := uc.stockRepo.ListExpiringBefore(ctx, uc.opts.now().Add(within))
	if err != nil {
		return nil, err
	}
	return uc.toAlerts(list, within), nil
}

// CriticalShortages productos críticos sin unidades en almacenes principales.
func (uc *AlertsUseCase) CriticalShortages(ctx context.Context) ([]dto.CriticalShortageResponse, error) {
	critical := true
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{Critical: &critical}, 0, 0)
	if err != nil {
		return nil, err
	}
	units, err := uc.stockRepo.UnitsByProduct(ctx, entity.WarehouseTypeMain)
	if err != nil {
		return nil, err
	}
	shortages := inventory.CriticalShortages(products, units)
	return lo.Map(shortages, func(s inventory.Shortage, _ int) dto.CriticalShortageResponse {
		return dto.CriticalShortageResponse{ProductID: s.Product.ID, SKU: s.Product.SKU, Name: s.Product.Name, Units: s.Units}
	}), nil
}

func (uc *AlertsUseCase) toAlerts(list []*entity.Stock, within time.Duration) *dto.AlertListResponse {
	now := uc.opts.now()
	return &dto.AlertListResponse{
		Items: lo.Map(list, func(s *entity.Stock, _ int) dto.StockAlertResponse {
			return dto.StockAlertResponse{Stock: mapper.Stock(s), Alerts: alertNames(inventory.Classify(s, now, within))}
		}),
	}
}

func alertNames(levels []inventory.AlertLevel) []string {
	return lo.Map(levels, func(l inventory.AlertLevel, _ int) string { return string(l) })
}
