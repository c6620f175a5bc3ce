package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/inventory"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// expiryWarning ventana de aviso de vencimiento en el informe.
const expiryWarning = 30 * 24 * time.Hour

// ReportUseCase arma el informe PDF de existencias.
type ReportUseCase struct {
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	generator     ReportGenerator
	opts          options
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	generator ReportGenerator,
	opts ...Option,
) *ReportUseCase {
	return &ReportUseCase{
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
		opts:          buildOptions(opts),
	}
}

// StockReport genera el PDF de una bodega (o de todas si warehouseID es nil).
func (uc *ReportUseCase) StockReport(ctx context.Context, warehouseID *int64) ([]byte, error) {
	report, err := uc.Build(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.StockReport(*report)
	if err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return pdf, nil
}

// Build reúne las filas del informe sin renderizarlo.
func (uc *ReportUseCase) Build(ctx context.Context, warehouseID *int64) (*StockReport, error) {
	title := "Stock report"
	if warehouseID != nil {
		wh, err := uc.warehouseRepo.GetByID(ctx, *warehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		title = "Stock report - " + wh.Name
	}
	stocks, err := uc.stockRepo.List(ctx, repository.StockFilter{WarehouseID: warehouseID}, 0, 0)
	if err != nil {
		return nil, err
	}

	now := uc.opts.now()
	products := map[int64]*entity.Product{}
	warehouses := map[int64]*entity.Warehouse{}
	total := decimal.Zero
	lines := make([]ReportLine, 0, len(stocks))
	for _, s := range stocks {
		p, err := lookup(ctx, products, s.ProductID, uc.productRepo.GetByID)
		if err != nil {
			return nil, err
		}
		w, err := lookup(ctx, warehouses, s.WarehouseID, uc.warehouseRepo.GetByID)
		if err != nil {
			return nil, err
		}
		var price *decimal.Decimal
		if p != nil {
			price = p.Price
		}
		value := inventory.StockValue(price, s.UnitQuantity)
		total = total.Add(value)
		lines = append(lines, ReportLine{
			Stock:     s,
			Product:   p,
			Warehouse: w,
			Alerts:    alertNames(inventory.Classify(s, now, expiryWarning)),
			Value:     value.StringFixed(2),
		})
	}
	return &StockReport{Title: title, GeneratedAt: now, Lines: lines, TotalValue: total.StringFixed(2)}, nil
}

// lookup cachea las lecturas por ID durante el armado del informe.
func lookup[T any](ctx context.Context, cache map[int64]*T, id int64, get func(context.Context, int64) (*T, error)) (*T, error) {
	if v, ok := cache[id]; ok {
		return v, nil
	}
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = v
	return v, nil
}
