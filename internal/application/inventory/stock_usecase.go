package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/mapper"
	"github.com/jhoicas/labstock/internal/application/validation"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// ReceptionReason motivo del movimiento IN que acompaña a un stock recibido.
const ReceptionReason = "Reception"

// StockUseCase CRUD de stocks por bodega.
type StockUseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	opts          options
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	opts ...Option,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		opts:          buildOptions(opts),
	}
}

// Create registra un stock. Producto y bodega deben existir (domain.ErrNotFound).
// Con RecordReception y unidades > 0 agrega un movimiento IN en la misma transacción.
func (uc *StockUseCase) Create(ctx context.Context, userID *int64, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}
	stock := &entity.Stock{
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		UnitQuantity:  in.UnitQuantity,
		PackQuantity:  in.PackQuantity,
		Shelving:      in.Shelving,
		Batch:         in.Batch,
		Threshold:     entity.DefaultThreshold,
		ReceptionDate: today(uc.opts.now()),
	}
	if err := applyEnums(stock, &in.Unit, &in.Packaging); err != nil {
		return nil, err
	}
	if in.Threshold != nil {
		stock.Threshold = *in.Threshold
	}
	if in.ExpirationDate != nil {
		d, err := parseDate("expiration_date", *in.ExpirationDate)
		if err != nil {
			return nil, err
		}
		stock.ExpirationDate = &d
	}
	if in.ReceptionDate != nil {
		d, err := parseDate("reception_date", *in.ReceptionDate)
		if err != nil {
			return nil, err
		}
		stock.ReceptionDate = d
	}

	err := uc.txRunner.Run(ctx, func(stocks repository.StockRepository, movs repository.StockMovementRepository) error {
		if err := stocks.Create(ctx, stock); err != nil {
			return err
		}
		if !in.RecordReception || stock.UnitQuantity == 0 {
			return nil
		}
		return movs.Create(ctx, &entity.StockMovement{
			StockID:   stock.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  stock.UnitQuantity,
			Reason:    ReceptionReason,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := mapper.Stock(stock)
	return &out, nil
}

// GetByID obtiene un stock por ID.
func (uc *StockUseCase) GetByID(ctx context.Context, id int64) (*dto.StockResponse, error) {
	stock, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapper.Stock(stock)
	return &out, nil
}

// Update aplica una actualización parcial; last_updated siempre avanza.
func (uc *StockUseCase) Update(ctx context.Context, id int64, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	stock, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.UnitQuantity != nil {
		stock.UnitQuantity = *in.UnitQuantity
	}
	if in.PackQuantity != nil {
		stock.PackQuantity = *in.PackQuantity
	}
	if err := applyEnums(stock, in.Unit, in.Packaging); err != nil {
		return nil, err
	}
	if in.Shelving != nil {
		stock.Shelving = *in.Shelving
	}
	if in.Batch != nil {
		stock.Batch = *in.Batch
	}
	if in.Threshold != nil {
		stock.Threshold = *in.Threshold
	}
	switch {
	case in.ClearExpiration:
		stock.ExpirationDate = nil
	case in.ExpirationDate != nil:
		d, err := parseDate("expiration_date", *in.ExpirationDate)
		if err != nil {
			return nil, err
		}
		stock.ExpirationDate = &d
	}
	if in.ReceptionDate != nil {
		d, err := parseDate("reception_date", *in.ReceptionDate)
		if err != nil {
			return nil, err
		}
		stock.ReceptionDate = d
	}
	if err := uc.stockRepo.Update(ctx, stock); err != nil {
		return nil, err
	}
	out := mapper.Stock(stock)
	return &out, nil
}

// List lista stocks filtrando por producto y/o bodega.
func (uc *StockUseCase) List(ctx context.Context, q dto.StockListQuery) (*dto.StockListResponse, error) {
	if err := validation.Struct(q).Err(); err != nil {
		return nil, err
	}
	q.DefaultPage()
	var filter repository.StockFilter
	if q.ProductID > 0 {
		filter.ProductID = &q.ProductID
	}
	if q.WarehouseID > 0 {
		filter.WarehouseID = &q.WarehouseID
	}
	list, err := uc.stockRepo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockListResponse{
		Items: mapper.Stocks(list),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un stock y sus movimientos.
func (uc *StockUseCase) Delete(ctx context.Context, id int64) error {
	return uc.stockRepo.Delete(ctx, id)
}

func (uc *StockUseCase) get(ctx context.Context, id int64) (*entity.Stock, error) {
	stock, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}

func (uc *StockUseCase) checkRefs(ctx context.Context, productID, warehouseID int64) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	return nil
}

func applyEnums(stock *entity.Stock, unit, packaging *string) error {
	if unit != nil {
		u, err := entity.ParseStockUnit(*unit)
		if err != nil {
			return domain.NewValidationError("stock_unit", "oneof")
		}
		stock.Unit = u
	}
	if packaging != nil {
		p, err := entity.ParseStockPackaging(*packaging)
		if err != nil {
			return domain.NewValidationError("stock_packaging", "oneof")
		}
		stock.Packaging = p
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "datetime")
	}
	return d, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
