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

// MovementUseCase registra y consulta el libro de movimientos. No hay edición ni borrado:
// un movimiento se corrige registrando otro en sentido contrario.
type MovementUseCase struct {
	movRepo   repository.StockMovementRepository
	stockRepo repository.StockRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(movRepo repository.StockMovementRepository, stockRepo repository.StockRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, stockRepo: stockRepo}
}

// Record agrega un movimiento al stock. No modifica unit_quantity.
func (uc *MovementUseCase) Record(ctx context.Context, stockID int64, userID *int64, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	t, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return nil, domain.NewValidationError("movement_type", "oneof")
	}
	stock, err := uc.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	mov := &entity.StockMovement{
		StockID:   stockID,
		Type:      t,
		Quantity:  qty,
		Reason:    in.Reason,
		CreatedBy: userID,
	}
	if err := uc.movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	out := mapper.Movement(mov)
	return &out, nil
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	out := mapper.Movement(mov)
	return &out, nil
}

// ListByStock lista movimientos de un stock en orden cronológico, con ventana [from, to) opcional.
func (uc *MovementUseCase) ListByStock(ctx context.Context, stockID int64, q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	if err := validation.Struct(q).Err(); err != nil {
		return nil, err
	}
	q.DefaultPage()
	stock, err := uc.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	from, err := parseInstant("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseInstant("to", q.To)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListByStock(ctx, stockID, from, to, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	balance, err := uc.movRepo.BalanceByStock(ctx, stockID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items:   mapper.Movements(list),
		Page:    dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
		Balance: balance,
	}, nil
}

func parseInstant(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "datetime")
	}
	return &t, nil
}
