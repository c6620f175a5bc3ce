package dto

import "time"

// CreateMovementRequest body para POST /api/stocks/:id/movements. Quantity nil = 1.
type CreateMovementRequest struct {
	Type     string `json:"movement_type" validate:"required,oneof=IN OUT"`
	Quantity *int   `json:"quantity" validate:"omitempty,gt=0"`
	Reason   string `json:"reason" validate:"max=250"`
}

// MovementListQuery ventana temporal opcional (RFC 3339) y paginación.
type MovementListQuery struct {
	PageRequest
	From string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        int64     `json:"id"`
	StockID   int64     `json:"stock_id"`
	Type      string    `json:"movement_type"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
	CreatedBy *int64    `json:"created_by,omitempty"`
}

// MovementListResponse página de movimientos. Balance es el saldo neto de toda la ventana
// [from, to), no solo de los Items de la página.
type MovementListResponse struct {
	Items   []MovementResponse `json:"items"`
	Page    PageResponse       `json:"page"`
	Balance int                `json:"balance"`
}
