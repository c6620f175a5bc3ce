package dto

import "time"

// CreateStockRequest entrada para registrar un stock en una bodega.
// RecordReception agrega en la misma transacción un movimiento IN por UnitQuantity.
type CreateStockRequest struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	WarehouseID     int64   `json:"warehouse_id" validate:"required,gt=0"`
	UnitQuantity    int     `json:"unit_quantity" validate:"gte=0"`
	Unit            string  `json:"stock_unit" validate:"omitempty,oneof=L ML G KG MG"`
	PackQuantity    int     `json:"pack_quantity" validate:"gte=0"`
	Packaging       string  `json:"stock_packaging" validate:"omitempty,oneof=CDB BTL PCK BAG"`
	Shelving        string  `json:"shelving" validate:"max=4"`
	Batch           string  `json:"batch" validate:"max=20"`
	ExpirationDate  *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	ReceptionDate   *string `json:"reception_date" validate:"omitempty,datetime=2006-01-02"`
	Threshold       *int    `json:"threshold" validate:"omitempty,gte=0"`
	RecordReception bool    `json:"record_reception"`
}

// UpdateStockRequest entrada para actualización parcial. ClearExpiration elimina la fecha de vencimiento.
type UpdateStockRequest struct {
	UnitQuantity    *int    `json:"unit_quantity" validate:"omitempty,gte=0"`
	Unit            *string `json:"stock_unit" validate:"omitempty,oneof=L ML G KG MG"`
	PackQuantity    *int    `json:"pack_quantity" validate:"omitempty,gte=0"`
	Packaging       *string `json:"stock_packaging" validate:"omitempty,oneof=CDB BTL PCK BAG"`
	Shelving        *string `json:"shelving" validate:"omitempty,max=4"`
	Batch           *string `json:"batch" validate:"omitempty,max=20"`
	ExpirationDate  *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	ClearExpiration bool    `json:"clear_expiration"`
	ReceptionDate   *string `json:"reception_date" validate:"omitempty,datetime=2006-01-02"`
	Threshold       *int    `json:"threshold" validate:"omitempty,gte=0"`
}

// StockResponse salida de un stock.
type StockResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	WarehouseID    int64     `json:"warehouse_id"`
	UnitQuantity   int       `json:"unit_quantity"`
	Unit           string    `json:"stock_unit,omitempty"`
	PackQuantity   int       `json:"pack_quantity"`
	Packaging      string    `json:"stock_packaging,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
	Shelving       string    `json:"shelving"`
	Batch          string    `json:"batch"`
	ExpirationDate *string   `json:"expiration_date"`
	ReceptionDate  string    `json:"reception_date"`
	Threshold      int       `json:"threshold"`
}

// StockListQuery filtros de GET /api/stocks.
type StockListQuery struct {
	PageRequest
	ProductID   int64 `query:"product_id" validate:"omitempty,gt=0"`
	WarehouseID int64 `query:"warehouse_id" validate:"omitempty,gt=0"`
}

// StockListResponse lista paginada de stocks.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
