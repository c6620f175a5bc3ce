package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega. Type vacío = Store.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Location string `json:"location" validate:"required,max=50"`
	Type     string `json:"type" validate:"omitempty,oneof='Main store' Store Kanban"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	Location *string `json:"location" validate:"omitempty,min=1,max=50"`
	Type     *string `json:"type" validate:"omitempty,oneof='Main store' Store Kanban"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
