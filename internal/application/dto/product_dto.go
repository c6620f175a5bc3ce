package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU             string           `json:"sku" validate:"required,max=10"`
	Name            string           `json:"name" validate:"required,max=100"`
	Description     string           `json:"description" validate:"max=255"`
	Type            *string          `json:"type" validate:"omitempty,oneof=Consumable Glass Chemical"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Supplier        string           `json:"supplier" validate:"max=30"`
	SupplierRef     string           `json:"supplier_ref" validate:"max=30"`
	Manufacturer    string           `json:"manufacturer" validate:"max=30"`
	ManufacturerRef string           `json:"manufacturer_ref" validate:"max=30"`
	Critical        bool             `json:"critical"`
}

// UpdateProductRequest entrada para actualización parcial de un producto.
type UpdateProductRequest struct {
	SKU             *string          `json:"sku" validate:"omitempty,min=1,max=10"`
	Name            *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string          `json:"description" validate:"omitempty,max=255"`
	Type            *string          `json:"type" validate:"omitempty,oneof=Consumable Glass Chemical"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Supplier        *string          `json:"supplier" validate:"omitempty,max=30"`
	SupplierRef     *string          `json:"supplier_ref" validate:"omitempty,max=30"`
	Manufacturer    *string          `json:"manufacturer" validate:"omitempty,max=30"`
	ManufacturerRef *string          `json:"manufacturer_ref" validate:"omitempty,max=30"`
	Critical        *bool            `json:"critical"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64            `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Type            *string          `json:"type"`
	Price           *decimal.Decimal `json:"price"`
	Supplier        string           `json:"supplier"`
	SupplierRef     string           `json:"supplier_ref"`
	Manufacturer    string           `json:"manufacturer"`
	ManufacturerRef string           `json:"manufacturer_ref"`
	Critical        bool             `json:"critical"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	PageRequest
	Type     string `query:"type" validate:"omitempty,oneof=Consumable Glass Chemical"`
	Critical *bool  `query:"critical"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
