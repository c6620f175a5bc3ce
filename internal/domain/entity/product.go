package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductType clasifica un producto de laboratorio.
type ProductType string

// Tipos de producto (valores persistidos).
const (
	ProductTypeConsumable ProductType = "Consumable"
	ProductTypeGlass      ProductType = "Glass"
	ProductTypeChemical   ProductType = "Chemical"
)

// ProductTypes lista los valores válidos en orden de presentación.
var ProductTypes = []ProductType{ProductTypeConsumable, ProductTypeGlass, ProductTypeChemical}

// ParseProductType convierte el valor persistido o recibido por la API.
func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(s); t {
	case ProductTypeConsumable, ProductTypeGlass, ProductTypeChemical:
		return t, nil
	default:
		return "", fmt.Errorf("tipo de producto desconocido %q", s)
	}
}

// Product representa un producto referenciado por su SKU interno.
// Critical indica que siempre debe quedar al menos una unidad en el almacén principal;
// es una marca consultiva, las escrituras no la hacen cumplir.
type Product struct {
	ID              int64
	SKU             string // referencia interna única
	Name            string
	Description     string
	Type            *ProductType // nil = sin clasificar
	Price           *decimal.Decimal
	Supplier        string
	SupplierRef     string
	Manufacturer    string
	ManufacturerRef string
	Critical        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *Product) String() string {
	return p.Name + " - " + p.SKU
}
