package entity

import (
	"fmt"
	"time"
)

// StockUnit unidad de medida del contenido.
type StockUnit string

const (
	StockUnitLiter      StockUnit = "L"
	StockUnitMilliliter StockUnit = "ML"
	StockUnitGram       StockUnit = "G"
	StockUnitKilogram   StockUnit = "KG"
	StockUnitMilligram  StockUnit = "MG"
)

// ParseStockUnit convierte el código persistido. Vacío significa "sin unidad".
func ParseStockUnit(s string) (StockUnit, error) {
	switch u := StockUnit(s); u {
	case "", StockUnitLiter, StockUnitMilliliter, StockUnitGram, StockUnitKilogram, StockUnitMilligram:
		return u, nil
	default:
		return "", fmt.Errorf("unidad de stock desconocida %q", s)
	}
}

// Label nombre legible de la unidad.
func (u StockUnit) Label() string {
	switch u {
	case StockUnitLiter:
		return "Liter"
	case StockUnitMilliliter:
		return "Milliliter"
	case StockUnitGram:
		return "Gram"
	case StockUnitKilogram:
		return "Kilogram"
	case StockUnitMilligram:
		return "Milligram"
	default:
		return ""
	}
}

// StockPackaging tipo de empaque.
type StockPackaging string

const (
	StockPackagingCardboard StockPackaging = "CDB"
	StockPackagingBottle    StockPackaging = "BTL"
	StockPackagingPack      StockPackaging = "PCK"
	StockPackagingBag       StockPackaging = "BAG"
)

// ParseStockPackaging convierte el código persistido. Vacío significa "sin empaque".
func ParseStockPackaging(s string) (StockPackaging, error) {
	switch p := StockPackaging(s); p {
	case "", StockPackagingCardboard, StockPackagingBottle, StockPackagingPack, StockPackagingBag:
		return p, nil
	default:
		return "", fmt.Errorf("empaque desconocido %q", s)
	}
}

// Label nombre legible del empaque.
func (p StockPackaging) Label() string {
	switch p {
	case StockPackagingCardboard:
		return "Cardboard"
	case StockPackagingBottle:
		return "Bottle"
	case StockPackagingPack:
		return "Pack"
	case StockPackagingBag:
		return "Bag"
	default:
		return ""
	}
}

// DefaultThreshold nivel de alerta por defecto.
const DefaultThreshold = 1

// Stock registra la existencia de un producto en una bodega.
// LastUpdated lo fija la persistencia en cada escritura, no el llamador.
type Stock struct {
	ID             int64
	ProductID      int64
	WarehouseID    int64
	UnitQuantity   int
	Unit           StockUnit
	PackQuantity   int
	Packaging      StockPackaging
	LastUpdated    time.Time
	Shelving       string // código de estantería (máx. 4)
	Batch          string // número de lote
	ExpirationDate *time.Time
	ReceptionDate  time.Time
	Threshold      int
}

// BelowThreshold indica si la cantidad alcanzó el nivel de alerta.
func (s *Stock) BelowThreshold() bool {
	return s.UnitQuantity <= s.Threshold
}

// ExpiredAt indica si el lote está vencido en el instante dado.
func (s *Stock) ExpiredAt(now time.Time) bool {
	return s.ExpirationDate != nil && s.ExpirationDate.Before(now)
}
