package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// AlertLevel clasificación de un stock frente a su umbral y su vencimiento.
type AlertLevel string

const (
	AlertNone     AlertLevel = ""
	AlertLow      AlertLevel = "LOW"      // unit_quantity <= threshold
	AlertEmpty    AlertLevel = "EMPTY"    // sin unidades
	AlertExpiring AlertLevel = "EXPIRING" // vence dentro de la ventana
	AlertExpired  AlertLevel = "EXPIRED"
)

// Classify devuelve las alertas aplicables a un stock en el instante now.
// within es la ventana de aviso de vencimiento; 0 solo marca los vencidos.
func Classify(s *entity.Stock, now time.Time, within time.Duration) []AlertLevel {
	var out []AlertLevel
	switch {
	case s.UnitQuantity == 0:
		out = append(out, AlertEmpty)
	case s.BelowThreshold():
		out = append(out, AlertLow)
	}
	if s.ExpirationDate != nil {
		switch {
		case s.ExpiredAt(now):
			out = append(out, AlertExpired)
		case within > 0 && s.ExpirationDate.Before(now.Add(within)):
			out = append(out, AlertExpiring)
		}
	}
	return out
}

// Shortage producto crítico sin unidades suficientes en los almacenes principales.
type Shortage struct {
	Product *entity.Product
	Units   int
}

// CriticalShortages cruza los productos críticos con las unidades disponibles en almacenes principales.
// Un producto crítico debe conservar al menos una unidad; la marca no bloquea escrituras, solo se reporta.
func CriticalShortages(products []*entity.Product, mainUnits map[int64]int) []Shortage {
	var out []Shortage
	for _, p := range products {
		if !p.Critical {
			continue
		}
		if units := mainUnits[p.ID]; units < 1 {
			out = append(out, Shortage{Product: p, Units: units})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.SKU < out[j].Product.SKU })
	return out
}

// LedgerBalance saldo neto de un conjunto de movimientos (entradas menos salidas).
// Es informativo: registrar movimientos nunca modifica unit_quantity.
func LedgerBalance(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIn:
			total += m.Quantity
		case entity.MovementTypeOut:
			total -= m.Quantity
		}
	}
	return total
}

// StockValue valoriza unidades a precio del producto; sin precio vale cero.
func StockValue(price *decimal.Decimal, units int) decimal.Decimal {
	if price == nil || units <= 0 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(units))).Round(2)
}
