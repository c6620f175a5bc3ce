package entity

import (
	"fmt"
	"time"
)

// MovementType sentido del movimiento.
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"  // entrada
	MovementTypeOut MovementType = "OUT" // salida
)

// ParseMovementType convierte el valor recibido.
func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(s); t {
	case MovementTypeIn, MovementTypeOut:
		return t, nil
	default:
		return "", fmt.Errorf("tipo de movimiento desconocido %q", s)
	}
}

// StockMovement es una entrada del libro de movimientos: solo se inserta, nunca se modifica.
// Timestamp lo asigna la persistencia al insertar.
type StockMovement struct {
	ID        int64
	StockID   int64
	Type      MovementType
	Quantity  int
	Timestamp time.Time
	Reason    string
	CreatedBy *int64 // usuario que registró el movimiento, si se conoce
}
