package entity

import (
	"fmt"
	"time"
)

// WarehouseType indica el rol de un lugar de almacenamiento.
type WarehouseType string

const (
	// WarehouseTypeMain almacén principal que abastece al resto.
	WarehouseTypeMain WarehouseType = "Main store"
	// WarehouseTypeStore almacén central del edificio que abastece a sus kanbans.
	WarehouseTypeStore WarehouseType = "Store"
	// WarehouseTypeKanban pequeño punto local donde los usuarios retiran productos.
	WarehouseTypeKanban WarehouseType = "Kanban"
)

// WarehouseTypes lista los valores válidos.
var WarehouseTypes = []WarehouseType{WarehouseTypeMain, WarehouseTypeStore, WarehouseTypeKanban}

// ParseWarehouseType convierte el valor persistido; vacío devuelve el tipo por defecto (Store).
func ParseWarehouseType(s string) (WarehouseType, error) {
	if s == "" {
		return WarehouseTypeStore, nil
	}
	switch t := WarehouseType(s); t {
	case WarehouseTypeMain, WarehouseTypeStore, WarehouseTypeKanban:
		return t, nil
	default:
		return "", fmt.Errorf("tipo de bodega desconocido %q", s)
	}
}

// Warehouse representa un lugar físico de almacenamiento. Se relaciona con Product vía Stock.
type Warehouse struct {
	ID        int64
	Name      string
	Location  string
	Type      WarehouseType
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Warehouse) String() string {
	return w.Name + " (" + w.Location + ")"
}
