package repository

import (
	"context"

	"github.com/jhoicas/labstock/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y su perfil (DIP).
type UserRepository interface {
	// Create inserta usuario, perfil y bodegas; usar dentro de una transacción.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update modifica datos del usuario y su perfil (no las bodegas).
	Update(ctx context.Context, user *entity.User) error
	SetWarehouses(ctx context.Context, userID int64, warehouseIDs []int64) error
	Delete(ctx context.Context, id int64) error
}
