package usecase

import (
	"context"

	"github.com/jhoicas/labstock/internal/domain/repository"
)

// UserTxRunner ejecuta fn en una transacción con el repositorio de usuarios atado a ella.
// Crear un usuario escribe users, user_profiles y user_profile_warehouses.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}
