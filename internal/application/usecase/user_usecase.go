package usecase

import (
	"context"

	"github.com/jhoicas/labstock/internal/application/auth"
	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/mapper"
	"github.com/jhoicas/labstock/internal/application/validation"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios y sus perfiles.
type UserUseCase struct {
	repo     repository.UserRepository
	txRunner UserTxRunner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, txRunner UserTxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, txRunner: txRunner}
}

// Create hashea la contraseña y persiste usuario, perfil y bodegas en una transacción.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	profile, err := entity.ParseProfile(in.Profile)
	if err != nil {
		return nil, domain.NewValidationError("profile", "oneof")
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		IsActive:     active,
		Profile:      profile,
		WarehouseIDs: in.WarehouseIDs,
	}
	err = uc.txRunner.RunUsers(ctx, func(users repository.UserRepository) error {
		existing, err := users.GetByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	out := mapper.User(user)
	return &out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := mapper.User(user)
	return &out, nil
}

// SetWarehouses reemplaza las bodegas accesibles por el usuario.
func (uc *UserUseCase) SetWarehouses(ctx context.Context, id int64, in dto.SetWarehousesRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, err
	}
	if err := uc.repo.SetWarehouses(ctx, id, in.WarehouseIDs); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Upsert crea el usuario o, si el username existe, actualiza sus datos, contraseña y bodegas.
// Lo usa el comando de alta de usuarios.
func (uc *UserUseCase) Upsert(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, bool, error) {
	if err := validation.Struct(in).Err(); err != nil {
		return nil, false, err
	}
	profile, err := entity.ParseProfile(in.Profile)
	if err != nil {
		return nil, false, domain.NewValidationError("profile", "oneof")
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	var (
		user    *entity.User
		created bool
	)
	err = uc.txRunner.RunUsers(ctx, func(users repository.UserRepository) error {
		existing, err := users.GetByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing == nil {
			created = true
			user = &entity.User{Username: in.Username, IsActive: true}
		} else {
			user = existing
		}
		user.PasswordHash = hash
		user.FirstName = in.FirstName
		user.LastName = in.LastName
		user.Email = in.Email
		user.Profile = profile
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if created {
			user.WarehouseIDs = in.WarehouseIDs
			return users.Create(ctx, user)
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		user.WarehouseIDs = in.WarehouseIDs
		return users.SetWarehouses(ctx, user.ID, in.WarehouseIDs)
	})
	if err != nil {
		return nil, false, err
	}
	out := mapper.User(user)
	return &out, created, nil
}

func (uc *UserUseCase) get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
