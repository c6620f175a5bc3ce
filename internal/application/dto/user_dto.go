package dto

import (
	"strings"
	"time"
)

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username     string  `json:"username" validate:"required,max=20"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	FirstName    string  `json:"first_name" validate:"max=150"`
	LastName     string  `json:"last_name" validate:"max=150"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Profile      string  `json:"profile" validate:"omitempty,oneof=ADM MAN OPE USR"`
	WarehouseIDs []int64 `json:"warehouse_ids" validate:"omitempty,dive,gt=0"`
	IsActive     *bool   `json:"is_active"`
}

// SetWarehousesRequest reemplaza las bodegas accesibles de un usuario.
type SetWarehousesRequest struct {
	WarehouseIDs []int64 `json:"warehouse_ids" validate:"omitempty,dive,gt=0"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Profile      string    `json:"profile"`
	ProfileLabel string    `json:"profile_label"`
	WarehouseIDs []int64   `json:"warehouse_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginForm credenciales del formulario HTML y de POST /api/auth/login.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required,max=20"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Normalize recorta espacios de ambos campos antes de validar: "   " cuenta como vacío.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
