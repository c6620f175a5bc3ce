package entity

import (
	"fmt"
	"time"
)

// Profile perfil del usuario dentro de la organización.
type Profile string

const (
	ProfileAdmin    Profile = "ADM"
	ProfileManager  Profile = "MAN"
	ProfileOperator Profile = "OPE"
	ProfileUser     Profile = "USR"
)

// ParseProfile convierte el código persistido; vacío devuelve ProfileUser.
func ParseProfile(s string) (Profile, error) {
	if s == "" {
		return ProfileUser, nil
	}
	switch p := Profile(s); p {
	case ProfileAdmin, ProfileManager, ProfileOperator, ProfileUser:
		return p, nil
	default:
		return "", fmt.Errorf("perfil desconocido %q", s)
	}
}

// Label nombre legible del perfil.
func (p Profile) Label() string {
	switch p {
	case ProfileAdmin:
		return "Admin"
	case ProfileManager:
		return "Manager"
	case ProfileOperator:
		return "Operator"
	case ProfileUser:
		return "User"
	default:
		return string(p)
	}
}

// User identidad autenticable con su perfil y las bodegas a las que accede.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	IsActive     bool
	Profile      Profile
	WarehouseIDs []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName concatena nombre y apellido con un espacio, sin recortar:
// si falta alguno el resultado conserva el espacio inicial o final.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) String() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.Profile)
}
