package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/pkg/jwt"
)

// Locals keys para UserID y Profile en Fiber (API JSON).
const (
	LocalUserID  = "user_id"
	LocalProfile = "profile"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Profile a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, profile, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalProfile, profile)
		return c.Next()
	}
}

// RequireProfile autoriza solo a los perfiles indicados. Debe ir después de AuthMiddleware.
func RequireProfile(allowed ...entity.Profile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetProfile(c)
		if profile == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_PROFILE", Message: "el token no incluye perfil"})
		}
		if !slices.Contains(allowed, entity.Profile(profile)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sin permisos para esta operación"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (0 si no pasó por AuthMiddleware).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetProfile devuelve el perfil del token.
func GetProfile(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalProfile).(string)
	return s
}

// callerID UserID como puntero para created_by (nil si no hay usuario).
func callerID(c *fiber.Ctx) *int64 {
	if id := GetUserID(c); id > 0 {
		return &id
	}
	return nil
}
