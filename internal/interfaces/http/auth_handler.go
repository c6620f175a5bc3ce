package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock/internal/application/auth"
	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/validation"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/infrastructure/metrics"
)

// AuthHandler login de la API JSON y consulta del usuario del token.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics LoginRecorder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, rec LoginRecorder) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: rec}
}

// Login godoc
// @Summary      Iniciar sesión (API)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginForm  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := validation.Struct(in).Err(); err != nil {
		h.metrics.Login(metrics.LoginInvalid)
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.metrics.Login(metrics.LoginFailure)
		} else {
			h.metrics.Login(metrics.LoginError)
		}
		return respondError(c, err)
	}
	h.metrics.Login(metrics.LoginSuccess)
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if errors.Is(err, domain.ErrNotFound) {
		return respondError(c, domain.ErrUnauthorized)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
