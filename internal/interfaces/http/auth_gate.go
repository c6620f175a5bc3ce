package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/pkg/logger"
)

// Rutas de las páginas HTML.
const (
	LoginPath   = "/users/login"
	LogoutPath  = "/users/logout"
	WelcomePath = "/welcome"
)

// LocalIdentity key de c.Locals con el *entity.User autenticado por sesión.
const LocalIdentity = "identity"

// IdentitySource resuelve el id guardado en sesión (lo implementa *auth.AuthUseCase).
type IdentitySource interface {
	Identity(ctx context.Context, id int64) (*entity.User, error)
}

// RequireLogin deja pasar solo requests con una sesión que apunte a un usuario activo.
// Sin sesión redirige al login; una identidad borrada o inactiva expira la sesión.
func RequireLogin(store *session.Store, identities IdentitySource, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rs, err := LoadSession(store, c)
		if err != nil {
			return err
		}
		id, ok := rs.UserID()
		if !ok {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		user, err := identities.Identity(c.UserContext(), id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if user == nil || !user.IsActive {
			log.Info().Int64("user_id", id).Msg("sesión con identidad inexistente o inactiva, se destruye")
			if err := rs.Destroy(); err != nil {
				return err
			}
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		c.Locals(LocalIdentity, user)
		return c.Next()
	}
}

// CurrentIdentity usuario cargado por RequireLogin (nil fuera de rutas protegidas).
func CurrentIdentity(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalIdentity).(*entity.User)
	return u
}
