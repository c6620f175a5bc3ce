package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/application/validation"
	"github.com/jhoicas/labstock/internal/domain"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/infrastructure/metrics"
	"github.com/jhoicas/labstock/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"login":   template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/login.html")),
	"welcome": template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/welcome.html")),
}

const invalidCredentials = "Username or password invalid"

// Authenticator verifica credenciales (lo implementa *auth.AuthUseCase).
type Authenticator interface {
	Verify(ctx context.Context, username, password string) (*entity.User, error)
}

// WarehouseLookup resuelve las bodegas accesibles que se muestran en la bienvenida.
type WarehouseLookup interface {
	GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error)
}

// LoginRecorder cuenta intentos de login por resultado (lo implementa *metrics.Metrics).
type LoginRecorder interface {
	Login(outcome string)
}

// WebAuthHandler páginas HTML de login, bienvenida y logout.
type WebAuthHandler struct {
	store      *session.Store
	auth       Authenticator
	warehouses WarehouseLookup
	metrics    LoginRecorder
	log        *logger.Logger
}

// NewWebAuthHandler construye el handler.
func NewWebAuthHandler(store *session.Store, auth Authenticator, warehouses WarehouseLookup, rec LoginRecorder, log *logger.Logger) *WebAuthHandler {
	return &WebAuthHandler{store: store, auth: auth, warehouses: warehouses, metrics: rec, log: log}
}

type loginPage struct {
	Title    string
	Username string
	Message  string
	Errors   map[string]string
}

type welcomePage struct {
	Title       string
	DisplayName string
	Username    string
	Profile     string
	Warehouses  []dto.WarehouseResponse
}

// LoginPage GET /users/login: formulario vacío, haya o no sesión.
func (h *WebAuthHandler) LoginPage(c *fiber.Ctx) error {
	return render(c, "login", loginPage{Title: "Sign in"})
}

// Login POST /users/login. Solo un login correcto toca la sesión.
func (h *WebAuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		h.metrics.Login(metrics.LoginInvalid)
		return render(c, "login", loginPage{Title: "Sign in", Message: "Invalid form submission"})
	}
	form.Normalize()
	if res := validation.Struct(form); !res.OK() {
		h.metrics.Login(metrics.LoginInvalid)
		return render(c, "login", loginPage{
			Title:    "Sign in",
			Username: form.Username,
			Errors:   fieldMessages(res.Errors),
		})
	}

	user, err := h.auth.Verify(c.UserContext(), form.Username, form.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		h.metrics.Login(metrics.LoginFailure)
		h.log.Info().Str("username", form.Username).Str("ip", c.IP()).Msg("login rechazado")
		return render(c, "login", loginPage{Title: "Sign in", Username: form.Username, Message: invalidCredentials})
	}
	if err != nil {
		h.metrics.Login(metrics.LoginError)
		return err
	}

	rs, err := LoadSession(h.store, c)
	if err != nil {
		h.metrics.Login(metrics.LoginError)
		return err
	}
	if err := rs.SignIn(user.ID); err != nil {
		h.metrics.Login(metrics.LoginError)
		return err
	}
	h.metrics.Login(metrics.LoginSuccess)
	h.log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("login correcto")
	return c.Redirect(WelcomePath, fiber.StatusFound)
}

// Welcome GET /welcome (detrás de RequireLogin).
func (h *WebAuthHandler) Welcome(c *fiber.Ctx) error {
	user := CurrentIdentity(c)
	if user == nil {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}
	page := welcomePage{
		Title:       "Welcome",
		DisplayName: user.DisplayName(),
		Username:    user.Username,
		Profile:     user.Profile.Label(),
	}
	for _, id := range user.WarehouseIDs {
		w, err := h.warehouses.GetByID(c.UserContext(), id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		page.Warehouses = append(page.Warehouses, *w)
	}
	return render(c, "welcome", page)
}

// Logout POST /users/logout: destruye la sesión y vuelve al login.
func (h *WebAuthHandler) Logout(c *fiber.Ctx) error {
	rs, err := LoadSession(h.store, c)
	if err != nil {
		return err
	}
	if id, ok := rs.UserID(); ok {
		h.log.Info().Int64("user_id", id).Msg("logout")
	}
	if err := rs.Destroy(); err != nil {
		return err
	}
	return c.Redirect(LoginPath, fiber.StatusFound)
}

func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages[name].ExecuteTemplate(&buf, name+".html", data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// fieldMessages traduce las reglas de validación a mensajes del formulario.
func fieldMessages(errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, rule := range errs {
		switch rule {
		case "required":
			out[field] = "This field is required."
		case "max":
			out[field] = "Ensure this value has at most 20 characters."
		default:
			out[field] = "Enter a valid value."
		}
	}
	return out
}
