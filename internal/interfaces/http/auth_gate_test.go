package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/domain/entity"
	infrasession "github.com/jhoicas/labstock/internal/infrastructure/session"
	apphttp "github.com/jhoicas/labstock/internal/interfaces/http"
	"github.com/jhoicas/labstock/pkg/config"
	"github.com/jhoicas/labstock/pkg/logger"
)

type identityFunc func(ctx context.Context, id int64) (*entity.User, error)

func (f identityFunc) Identity(ctx context.Context, id int64) (*entity.User, error) {
	return f(ctx, id)
}

// gateApp expone /login-as/:id para sembrar la sesión y /private detrás de RequireLogin.
func gateApp(identities apphttp.IdentitySource) *fiber.App {
	store := infrasession.NewStore(config.SessionConfig{CookieName: testCookieName, ExpirationMinutes: 5}, nil)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/login-as/:id", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		rs, err := apphttp.LoadSession(store, c)
		if err != nil {
			return err
		}
		return rs.SignIn(int64(id))
	})
	app.Get("/private", apphttp.RequireLogin(store, identities, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.CurrentIdentity(c).Username)
	})
	return app
}

func seedSession(t *testing.T, app *fiber.App, id int64) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login-as/"+strconv.FormatInt(id, 10), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("sin cookie de sesión")
	return nil
}

func TestRequireLogin_FallaDeIdentidadEs500(t *testing.T) {
	app := gateApp(identityFunc(func(context.Context, int64) (*entity.User, error) {
		return nil, errors.New("db caída")
	}))
	cookie := seedSession(t, app, 3)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequireLogin_UsuarioActivoPasa(t *testing.T) {
	app := gateApp(identityFunc(func(_ context.Context, id int64) (*entity.User, error) {
		return &entity.User{ID: id, Username: "jdoe", IsActive: true}, nil
	}))
	cookie := seedSession(t, app, 3)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireLogin_UsuarioInactivoRedirige(t *testing.T) {
	app := gateApp(identityFunc(func(_ context.Context, id int64) (*entity.User, error) {
		return &entity.User{ID: id, Username: "jdoe", IsActive: false}, nil
	}))
	cookie := seedSession(t, app, 3)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))
}
