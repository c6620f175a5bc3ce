package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/domain/entity"
	apphttp "github.com/jhoicas/labstock/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/labstock/pkg/jwt"
)

// buildProfileApp app mínima: AuthMiddleware + RequireProfile + handler que responde 200.
func buildProfileApp(allowed ...entity.Profile) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireProfile(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"profile": apphttp.GetProfile(c),
			})
		},
	)
	return app
}

func callProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func bearer(t *testing.T, profile string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, 7, profile, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireProfile_PerfilPermitido(t *testing.T) {
	app := buildProfileApp(entity.ProfileAdmin, entity.ProfileManager)
	resp := callProtected(t, app, bearer(t, "MAN"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 7, body["user_id"])
	assert.Equal(t, "MAN", body["profile"])
}

func TestRequireProfile_PerfilNoPermitido(t *testing.T) {
	app := buildProfileApp(entity.ProfileAdmin)
	resp := callProtected(t, app, bearer(t, "OPE"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireProfile_TokenSinPerfil(t *testing.T) {
	app := buildProfileApp(entity.ProfileAdmin)
	resp := callProtected(t, app, bearer(t, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_PROFILE")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildProfileApp(entity.ProfileAdmin)
	expired, err := pkgjwt.Generate(testJWTSecret, 7, "ADM", testIssuer, -1)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret-completamente-distinto", 7, "ADM", testIssuer, 60)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":  {"", "MISSING_TOKEN"},
		"sin esquema": {"token", "INVALID_TOKEN"},
		"malformado":  {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"expirado":    {"Bearer " + expired, "INVALID_TOKEN"},
		"otro secret": {"Bearer " + otherSecret, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := callProtected(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}
