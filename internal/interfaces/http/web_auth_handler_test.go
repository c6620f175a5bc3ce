package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/domain/entity"
	apphttp "github.com/jhoicas/labstock/internal/interfaces/http"
)

func TestLogin_CredencialesValidasAbreSesion(t *testing.T) {
	s := newTestServer(t)

	resp := s.postLogin(t, "john", johnPassword)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.WelcomePath, resp.Header.Get("Location"))
	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie, "el login debe emitir la cookie de sesión")
	assert.True(t, cookie.HttpOnly)

	got := decode[map[string]any](t, s.get(t, "/_test/session", cookie))
	assert.Equal(t, true, got["ok"])
	assert.EqualValues(t, 1, got["user_id"])

	welcome := s.get(t, apphttp.WelcomePath, cookie)
	assert.Equal(t, http.StatusOK, welcome.StatusCode)
	body := readBody(t, welcome)
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "Admin")
	assert.Contains(t, body, "Main")
}

func TestLogin_RecortaEspacios(t *testing.T) {
	s := newTestServer(t)

	resp := s.postLogin(t, " john ", " "+johnPassword+" ")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.WelcomePath, resp.Header.Get("Location"))
	require.NotNil(t, sessionCookie(t, resp))
}

func TestLogin_RegeneraIDDeSesion(t *testing.T) {
	s := newTestServer(t)

	// una sesión anónima previa no debe sobrevivir al login
	anon := &http.Cookie{Name: testCookieName, Value: "00000000-0000-0000-0000-00000000dead"}
	form := "username=john&password=" + johnPassword
	req := httptest.NewRequest(http.MethodPost, apphttp.LoginPath, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(anon)
	resp := s.do(t, req)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)
	assert.NotEqual(t, anon.Value, cookie.Value)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	cases := []struct {
		name, username, password string
	}{
		{"usuario inexistente", "ghost", "wrongpass"},
		{"password incorrecto", "john", "wrongpass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			resp := s.postLogin(t, tc.username, tc.password)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Nil(t, sessionCookie(t, resp), "un login fallido no toca la sesión")
			body := readBody(t, resp)
			assert.Contains(t, body, "Username or password invalid")
			assert.Contains(t, body, `value="`+tc.username+`"`)
			assert.NotContains(t, body, tc.password)
		})
	}
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u, err := s.store.Users().GetByID(ctx, s.john.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, s.store.Users().Update(ctx, u))

	resp := s.postLogin(t, "john", johnPassword)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Username or password invalid")
	assert.Nil(t, sessionCookie(t, resp))
}

func TestLogin_FormularioInvalido(t *testing.T) {
	s := newTestServer(t)

	resp := s.postLogin(t, strings.Repeat("x", 21), "whatever")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "at most 20 characters")
	assert.Nil(t, sessionCookie(t, resp))

	cases := []struct {
		name, username, password string
	}{
		{"vacíos", "", ""},
		{"solo espacios", "   ", " \t "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.postLogin(t, tc.username, tc.password)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body := readBody(t, resp)
			assert.Equal(t, 2, strings.Count(body, "This field is required."))
			assert.NotContains(t, body, "Username or password invalid")
			assert.Nil(t, sessionCookie(t, resp))
		})
	}

	// el límite de 20 se aplica tras recortar
	resp = s.postLogin(t, "  "+strings.Repeat("x", 20)+"  ", "whatever")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = readBody(t, resp)
	assert.NotContains(t, body, "at most 20 characters")
	assert.Contains(t, body, "Username or password invalid")
}

func TestLoginPage_MuestraCampos(t *testing.T) {
	s := newTestServer(t)

	check := func(resp *http.Response) {
		t.Helper()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		body := readBody(t, resp)
		assert.Contains(t, body, `name="username"`)
		assert.Contains(t, body, `maxlength="20"`)
		assert.Contains(t, body, `name="password" type="password"`)
	}

	check(s.get(t, apphttp.LoginPath, nil))

	// con sesión activa el formulario se sigue mostrando
	cookie := sessionCookie(t, s.postLogin(t, "john", johnPassword))
	require.NotNil(t, cookie)
	check(s.get(t, apphttp.LoginPath, cookie))
}

func TestWelcome_SinSesionRedirige(t *testing.T) {
	s := newTestServer(t)

	resp := s.get(t, apphttp.WelcomePath, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))

	resp = s.get(t, apphttp.WelcomePath, &http.Cookie{Name: testCookieName, Value: "no-existe"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))
}

func TestWelcome_IdentidadObsoletaExpiraSesion(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.postLogin(t, "john", johnPassword))
	require.NotNil(t, cookie)

	require.NoError(t, s.store.Users().Delete(context.Background(), s.john.ID))

	resp := s.get(t, apphttp.WelcomePath, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))

	got := decode[map[string]any](t, s.get(t, "/_test/session", cookie))
	assert.Equal(t, false, got["ok"], "la sesión debe quedar destruida")
}

func TestWelcome_NombreSinRecortar(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u, err := s.store.Users().GetByID(ctx, s.john.ID)
	require.NoError(t, err)
	u.LastName = ""
	u.Profile = entity.ProfileOperator
	require.NoError(t, s.store.Users().Update(ctx, u))

	cookie := sessionCookie(t, s.postLogin(t, "john", johnPassword))
	require.NotNil(t, cookie)
	body := readBody(t, s.get(t, apphttp.WelcomePath, cookie))
	assert.Contains(t, body, "Welcome, John </h1>")
	assert.Contains(t, body, "Operator")
}

func TestLogout_DestruyeSesion(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.postLogin(t, "john", johnPassword))
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, apphttp.LogoutPath, nil)
	req.AddCookie(cookie)
	resp := s.do(t, req)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))

	resp = s.get(t, apphttp.WelcomePath, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestRaiz_RedirigeABienvenida(t *testing.T) {
	s := newTestServer(t)
	resp := s.get(t, "/", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.WelcomePath, resp.Header.Get("Location"))
}
