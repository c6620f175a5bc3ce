package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/application/auth"
	"github.com/jhoicas/labstock/internal/application/inventory"
	"github.com/jhoicas/labstock/internal/application/usecase"
	"github.com/jhoicas/labstock/internal/domain/entity"
	"github.com/jhoicas/labstock/internal/infrastructure/memory"
	"github.com/jhoicas/labstock/internal/infrastructure/metrics"
	"github.com/jhoicas/labstock/internal/infrastructure/pdf"
	infrasession "github.com/jhoicas/labstock/internal/infrastructure/session"
	apphttp "github.com/jhoicas/labstock/internal/interfaces/http"
	"github.com/jhoicas/labstock/pkg/config"
	"github.com/jhoicas/labstock/pkg/logger"
)

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "labstock-test"
	testCookieName = "labstock_session"
	johnPassword   = "secret123"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
	authU *auth.AuthUseCase
	john  *entity.User
}

// newTestServer levanta la app completa sobre el store en memoria con "John Doe" (id=1) cargado.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	main := &entity.Warehouse{Name: "Main", Location: "Basement", Type: entity.WarehouseTypeMain}
	require.NoError(t, store.Warehouses().Create(ctx, main))

	hash, err := auth.HashPassword(johnPassword)
	require.NoError(t, err)
	john := &entity.User{
		Username:     "john",
		PasswordHash: hash,
		FirstName:    "John",
		LastName:     "Doe",
		IsActive:     true,
		Profile:      entity.ProfileAdmin,
		WarehouseIDs: []int64{main.ID},
	}
	require.NoError(t, store.Users().Create(ctx, john))
	require.Equal(t, int64(1), john.ID)

	log := logger.Nop()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})
	sessions := infrasession.NewStore(config.SessionConfig{CookieName: testCookieName, ExpirationMinutes: 60}, nil)

	deps := apphttp.RouterDeps{
		Sessions:    sessions,
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(store.Products()),
		WarehouseUC: usecase.NewWarehouseUseCase(store.Warehouses()),
		UserUC:      usecase.NewUserUseCase(store.Users(), store),
		StockUC:     inventory.NewStockUseCase(store, store.Stocks(), store.Products(), store.Warehouses()),
		MovementUC:  inventory.NewMovementUseCase(store.Movements(), store.Stocks()),
		AlertsUC:    inventory.NewAlertsUseCase(store.Stocks(), store.Products()),
		ReportUC:    inventory.NewReportUseCase(store.Stocks(), store.Products(), store.Warehouses(), pdf.NewMarotoPDFGenerator("labstock-test")),
		Metrics:     metrics.New("labstock", log),
		Log:         log,
		JWTSecret:   testJWTSecret,
		ServiceName: "labstock-test",
	}
	app := apphttp.NewServer(deps)

	// Ruta auxiliar solo de tests: expone el id guardado en la sesión.
	app.Get("/_test/session", func(c *fiber.Ctx) error {
		rs, err := apphttp.LoadSession(sessions, c)
		if err != nil {
			return err
		}
		id, ok := rs.UserID()
		return c.JSON(fiber.Map{"user_id": id, "ok": ok})
	})

	return &testServer{app: app, store: store, authU: authUC, john: john}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) postLogin(t *testing.T, username, password string) *http.Response {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, apphttp.LoginPath, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return s.do(t, req)
}

func (s *testServer) get(t *testing.T, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return s.do(t, req)
}

// apiRequest request JSON con bearer opcional.
func (s *testServer) apiRequest(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return s.do(t, req)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
