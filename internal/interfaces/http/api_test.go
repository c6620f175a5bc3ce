package http_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/internal/application/dto"
	"github.com/jhoicas/labstock/internal/domain/entity"
	pkgjwt "github.com/jhoicas/labstock/pkg/jwt"
)

func (s *testServer) apiLogin(t *testing.T) string {
	t.Helper()
	resp := s.apiRequest(t, http.MethodPost, "/api/auth/login", "", dto.LoginForm{Username: "john", Password: johnPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func tokenFor(t *testing.T, userID int64, profile entity.Profile) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, string(profile), testIssuer, 60)
	require.NoError(t, err)
	return tok
}

func TestAPI_LoginYMe(t *testing.T) {
	s := newTestServer(t)
	token := s.apiLogin(t)

	resp := s.apiRequest(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "john", me.Username)
	assert.Equal(t, "John Doe", me.DisplayName)
	assert.Equal(t, "ADM", me.Profile)

	resp = s.apiRequest(t, http.MethodPost, "/api/auth/login", "", dto.LoginForm{Username: "john", Password: "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/auth/login", "", dto.LoginForm{Username: "  john  ", Password: johnPassword})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/auth/login", "", dto.LoginForm{Username: "   ", Password: " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, map[string]string{"username": "required", "password": "required"}, errBody.Fields)
}

func TestAPI_MeConUsuarioBorrado(t *testing.T) {
	s := newTestServer(t)
	token := tokenFor(t, 99, entity.ProfileAdmin)
	resp := s.apiRequest(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_ProductosPorPerfil(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"sku": "ACE-500", "name": "Acetone", "type": "Chemical", "price": "12.40", "critical": true}

	resp := s.apiRequest(t, http.MethodPost, "/api/products", tokenFor(t, 1, entity.ProfileOperator), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/products", tokenFor(t, 1, entity.ProfileManager), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "ACE-500", created.SKU)

	resp = s.apiRequest(t, http.MethodPost, "/api/products", tokenFor(t, 1, entity.ProfileAdmin), body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// lectura abierta a cualquier perfil autenticado
	resp = s.apiRequest(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), tokenFor(t, 1, entity.ProfileUser), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodGet, "/api/products?critical=true&type=Chemical", tokenFor(t, 1, entity.ProfileUser), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)
	assert.Len(t, list.Items, 1)

	resp = s.apiRequest(t, http.MethodGet, "/api/products?type=Metal", tokenFor(t, 1, entity.ProfileUser), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodGet, "/api/products/abc", tokenFor(t, 1, entity.ProfileUser), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), tokenFor(t, 1, entity.ProfileManager), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), tokenFor(t, 1, entity.ProfileUser), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_StockYMovimientos(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	product := &entity.Product{SKU: "BEA-250", Name: "Beaker 250ml"}
	require.NoError(t, s.store.Products().Create(ctx, product))
	op := tokenFor(t, 1, entity.ProfileOperator)

	resp := s.apiRequest(t, http.MethodPost, "/api/stocks", op, map[string]any{
		"product_id":       product.ID,
		"warehouse_id":     1,
		"unit_quantity":    5,
		"stock_packaging":  "BOX",
		"record_reception": true,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "empaque inválido")

	resp = s.apiRequest(t, http.MethodPost, "/api/stocks", op, map[string]any{
		"product_id":       product.ID,
		"warehouse_id":     1,
		"unit_quantity":    5,
		"expiration_date":  "2030-01-31",
		"record_reception": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	stock := decode[dto.StockResponse](t, resp)
	assert.Equal(t, 5, stock.UnitQuantity)

	resp = s.apiRequest(t, http.MethodPost, fmt.Sprintf("/api/stocks/%d/movements", stock.ID), op, map[string]any{
		"movement_type": "OUT",
		"quantity":      2,
		"reason":        "Practical class",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	require.NotNil(t, mov.CreatedBy)
	assert.Equal(t, int64(1), *mov.CreatedBy)

	resp = s.apiRequest(t, http.MethodGet, fmt.Sprintf("/api/stocks/%d/movements", stock.ID), op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movs := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, movs.Items, 2)
	assert.Equal(t, 3, movs.Balance)

	// el libro de movimientos no altera la cantidad registrada
	resp = s.apiRequest(t, http.MethodGet, fmt.Sprintf("/api/stocks/%d", stock.ID), op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, decode[dto.StockResponse](t, resp).UnitQuantity)

	resp = s.apiRequest(t, http.MethodGet, fmt.Sprintf("/api/movements/%d", mov.ID), op, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/stocks/999/movements", op, map[string]any{"movement_type": "IN"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/stocks", tokenFor(t, 1, entity.ProfileUser), map[string]any{"product_id": product.ID, "warehouse_id": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_AlertasYReporte(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	product := &entity.Product{SKU: "ETH-1L", Name: "Ethanol 1L", Critical: true}
	require.NoError(t, s.store.Products().Create(ctx, product))
	require.NoError(t, s.store.Stocks().Create(ctx, &entity.Stock{
		ProductID: product.ID, WarehouseID: 1, UnitQuantity: 0, Threshold: entity.DefaultThreshold,
	}))
	tok := tokenFor(t, 1, entity.ProfileUser)

	resp := s.apiRequest(t, http.MethodGet, "/api/alerts/low-stock", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	low := decode[dto.AlertListResponse](t, resp)
	require.Len(t, low.Items, 1)
	assert.Contains(t, low.Items[0].Alerts, "EMPTY")

	resp = s.apiRequest(t, http.MethodGet, "/api/alerts/critical", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	critical := decode[[]dto.CriticalShortageResponse](t, resp)
	require.Len(t, critical, 1)
	assert.Equal(t, "ETH-1L", critical[0].SKU)

	for _, days := range []string{"-1", "3651", "106752"} {
		resp = s.apiRequest(t, http.MethodGet, "/api/alerts/expiring?days="+days, tok, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "days=%s", days)
	}
	resp = s.apiRequest(t, http.MethodGet, "/api/alerts/expiring?days=3650", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodGet, "/api/reports/stock.pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "%PDF", readBody(t, resp)[:4])

	resp = s.apiRequest(t, http.MethodGet, "/api/reports/stock.pdf?warehouse_id=42", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_UsuariosSoloAdmin(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"username": "maria", "password": "longenough", "first_name": "Maria", "profile": "OPE", "warehouse_ids": []int64{1}}

	resp := s.apiRequest(t, http.MethodPost, "/api/users", tokenFor(t, 1, entity.ProfileManager), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.apiRequest(t, http.MethodPost, "/api/users", tokenFor(t, 1, entity.ProfileAdmin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, []int64{1}, created.WarehouseIDs)

	resp = s.apiRequest(t, http.MethodPut, fmt.Sprintf("/api/users/%d/warehouses", created.ID), tokenFor(t, 1, entity.ProfileAdmin), map[string]any{"warehouse_ids": []int64{}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.UserResponse](t, resp).WarehouseIDs)

	// el usuario creado por la API puede entrar por el formulario HTML
	login := s.postLogin(t, "maria", "longenough")
	assert.Equal(t, http.StatusFound, login.StatusCode)
}

func TestOperativas_HealthYMetrics(t *testing.T) {
	s := newTestServer(t)
	s.postLogin(t, "ghost", "wrongpass")

	resp := s.get(t, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `labstock_login_attempts_total{outcome="failure"} 1`)
	assert.Contains(t, body, "labstock_http_requests_total")
}

func TestAPI_RutaInexistente(t *testing.T) {
	s := newTestServer(t)
	resp := s.apiRequest(t, http.MethodGet, "/api/nada", tokenFor(t, 1, entity.ProfileAdmin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}
