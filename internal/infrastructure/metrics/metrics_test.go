package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock/pkg/logger"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestLoginCounter(t *testing.T) {
	m := New("labstock", logger.Nop())
	m.Login(LoginSuccess)
	m.Login(LoginFailure)
	m.Login(LoginFailure)

	body := scrape(t, m)
	assert.Contains(t, body, `labstock_login_attempts_total{outcome="success"} 1`)
	assert.Contains(t, body, `labstock_login_attempts_total{outcome="failure"} 2`)
}

func TestObserveRequest(t *testing.T) {
	m := New("labstock", logger.Nop())
	m.ObserveRequest("GET", "/welcome", 200, 15*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `labstock_http_requests_total{method="GET",route="/welcome",status="200"} 1`)
	assert.Contains(t, body, "labstock_http_request_duration_seconds_bucket")
}
