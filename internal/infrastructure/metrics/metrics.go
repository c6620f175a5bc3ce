// Package metrics expone contadores Prometheus de la aplicación.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/labstock/pkg/logger"
)

// Resultados de un intento de login.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginInvalid = "invalid" // formulario rechazado por validación
	LoginError   = "error"
)

// Metrics registro propio (no el global) con las métricas HTTP y de autenticación.
type Metrics struct {
	registry      *prometheus.Registry
	loginAttempts *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	log           *logger.Logger
}

// New crea y registra las métricas bajo el namespace dado.
func New(namespace string, log *logger.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Intentos de login por resultado.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de requests HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		log: log,
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.loginAttempts,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Login cuenta un intento de login con su resultado.
func (m *Metrics) Login(outcome string) {
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveRequest registra una request terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler handler net/http para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      m,
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Println implementa promhttp.Logger.
func (m *Metrics) Println(v ...interface{}) {
	m.log.Error().Str("component", "metrics").Msg(fmt.Sprint(v...))
}
