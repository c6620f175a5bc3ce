package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "labstock", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, SessionStorageMemory, cfg.Session.Storage)
	assert.Equal(t, "labstock_session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.Expiration())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_STORAGE", "REDIS")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, SessionStorageRedis, cfg.Session.Storage)
	assert.True(t, cfg.Session.CookieSecure)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestValidate_SinSecretFueraDeDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_StorageDesconocido(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Env: "development"},
		Session: SessionConfig{Storage: "memcached", ExpirationMinutes: 10},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "lab", Password: "p@ss:word", DBName: "labstock", SSLMode: "disable"}
	assert.Equal(t, "postgres://lab:p%40ss%3Aword@db:5432/labstock?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
