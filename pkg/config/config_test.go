package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "phonestock-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR no debe usarse Redis")
	assert.Equal(t, "phonestock:changes", cfg.Redis.Channel)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOCK_TTL_SECONDS", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10, cfg.Redis.LockTTLSec, "TTL no positivo vuelve al valor por defecto")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "phonestock", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/phonestock?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h:1/x"
	assert.Equal(t, "postgres://u:p@h:1/x", c.ConnectionString())
}
