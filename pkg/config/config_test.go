package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pedidos-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 3, cfg.Sweep.DefaultDaysBefore)
	assert.Equal(t, "CL", cfg.Holidays.DefaultCountry)
	assert.Equal(t, "https://date.nager.at/api/v3", cfg.Holidays.BaseURL)
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR redis queda deshabilitado")
}

func TestFromViper_LeeValoresYCoerciona(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SWEEP_DEFAULT_DAYS_BEFORE", "5")
	v.Set("STORAGE_USE_SSL", "true")
	v.Set("APP_BASE_URL", "https://pedidos.example.cl/")
	v.Set("HOLIDAYS_COUNTRY", "ar")
	v.Set("REDIS_DB", "no-es-numero")

	cfg := config.FromViper(v)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Sweep.DefaultDaysBefore)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "https://pedidos.example.cl", cfg.App.BaseURL)
	assert.Equal(t, "AR", cfg.Holidays.DefaultCountry)
	assert.Equal(t, 0, cfg.Redis.DB, "valor inválido cae al default")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "pedidos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/pedidos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
