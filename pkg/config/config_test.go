package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REPORT_PAGE_SIZE", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sgq-pro", cfg.App.Name)
	assert.Equal(t, 1000, cfg.Report.PageSize, "página vazia cai no padrão do banco")
	assert.Equal(t, 3, cfg.Report.PageRetries)
	assert.Equal(t, 300*time.Second, cfg.Report.CacheTTL)
	assert.Equal(t, 50*time.Second, cfg.Report.FetchTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REPORT_API_KEY", "chave-bi")
	t.Setenv("REPORT_PAGE_SIZE", "250")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "60")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chave-bi", cfg.Report.APIKey)
	assert.Equal(t, 250, cfg.Report.PageSize)
	assert.Equal(t, time.Minute, cfg.Report.CacheTTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_PageSizeInvalido(t *testing.T) {
	t.Setenv("REPORT_PAGE_SIZE", "-5")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "sgq", Password: "p@ss:word", DBName: "sgq_pro", SSLMode: "disable"}
	assert.Equal(t, "postgres://sgq:p%40ss%3Aword@db:5432/sgq_pro?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://outro"
	assert.Equal(t, "postgres://outro", c.ConnectionString())
}

func TestLoad_Pool(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
}
