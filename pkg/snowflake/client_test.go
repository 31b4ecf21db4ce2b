package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConfig() *ClientConfig {
	return &ClientConfig{
		Account:   "xy12345.eu-west-1",
		User:      "dashboard",
		Password:  "secret",
		Database:  "ZEN_MARKET",
		Schema:    "FORECASTING",
		Warehouse: "COMPUTE_WH",
	}
}

func TestConfigValidate_RequiresAllSixFields(t *testing.T) {
	assert.NoError(t, fullConfig().validate())

	mutations := []struct {
		name   string
		mutate func(*ClientConfig)
	}{
		{"account", func(c *ClientConfig) { c.Account = "" }},
		{"user", func(c *ClientConfig) { c.User = "" }},
		{"password", func(c *ClientConfig) { c.Password = "" }},
		{"database", func(c *ClientConfig) { c.Database = "" }},
		{"schema", func(c *ClientConfig) { c.Schema = "" }},
		{"warehouse", func(c *ClientConfig) { c.Warehouse = "" }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			cfg := fullConfig()
			m.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), m.name+" is required")
		})
	}
}

func TestBuildDSN(t *testing.T) {
	cfg := fullConfig()
	cfg.KeepAlive = true

	dsn, err := buildDSN(*cfg)
	require.NoError(t, err)
	assert.Contains(t, dsn, "xy12345.eu-west-1")
	assert.Contains(t, dsn, "ZEN_MARKET")
	assert.Contains(t, dsn, "FORECASTING")
	assert.Contains(t, dsn, "warehouse=COMPUTE_WH")
	assert.Contains(t, dsn, "client_session_keep_alive=true")
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"ZEN_MARKET"`, quoteIdent("ZEN_MARKET"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
