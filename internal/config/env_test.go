package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseEnv(&c, mapLookup(map[string]string{
		"FACTORG_BACKEND_URL":     "http://backend:8000",
		"FACTORG_SESSION_SECRET":  "s3cret",
		"FACTORG_REQUEST_TIMEOUT": "10s",
		"FACTORG_PAGE_SIZE":       "10",
		"FACTORG_S3_BUCKET":       "xml",
		"FACTORG_LOG_LEVEL":       "debug",
	}))

	assert.Equal(t, "http://backend:8000", c.BackendURL)
	assert.Equal(t, "s3cret", c.SessionSecret)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "xml", c.S3Bucket)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestParseEnv_LegacyBackendVariable(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseEnv(&c, mapLookup(map[string]string{"REACT_APP_BACKEND_URL": "http://legacy:8000"}))
	assert.Equal(t, "http://legacy:8000", c.BackendURL)

	parseEnv(&c, mapLookup(map[string]string{
		"REACT_APP_BACKEND_URL": "http://legacy:8000",
		"FACTORG_BACKEND_URL":   "http://new:8000",
	}))
	assert.Equal(t, "http://new:8000", c.BackendURL)
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseEnv(&c, mapLookup(map[string]string{"FACTORG_LISTEN_ADDR": "", "FACTORG_PAGE_SIZE": ""}))

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, 25, c.PageSize)
}

func TestParseEnv_PanicsOnMalformed(t *testing.T) {
	var c Config

	assert.Panics(t, func() { parseEnv(&c, mapLookup(map[string]string{"FACTORG_CATALOG_TTL": "soon"})) })
	assert.Panics(t, func() { parseEnv(&c, mapLookup(map[string]string{"FACTORG_PAGE_SIZE": "0"})) })
}
