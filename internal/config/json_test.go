package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseJson_OverlaysPresentKeys(t *testing.T) {
	path := writeTemp(t, `{
		"backend_url": "https://api.factorg.cl",
		"auth_url": "https://auth.factorg.cl",
		"auth_key": "anon",
		"session_max_age": "2h",
		"request_timeout": 5000000000,
		"page_size": 40,
		"catalog_ttl": "1m",
		"s3_bucket": "dte-xml",
		"audit_dsn": "postgres://u:p@db/factorg"
	}`)

	var c Config
	c.LoadDefaults()
	parseJson(&c, path)

	assert.Equal(t, "https://api.factorg.cl", c.BackendURL)
	assert.Equal(t, "https://auth.factorg.cl", c.AuthURL)
	assert.Equal(t, "anon", c.AuthKey)
	assert.Equal(t, 2*time.Hour, c.SessionMaxAge)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, 40, c.PageSize)
	assert.Equal(t, time.Minute, c.CatalogTTL)
	assert.Equal(t, "dte-xml", c.S3Bucket)
	assert.Equal(t, "postgres://u:p@db/factorg", c.AuditDSN)

	// untouched
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestParseJson_EmptyPathIsNoop(t *testing.T) {
	var c Config
	c.LoadDefaults()
	want := c

	parseJson(&c, "")

	assert.Equal(t, want, c)
}

func TestParseJson_PanicsOnBadInput(t *testing.T) {
	var c Config

	assert.Panics(t, func() { parseJson(&c, filepath.Join(t.TempDir(), "missing.json")) })
	assert.Panics(t, func() { parseJson(&c, writeTemp(t, `{not json`)) })
}

func TestJsonConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", jsonConfigPath([]string{"-c", "a.json", "-a", ":1"}))
	assert.Equal(t, "", jsonConfigPath([]string{"-a", ":1"}))
}
