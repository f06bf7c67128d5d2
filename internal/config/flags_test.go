package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_SetsFields(t *testing.T) {
	var c Config
	c.LoadDefaults()

	parseFlags(&c, []string{
		"-c", "ignored.json",
		"-a", ":9090",
		"-b", "http://api:8000",
		"-u", "http://auth:9999",
		"-k", "anon-key",
		"-m", "30",
		"-t", "15",
		"-n", "10",
		"-l", "60",
		"-o", "xml-archive",
		"-e", "http://minio:9000",
		"-f", "/tmp/cli.db",
	})

	assert.Equal(t, ":9090", c.ListenAddr)
	assert.Equal(t, "http://api:8000", c.BackendURL)
	assert.Equal(t, "http://auth:9999", c.AuthURL)
	assert.Equal(t, "anon-key", c.AuthKey)
	assert.Equal(t, 30*time.Minute, c.SessionMaxAge)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, time.Minute, c.CatalogTTL)
	assert.Equal(t, "xml-archive", c.S3Bucket)
	assert.Equal(t, "http://minio:9000", c.S3Endpoint)
	assert.Equal(t, "/tmp/cli.db", c.CLIDatabase)
}

func TestParseFlags_KeepsValuesWhenAbsent(t *testing.T) {
	var c Config
	c.LoadDefaults()
	want := c

	parseFlags(&c, nil)

	assert.Equal(t, want, c)
}

func TestParseFlags_PanicsOnBadNumber(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Panics(t, func() { parseFlags(&c, []string{"-n", "many"}) })
}
