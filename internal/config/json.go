package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/factorg/internal/flagx"
	"github.com/dmitrijs2005/factorg/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30s" and integer nanoseconds are accepted.
type JsonConfig struct {
	ListenAddr     string         `json:"listen_addr"`
	BackendURL     string         `json:"backend_url"`
	AuthURL        string         `json:"auth_url"`
	AuthKey        string         `json:"auth_key"`
	JWTSecret      string         `json:"jwt_secret"`
	SessionSecret  string         `json:"session_secret"`
	SessionMaxAge  timex.Duration `json:"session_max_age"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	PageSize       int            `json:"page_size"`
	CatalogTTL     timex.Duration `json:"catalog_ttl"`
	AuditDSN       string         `json:"audit_dsn"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3Endpoint     string         `json:"s3_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	CLIDatabase    string         `json:"cli_database"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

func jsonConfigPath(args []string) string {
	return flagx.ConfigPath(args)
}

// parseJson overlays values from the JSON file at path onto config.
// Keys absent from the file leave the current value untouched.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config, path string) {
	// nothing to load
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.BackendURL, c.BackendURL)
	setString(&config.AuthURL, c.AuthURL)
	setString(&config.AuthKey, c.AuthKey)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.SessionSecret, c.SessionSecret)
	setDuration(&config.SessionMaxAge, c.SessionMaxAge.Duration)
	setDuration(&config.RequestTimeout, c.RequestTimeout.Duration)
	if c.PageSize > 0 {
		config.PageSize = c.PageSize
	}
	setDuration(&config.CatalogTTL, c.CatalogTTL.Duration)
	setString(&config.AuditDSN, c.AuditDSN)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3Endpoint, c.S3Endpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.CLIDatabase, c.CLIDatabase)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
