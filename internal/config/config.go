// Package config handles configuration shared by the panel and the CLI,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the FactOrg panel and console.
//
// Fields:
//   - ListenAddr: bind address for the panel HTTP server.
//   - BackendURL: base URL of the invoice backend REST API.
//   - AuthURL / AuthKey: GoTrue-compatible session provider and its public api key.
//   - JWTSecret: optional HS256 secret; when set, provider tokens are verified.
//   - SessionSecret: passphrase the cookie keys are derived from.
//   - SessionMaxAge: lifetime of the panel cookie.
//   - RequestTimeout: deadline applied to each outbound call of a request.
//   - PageSize: rows per page in product and invoice lists.
//   - CatalogTTL: how long admin codes and businesses are cached.
//   - AuditDSN: PostgreSQL DSN (pgx) for the audit trail; empty disables it.
//   - S3*: object storage settings for the XML archive; empty bucket disables it.
//   - CLIDatabase: sqlite file the console keeps its session in.
type Config struct {
	ListenAddr     string
	BackendURL     string
	AuthURL        string
	AuthKey        string
	JWTSecret      string
	SessionSecret  string
	SessionMaxAge  time.Duration
	RequestTimeout time.Duration
	PageSize       int
	CatalogTTL     time.Duration
	AuditDSN       string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	CLIDatabase    string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the session secret must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.BackendURL = "http://localhost:8000"
	c.AuthURL = "http://localhost:9999"
	c.AuthKey = ""
	c.JWTSecret = ""
	c.SessionSecret = ""
	c.SessionMaxAge = 12 * time.Hour
	c.RequestTimeout = 30 * time.Second
	c.PageSize = 25
	c.CatalogTTL = 5 * time.Minute
	c.AuditDSN = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3Endpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.CLIDatabase = "factorg-cli.db"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, jsonConfigPath(args))
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, args)
	return cfg
}

// ArchiveEnabled reports whether uploaded XML files are copied to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// AuditEnabled reports whether write actions are recorded in Postgres.
func (c *Config) AuditEnabled() bool {
	return c.AuditDSN != ""
}
