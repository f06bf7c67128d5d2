package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "FACTORG_"

// legacyBackendEnv is honoured when FACTORG_BACKEND_URL is not set.
const legacyBackendEnv = "REACT_APP_BACKEND_URL"

type lookupFunc func(key string) (string, bool)

// parseEnv overlays FACTORG_* variables. Durations use time.ParseDuration
// syntax; malformed numbers or durations panic like malformed flags do.
func parseEnv(config *Config, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		}
		*dst = d
	}

	if v, ok := lookup(legacyBackendEnv); ok && v != "" {
		config.BackendURL = v
	}

	str("LISTEN_ADDR", &config.ListenAddr)
	str("BACKEND_URL", &config.BackendURL)
	str("AUTH_URL", &config.AuthURL)
	str("AUTH_KEY", &config.AuthKey)
	str("JWT_SECRET", &config.JWTSecret)
	str("SESSION_SECRET", &config.SessionSecret)
	dur("SESSION_MAX_AGE", &config.SessionMaxAge)
	dur("REQUEST_TIMEOUT", &config.RequestTimeout)
	dur("CATALOG_TTL", &config.CatalogTTL)
	str("AUDIT_DSN", &config.AuditDSN)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_ENDPOINT", &config.S3Endpoint)
	str("S3_ACCESS_KEY", &config.S3AccessKey)
	str("S3_SECRET_KEY", &config.S3SecretKey)
	str("CLI_DB", &config.CLIDatabase)
	str("LOG_LEVEL", &config.LogLevel)
	str("LOG_FORMAT", &config.LogFormat)

	if v, ok := lookup(EnvPrefix + "PAGE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			panic(fmt.Errorf("%sPAGE_SIZE: invalid value %q", EnvPrefix, v))
		}
		config.PageSize = n
	}
}
