package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/factorg/internal/flagx"
)

var knownFlags = []string{
	"-a", "-b", "-u", "-k", "-j", "-s", "-m", "-t", "-n", "-l",
	"-d", "-o", "-g", "-e", "-i", "-w", "-f", "-v",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   panel listen address (e.g., ":8080")
//	-b string   backend base URL
//	-u string   session provider URL
//	-k string   session provider api key
//	-j string   JWT HS256 secret
//	-s string   session cookie secret
//	-m int      session max age, minutes
//	-t int      request timeout, seconds
//	-n int      page size
//	-l int      catalog cache TTL, seconds
//	-d string   audit PostgreSQL DSN
//	-o string   S3 bucket for the XML archive
//	-g string   S3 region
//	-e string   S3 endpoint (e.g., "http://127.0.0.1:9000/")
//	-i string   S3 access key id
//	-w string   S3 secret access key
//	-f string   CLI sqlite file
//	-v string   log level
//
// Arguments are first narrowed with flagx.FilterArgs so the -c/-config
// flag and anything else unknown is ignored here.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run the panel")
	fs.StringVar(&config.BackendURL, "b", config.BackendURL, "backend base URL")
	fs.StringVar(&config.AuthURL, "u", config.AuthURL, "session provider URL")
	fs.StringVar(&config.AuthKey, "k", config.AuthKey, "session provider api key")
	fs.StringVar(&config.JWTSecret, "j", config.JWTSecret, "JWT secret")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session cookie secret")

	sessionMaxAge := fs.Int("m", int(config.SessionMaxAge.Minutes()), "session max age (in minutes)")
	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&config.PageSize, "n", config.PageSize, "page size")
	catalogTTL := fs.Int("l", int(config.CatalogTTL.Seconds()), "catalog cache TTL (in seconds)")

	fs.StringVar(&config.AuditDSN, "d", config.AuditDSN, "audit database DSN")
	fs.StringVar(&config.S3Bucket, "o", config.S3Bucket, "S3 archive bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 endpoint")
	fs.StringVar(&config.S3AccessKey, "i", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "w", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.CLIDatabase, "f", config.CLIDatabase, "CLI sqlite file")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionMaxAge = time.Duration(*sessionMaxAge) * time.Minute
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.CatalogTTL = time.Duration(*catalogTTL) * time.Second
}
