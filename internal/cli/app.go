package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/factorg/internal/archive"
	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/cli/store"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/config"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/dmitrijs2005/factorg/internal/services"
)

const msgSessionExpired = "la sesión expiró, inicia sesión nuevamente"

// App is the console: services over the backend client plus the local
// session store.
type App struct {
	config *config.Config
	logger logging.Logger

	client    client.Client
	auth      services.AuthService
	products  services.ProductService
	invoices  services.InvoiceService
	dashboard services.DashboardService
	uploads   services.UploadService
	sessions  *store.Sessions

	db      *sql.DB
	auditDB *sql.DB

	creds *client.SessionCredentials
	user  *models.User

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	// the console talks to the user on stdout; logs go to stderr
	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	db, err := store.Open(ctx, cfg.CLIDatabase)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	if cfg.SessionSecret == "" {
		logger.Warn(ctx, "no session secret configured, the stored session is sealed with an empty passphrase")
	}

	app := &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: store.NewSessions(db, cfg.SessionSecret),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	backend := client.NewHTTPClient(cfg.BackendURL, httpClient, logger)
	provider := auth.NewGoTrueProvider(cfg.AuthURL, cfg.AuthKey, httpClient, logger)

	var archiveStore archive.Store = archive.Noop{}
	if cfg.ArchiveEnabled() {
		s3, err := archive.NewS3Store(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		archiveStore = s3
	}

	var recorder audit.Recorder = audit.Noop{}
	if cfg.AuditEnabled() {
		adb, err := audit.Open(ctx, cfg.AuditDSN)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("audit db init error: %w", err)
		}
		app.auditDB = adb
		recorder = audit.NewPostgresRepository(adb)
	}

	catalog := services.NewCatalog(backend, cfg.CatalogTTL)
	app.client = backend
	app.auth = services.NewAuthService(provider, logger)
	app.products = services.NewProductService(backend, catalog, cfg.PageSize, recorder, logger)
	app.invoices = services.NewInvoiceService(backend, catalog, cfg.PageSize, recorder, logger)
	app.dashboard = services.NewDashboardService(backend, catalog, logger)
	app.uploads = services.NewUploadService(backend, archiveStore, recorder, logger)

	return app, nil
}

// Run resumes a stored session, if any, and serves the REPL until the user
// leaves or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "FactOrg consola (escribe 'help' para ver los comandos)")
	if err := a.resume(ctx); err != nil {
		a.logger.Debug(ctx, "no session resumed", "error", err)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader), a.out)
}

// Close releases the local and audit databases.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "db close", "error", err)
		}
		a.db = nil
	}
	if a.auditDB != nil {
		if err := a.auditDB.Close(); err != nil {
			a.logger.Warn(context.Background(), "audit db close", "error", err)
		}
		a.auditDB = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.creds != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", a.user.Email, a.user.Role)
}

// withCreds attaches the current session to ctx for backend calls.
func (a *App) withCreds(ctx context.Context) context.Context {
	if a.creds == nil {
		return ctx
	}
	return client.WithCredentials(ctx, a.creds)
}

// failure turns err into what the operator reads. A 401 that survived the
// refresh ends the session.
func (a *App) failure(ctx context.Context, err error, fallback string) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.dropSession(ctx)
		return errors.New(msgSessionExpired)
	}
	a.logger.Debug(ctx, "command failed", "error", err)
	return errors.New(services.Message(err, fallback))
}
