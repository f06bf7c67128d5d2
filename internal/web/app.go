package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/factorg/internal/archive"
	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/common"
	"github.com/dmitrijs2005/factorg/internal/config"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/services"
)

// App wires the panel: configuration, backend client, optional archive and
// audit stores, services and the HTTP server.
type App struct {
	config  *config.Config
	logger  logging.Logger
	server  *Server
	auditDB *sql.DB
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	if cfg.SessionSecret == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
		logger.Warn(ctx, "no session secret configured, sessions will not survive a restart")
		cfg.SessionSecret = secret
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	backend := client.NewHTTPClient(cfg.BackendURL, httpClient, logger)
	provider := auth.NewGoTrueProvider(cfg.AuthURL, cfg.AuthKey, httpClient, logger)

	var store archive.Store = archive.Noop{}
	if cfg.ArchiveEnabled() {
		s3, err := archive.NewS3Store(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		store = s3
		logger.Info(ctx, "xml archive enabled", "bucket", cfg.S3Bucket)
	}

	app := &App{config: cfg, logger: logger}

	var recorder audit.Recorder = audit.Noop{}
	if cfg.AuditEnabled() {
		db, err := audit.Open(ctx, cfg.AuditDSN)
		if err != nil {
			return nil, fmt.Errorf("audit db init error: %w", err)
		}
		app.auditDB = db
		recorder = audit.NewPostgresRepository(db)
		logger.Info(ctx, "audit trail enabled")
	}

	catalog := services.NewCatalog(backend, cfg.CatalogTTL)

	srv, err := NewServer(Deps{
		Logger:    logger,
		Client:    backend,
		Verifier:  auth.NewVerifier(cfg.JWTSecret),
		Auth:      services.NewAuthService(provider, logger),
		Products:  services.NewProductService(backend, catalog, cfg.PageSize, recorder, logger),
		Invoices:  services.NewInvoiceService(backend, catalog, cfg.PageSize, recorder, logger),
		Dashboard: services.NewDashboardService(backend, catalog, logger),
		Admin:     services.NewAdminService(backend, catalog, recorder, logger),
		Profile:   services.NewProfileService(backend, provider, recorder, logger),
		Uploads:   services.NewUploadService(backend, store, recorder, logger),
	}, Options{
		Addr:           cfg.ListenAddr,
		SessionSecret:  cfg.SessionSecret,
		SessionMaxAge:  cfg.SessionMaxAge,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.server = srv

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the panel until SIGINT/SIGTERM/SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting panel...", "backend", app.config.BackendURL)
	app.initSignalHandler(cancelFunc)

	defer app.Close()
	return app.server.Run(ctx)
}

// Close releases the audit database, if any.
func (app *App) Close() {
	if app.auditDB != nil {
		if err := app.auditDB.Close(); err != nil {
			app.logger.Warn(context.Background(), "audit db close", "error", err)
		}
		app.auditDB = nil
	}
}
