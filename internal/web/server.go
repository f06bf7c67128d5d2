// Package web serves the browser panel: server-rendered pages over the
// shared services, an encrypted cookie session and role-based route guards.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/guard"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/services"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators a Server needs.
type Deps struct {
	Logger    logging.Logger
	Client    client.Client
	Verifier  *auth.Verifier
	Auth      services.AuthService
	Products  services.ProductService
	Invoices  services.InvoiceService
	Dashboard services.DashboardService
	Admin     services.AdminService
	Profile   services.ProfileService
	Uploads   services.UploadService
}

// Options tune the HTTP surface.
type Options struct {
	Addr           string
	SessionSecret  string
	SessionMaxAge  time.Duration
	RequestTimeout time.Duration
}

type Server struct {
	addr    string
	timeout time.Duration
	logger  logging.Logger

	store    sessions.Store
	views    *renderer
	client   client.Client
	verifier *auth.Verifier

	auth      services.AuthService
	products  services.ProductService
	invoices  services.InvoiceService
	dashboard services.DashboardService
	admin     services.AdminService
	profile   services.ProfileService
	uploads   services.UploadService
}

func NewServer(d Deps, opts Options) (*Server, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	verifier := d.Verifier
	if verifier == nil {
		verifier = auth.NewVerifier("")
	}

	return &Server{
		addr:      opts.Addr,
		timeout:   opts.RequestTimeout,
		logger:    d.Logger.With("component", "web"),
		store:     newCookieStore(opts.SessionSecret, opts.SessionMaxAge),
		views:     views,
		client:    d.Client,
		verifier:  verifier,
		auth:      d.Auth,
		products:  d.Products,
		invoices:  d.Invoices,
		dashboard: d.Dashboard,
		admin:     d.Admin,
		profile:   d.Profile,
		uploads:   d.Uploads,
	}, nil
}

// Handler builds the router with every panel route.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(logging.Middleware(s.logger), s.withTimeout)

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	r.Handle("/login", s.publicOnly(http.HandlerFunc(s.loginPage))).Methods(http.MethodGet)
	r.Handle("/login", s.publicOnly(http.HandlerFunc(s.login))).Methods(http.MethodPost)
	r.Handle("/registro", s.publicOnly(http.HandlerFunc(s.registerPage))).Methods(http.MethodGet)
	r.Handle("/registro", s.publicOnly(http.HandlerFunc(s.register))).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/", s.authed(guard.FeatureDashboard, s.dashboardPage)).Methods(http.MethodGet)
	r.Handle("/exportar/{kind}", s.authed(guard.FeatureDashboard, s.export)).Methods(http.MethodGet)

	r.Handle("/subir", s.authed(guard.FeatureUpload, s.uploadPage)).Methods(http.MethodGet)
	r.Handle("/subir", s.authed(guard.FeatureUpload, s.upload)).Methods(http.MethodPost)

	r.Handle("/leerProd", s.authed(guard.FeatureTables, s.productsPage)).Methods(http.MethodGet)
	r.Handle("/productos/{id:[0-9]+}", s.authed(guard.FeatureTables, s.productPage)).Methods(http.MethodGet)
	r.Handle("/productos/{id:[0-9]+}/nombre", s.authed(guard.FeatureTables, s.renameProduct)).Methods(http.MethodPost)
	r.Handle("/productos/{id:[0-9]+}/eliminar", s.authed(guard.FeatureTables, s.deleteProduct)).Methods(http.MethodPost)
	r.Handle("/productos/{id:[0-9]+}/porcentaje", s.authed(guard.FeatureTables, s.setPercentage)).Methods(http.MethodPost)
	r.Handle("/productos/{id:[0-9]+}/otros", s.authed(guard.FeatureTables, s.setOthers)).Methods(http.MethodPost)
	r.Handle("/productos/{id:[0-9]+}/cod-admin", s.authed(guard.FeatureTables, s.assignAdminCode)).Methods(http.MethodPost)

	r.Handle("/leerFact", s.authed(guard.FeatureTables, s.invoicesPage)).Methods(http.MethodGet)
	r.Handle("/facturas/{id:[0-9]+}", s.authed(guard.FeatureTables, s.invoicePage)).Methods(http.MethodGet)
	r.Handle("/facturas/{id:[0-9]+}/eliminar", s.authed(guard.FeatureTables, s.deleteInvoice)).Methods(http.MethodPost)
	r.Handle("/facturas/{id:[0-9]+}/negocio", s.authed(guard.FeatureTables, s.assignBusiness)).Methods(http.MethodPost)

	r.Handle("/admin/usuarios", s.authed(guard.FeatureAdmin, s.usersPage)).Methods(http.MethodGet)
	r.Handle("/admin/usuarios/{id:[0-9]+}", s.authed(guard.FeatureAdmin, s.updateUser)).Methods(http.MethodPost)
	r.Handle("/admin/negocios", s.authed(guard.FeatureAdmin, s.businessesPage)).Methods(http.MethodGet)
	r.Handle("/admin/negocios", s.authed(guard.FeatureAdmin, s.createBusiness)).Methods(http.MethodPost)

	r.Handle("/perfil", s.authed(guard.FeatureProfile, s.profilePage)).Methods(http.MethodGet)
	r.Handle("/perfil/negocio", s.authed(guard.FeatureProfile, s.chooseBusiness)).Methods(http.MethodPost)
	r.Handle("/perfil/password", s.authed(guard.FeatureProfile, s.changePassword)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.renderError(w, req, http.StatusNotFound, "Página no encontrada.")
	})
	return r
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
