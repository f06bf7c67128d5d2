// Package client wraps every call the panel makes to the invoice backend.
//
// Credentials travel in the request context (see WithCredentials). Each call
// attaches the bearer token and the user's email, refreshes the session once
// when the backend answers 401 and retries the call a single time.
package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/factorg/internal/models"
)

// ExportKind selects one of the backend spreadsheet exports.
type ExportKind string

const (
	ExportProducts ExportKind = "productos"
	ExportInvoices ExportKind = "facturas"
)

// Filename is the attachment name offered to the browser.
func (k ExportKind) Filename() string {
	return string(k) + ".xlsx"
}

// Valid reports whether k names a known export.
func (k ExportKind) Valid() bool {
	return k == ExportProducts || k == ExportInvoices
}

// Download is a streamed backend response. The caller closes Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

type Client interface {
	Me(ctx context.Context) (*models.User, error)

	ListProducts(ctx context.Context, filter models.ProductFilter, limit, offset int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	RenameProduct(ctx context.Context, id int, name string) error
	DeleteProduct(ctx context.Context, id int) error
	SetAdditionalPercentage(ctx context.Context, id int, percentage float64) error
	SetOthers(ctx context.Context, id int, others int) error
	AssignAdminCode(ctx context.Context, id int, adminCodeID int) error
	PriceHistory(ctx context.Context, id int) ([]models.PricePoint, error)

	AdminCodes(ctx context.Context) ([]models.AdminCode, error)
	Categories(ctx context.Context) ([]models.Category, error)

	ListInvoices(ctx context.Context, filter models.InvoiceFilter, limit, offset int) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id int) error
	AssignBusiness(ctx context.Context, invoiceID, businessID int) error

	UploadXML(ctx context.Context, filename string, content []byte) (string, error)

	Dashboard(ctx context.Context, filter models.DashboardFilter) (*models.Dashboard, error)
	Export(ctx context.Context, kind ExportKind) (*Download, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int, update models.UserUpdate) error

	ListBusinesses(ctx context.Context) ([]models.Business, error)
	SelectableBusinesses(ctx context.Context) ([]models.Business, error)
	CreateBusiness(ctx context.Context, b models.NewBusiness) (*models.Business, error)
	ChooseBusiness(ctx context.Context, businessID int) (string, error)
}
