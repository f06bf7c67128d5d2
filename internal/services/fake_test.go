package services

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/auth"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/models"
)

// ---- fake backend client ----

type fakeClient struct {
	mu sync.Mutex

	MeRet *models.User
	MeErr error

	Products      map[int]*models.ProductPage // keyed by offset
	ProductsErr   error
	ProductCalls  []int // offsets requested
	LastProdQuery models.ProductFilter

	ProductRet    *models.Product
	ProductErr    error
	History       []models.PricePoint
	HistoryErr    error
	Codes         []models.AdminCode
	CodesErr      error
	Cats          []models.Category
	CatsErr       error
	CodesCalls    int
	Invoices      []models.Invoice
	InvoicesErr   error
	InvoiceRet    *models.Invoice
	InvoiceErr    error
	Businesses    []models.Business
	BusinessesErr error
	BusinessCalls int
	Selectable    []models.Business
	DashboardRet  *models.Dashboard
	DashboardErr  error
	Users         []models.User
	UsersErr      error

	WriteErr   error
	UploadMsg  string
	ChosenName string
	Created    *models.Business

	Writes []string
}

func (f *fakeClient) write(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, op)
	return f.WriteErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) { return f.MeRet, f.MeErr }

func (f *fakeClient) ListProducts(ctx context.Context, filter models.ProductFilter, limit, offset int) (*models.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProductCalls = append(f.ProductCalls, offset)
	f.LastProdQuery = filter
	if f.ProductsErr != nil {
		return nil, f.ProductsErr
	}
	if p, ok := f.Products[offset]; ok {
		return p, nil
	}
	total := 0
	for _, p := range f.Products {
		total = p.Total
	}
	return &models.ProductPage{Products: []models.Product{}, Total: total}, nil
}

func (f *fakeClient) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return f.ProductRet, f.ProductErr
}

func (f *fakeClient) RenameProduct(ctx context.Context, id int, name string) error {
	return f.write("rename:" + name)
}

func (f *fakeClient) DeleteProduct(ctx context.Context, id int) error {
	return f.write("delete-product")
}

func (f *fakeClient) SetAdditionalPercentage(ctx context.Context, id int, percentage float64) error {
	return f.write("percentage")
}

func (f *fakeClient) SetOthers(ctx context.Context, id int, others int) error {
	return f.write("others")
}

func (f *fakeClient) AssignAdminCode(ctx context.Context, id int, adminCodeID int) error {
	return f.write("admin-code")
}

func (f *fakeClient) PriceHistory(ctx context.Context, id int) ([]models.PricePoint, error) {
	return f.History, f.HistoryErr
}

func (f *fakeClient) AdminCodes(ctx context.Context) ([]models.AdminCode, error) {
	f.mu.Lock()
	f.CodesCalls++
	f.mu.Unlock()
	return f.Codes, f.CodesErr
}

func (f *fakeClient) Categories(ctx context.Context) ([]models.Category, error) {
	return f.Cats, f.CatsErr
}

func (f *fakeClient) ListInvoices(ctx context.Context, filter models.InvoiceFilter, limit, offset int) ([]models.Invoice, error) {
	return f.Invoices, f.InvoicesErr
}

func (f *fakeClient) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	return f.InvoiceRet, f.InvoiceErr
}

func (f *fakeClient) DeleteInvoice(ctx context.Context, id int) error {
	return f.write("delete-invoice")
}

func (f *fakeClient) AssignBusiness(ctx context.Context, invoiceID, businessID int) error {
	return f.write("assign-business")
}

func (f *fakeClient) UploadXML(ctx context.Context, filename string, content []byte) (string, error) {
	if err := f.write("upload:" + filename); err != nil {
		return "", err
	}
	return f.UploadMsg, nil
}

func (f *fakeClient) Dashboard(ctx context.Context, filter models.DashboardFilter) (*models.Dashboard, error) {
	return f.DashboardRet, f.DashboardErr
}

func (f *fakeClient) Export(ctx context.Context, kind client.ExportKind) (*client.Download, error) {
	return &client.Download{
		Body:        io.NopCloser(strings.NewReader("xlsx")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    kind.Filename(),
	}, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.Users, f.UsersErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int, update models.UserUpdate) error {
	return f.write("update-user:" + update.Role)
}

func (f *fakeClient) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	f.mu.Lock()
	f.BusinessCalls++
	f.mu.Unlock()
	return f.Businesses, f.BusinessesErr
}

func (f *fakeClient) SelectableBusinesses(ctx context.Context) ([]models.Business, error) {
	return f.Selectable, nil
}

func (f *fakeClient) CreateBusiness(ctx context.Context, b models.NewBusiness) (*models.Business, error) {
	if err := f.write("create-business:" + b.Name); err != nil {
		return nil, err
	}
	return f.Created, nil
}

func (f *fakeClient) ChooseBusiness(ctx context.Context, businessID int) (string, error) {
	if err := f.write("choose-business"); err != nil {
		return "", err
	}
	return f.ChosenName, nil
}

// ---- fake audit store ----

type fakeAudit struct {
	mu        sync.Mutex
	Entries   []audit.Entry
	RecordErr error
	RecentErr error
}

func (a *fakeAudit) Record(ctx context.Context, e audit.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.RecordErr != nil {
		return a.RecordErr
	}
	a.Entries = append(a.Entries, e)
	return nil
}

func (a *fakeAudit) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return a.Entries, a.RecentErr
}

func (a *fakeAudit) actions() []string {
	out := make([]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		out = append(out, e.Action)
	}
	return out
}

// ---- fake session provider ----

type fakeProvider struct {
	SignInRet  *auth.Session
	SignInErr  error
	SignUpRet  *auth.SignUpResult
	SignUpErr  error
	RefreshRet *auth.Session
	RefreshErr error
	SignOutErr error
	UpdateErr  error

	SignedOut   []string
	NewPassword string
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	return p.SignInRet, p.SignInErr
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password, fullName string) (*auth.SignUpResult, error) {
	return p.SignUpRet, p.SignUpErr
}

func (p *fakeProvider) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	return p.RefreshRet, p.RefreshErr
}

func (p *fakeProvider) SignOut(ctx context.Context, accessToken string) error {
	p.SignedOut = append(p.SignedOut, accessToken)
	return p.SignOutErr
}

func (p *fakeProvider) UpdatePassword(ctx context.Context, accessToken, password string) error {
	p.NewPassword = password
	return p.UpdateErr
}

// ---- fake archive ----

type fakeArchive struct {
	Key    string
	Err    error
	Stored []string
}

func (a *fakeArchive) Put(ctx context.Context, filename, uploadedBy string, content []byte) (string, error) {
	if a.Err != nil {
		return "", a.Err
	}
	a.Stored = append(a.Stored, filename)
	return a.Key, nil
}

// ---- helpers ----

func signedIn(email string) context.Context {
	return client.WithCredentials(context.Background(), client.NewSessionCredentials("at", "rt", email, nil))
}

func ptr[T any](v T) *T { return &v }
