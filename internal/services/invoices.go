package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"golang.org/x/sync/errgroup"
)

// InvoiceList is one rendered page of the invoices table. Notice is set when
// the backend answered with something that is not a list.
type InvoiceList struct {
	Filter   models.InvoiceFilter
	Invoices []models.Invoice
	Cursor   PageCursor
	Notice   string
}

type InvoiceDetail struct {
	Invoice    *models.Invoice
	Businesses []models.Business
}

// InvoiceService drives the invoices list and the invoice detail screen.
type InvoiceService interface {
	List(ctx context.Context, filter models.InvoiceFilter, page int) (*InvoiceList, error)
	Detail(ctx context.Context, id int) (*InvoiceDetail, error)
	Delete(ctx context.Context, id int) error
	AssignBusiness(ctx context.Context, id int, raw string) error
}

type invoiceService struct {
	client   client.Client
	catalog  *Catalog
	pageSize int
	audit    recorder
	logger   logging.Logger
}

func NewInvoiceService(c client.Client, catalog *Catalog, pageSize int, rec audit.Recorder, logger logging.Logger) InvoiceService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &invoiceService{
		client:   c,
		catalog:  catalog,
		pageSize: pageSize,
		audit:    newRecorder(rec, logger),
		logger:   logger,
	}
}

func (s *invoiceService) List(ctx context.Context, filter models.InvoiceFilter, page int) (*InvoiceList, error) {
	if page < 1 {
		page = 1
	}

	out := &InvoiceList{Filter: filter, Cursor: PageCursor{Page: page, Size: s.pageSize}}

	invoices, err := s.client.ListInvoices(ctx, filter, s.pageSize, Offset(page, s.pageSize))
	switch {
	case errors.Is(err, client.ErrUnexpectedShape):
		s.logger.Warn(ctx, "unexpected invoice list shape", "error", err)
		out.Invoices = []models.Invoice{}
		out.Notice = ErrUnexpectedInvoiceList.Error()
		return out, nil
	case err != nil:
		return nil, fmt.Errorf("invoices page %d: %w", page, err)
	}

	out.Invoices = invoices
	out.Cursor.Fetched = len(invoices)
	return out, nil
}

func (s *invoiceService) Detail(ctx context.Context, id int) (*InvoiceDetail, error) {
	d := &InvoiceDetail{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Invoice, err = s.client.GetInvoice(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		if d.Businesses, err = s.catalog.Businesses(gctx); err != nil {
			s.logger.Warn(gctx, "businesses unavailable", "error", err)
			d.Businesses = []models.Business{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *invoiceService) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionDeleteInvoice, invoiceTarget(id), "")
	return nil
}

func (s *invoiceService) AssignBusiness(ctx context.Context, id int, raw string) error {
	businessID, err := ParseSelection(raw, "negocio_id", "Selecciona un negocio.")
	if err != nil {
		return err
	}
	if err := s.client.AssignBusiness(ctx, id, businessID); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionAssignBusiness, invoiceTarget(id), strconv.Itoa(businessID))
	return nil
}

func invoiceTarget(id int) string { return "factura:" + strconv.Itoa(id) }
