package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/audit"
	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"golang.org/x/sync/errgroup"
)

// ProductList is one rendered page of the products table.
type ProductList struct {
	Filter     models.ProductFilter
	Products   []models.Product
	Pager      Pager
	AdminCodes []models.AdminCode
}

// ProductDetail is the product edit screen.
type ProductDetail struct {
	Product      *models.Product
	AdminCodes   []models.AdminCode
	PriceHistory []models.PricePoint
}

// ProductService drives the products list and the product edit screen.
type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter, page int) (*ProductList, error)
	Detail(ctx context.Context, id int) (*ProductDetail, error)
	Rename(ctx context.Context, id int, name string) error
	Delete(ctx context.Context, id int) error
	SetAdditionalPercentage(ctx context.Context, id int, raw string) error
	SetOthers(ctx context.Context, id int, raw string) error
	AssignAdminCode(ctx context.Context, id int, raw string) error
}

type productService struct {
	client   client.Client
	catalog  *Catalog
	pageSize int
	audit    recorder
	logger   logging.Logger
}

func NewProductService(c client.Client, catalog *Catalog, pageSize int, rec audit.Recorder, logger logging.Logger) ProductService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &productService{
		client:   c,
		catalog:  catalog,
		pageSize: pageSize,
		audit:    newRecorder(rec, logger),
		logger:   logger,
	}
}

// List fetches page (1-based) of the filtered products together with the
// admin-code options. A page past the end is replaced by the last page.
func (s *productService) List(ctx context.Context, filter models.ProductFilter, page int) (*ProductList, error) {
	if page < 1 {
		page = 1
	}

	var (
		list  *models.ProductPage
		codes []models.AdminCode
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.client.ListProducts(gctx, filter, s.pageSize, Offset(page, s.pageSize))
		return err
	})
	g.Go(func() error {
		var err error
		if codes, err = s.catalog.AdminCodes(gctx); err != nil {
			s.logger.Warn(gctx, "admin codes unavailable", "error", err)
			codes = []models.AdminCode{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("products page %d: %w", page, err)
	}

	last := LastPage(list.Total, s.pageSize)
	if page > last && list.Total > 0 {
		page = last
		var err error
		list, err = s.client.ListProducts(ctx, filter, s.pageSize, Offset(page, s.pageSize))
		if err != nil {
			return nil, fmt.Errorf("products page %d: %w", page, err)
		}
	}

	return &ProductList{
		Filter:     filter,
		Products:   list.Products,
		Pager:      Pager{Page: ClampPage(page, last), LastPage: last, Total: list.Total, Size: s.pageSize},
		AdminCodes: codes,
	}, nil
}

func (s *productService) Detail(ctx context.Context, id int) (*ProductDetail, error) {
	d := &ProductDetail{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Product, err = s.client.GetProduct(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		if d.AdminCodes, err = s.catalog.AdminCodes(gctx); err != nil {
			s.logger.Warn(gctx, "admin codes unavailable", "error", err)
			d.AdminCodes = []models.AdminCode{}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if d.PriceHistory, err = s.client.PriceHistory(gctx, id); err != nil {
			s.logger.Warn(gctx, "price history unavailable", "product_id", id, "error", err)
			d.PriceHistory = []models.PricePoint{}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.resolveCategory(ctx, d.Product)
	return d, nil
}

func (s *productService) Rename(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("nombre", "El nombre no puede estar vacío.")
	}
	if err := s.client.RenameProduct(ctx, id, name); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionRenameProduct, productTarget(id), name)
	return nil
}

func (s *productService) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionDeleteProduct, productTarget(id), "")
	return nil
}

func (s *productService) SetAdditionalPercentage(ctx context.Context, id int, raw string) error {
	pct, err := ParsePercentage(raw)
	if err != nil {
		return err
	}
	if err := s.client.SetAdditionalPercentage(ctx, id, pct); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionSetPercentage, productTarget(id), strconv.FormatFloat(pct, 'f', -1, 64))
	return nil
}

func (s *productService) SetOthers(ctx context.Context, id int, raw string) error {
	others := ParseOthers(raw)
	if err := s.client.SetOthers(ctx, id, others); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionSetOthers, productTarget(id), strconv.Itoa(others))
	return nil
}

func (s *productService) AssignAdminCode(ctx context.Context, id int, raw string) error {
	codeID, err := ParseSelection(raw, "cod_admin_id", "Selecciona un código admin.")
	if err != nil {
		return err
	}
	if err := s.client.AssignAdminCode(ctx, id, codeID); err != nil {
		return err
	}
	s.audit.record(ctx, audit.ActionAssignAdminCode, productTarget(id), strconv.Itoa(codeID))
	return nil
}

func productTarget(id int) string { return "producto:" + strconv.Itoa(id) }

// resolveCategory fills in the category when the API only sent its id.
func (s *productService) resolveCategory(ctx context.Context, p *models.Product) {
	if p.Category != nil || p.CategoryID == nil {
		return
	}
	cats, err := s.catalog.Categories(ctx)
	if err != nil {
		s.logger.Warn(ctx, "categories unavailable", "error", err)
		return
	}
	for i := range cats {
		if cats[i].ID == *p.CategoryID {
			p.Category = &cats[i]
			return
		}
	}
}
