package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/factorg/internal/models"
)

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.getJSON(ctx, "/auth/me", nil, &u); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &u, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, filter models.ProductFilter, limit, offset int) (*models.ProductPage, error) {
	var page models.ProductPage
	if err := c.getJSON(ctx, "/productos", models.WithPage(filter.Values(), limit, offset), &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if page.Products == nil {
		page.Products = []models.Product{}
	}
	return &page, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	if err := c.getJSON(ctx, idPath("/productos/%d", id), nil, &p); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

func (c *HTTPClient) RenameProduct(ctx context.Context, id int, name string) error {
	body := map[string]string{"nombre": name}
	if err := c.doJSON(ctx, http.MethodPut, idPath("/productos/%d", id), nil, body, nil); err != nil {
		return fmt.Errorf("rename product %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, idPath("/productos/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) SetAdditionalPercentage(ctx context.Context, id int, percentage float64) error {
	body := map[string]float64{"porcentaje_adicional": percentage}
	if err := c.doJSON(ctx, http.MethodPut, idPath("/productos/%d/porcentaje-adicional", id), nil, body, nil); err != nil {
		return fmt.Errorf("set additional percentage %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) SetOthers(ctx context.Context, id int, others int) error {
	body := map[string]int{"otros": others}
	if err := c.doJSON(ctx, http.MethodPut, idPath("/productos/%d/otros", id), nil, body, nil); err != nil {
		return fmt.Errorf("set others %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) AssignAdminCode(ctx context.Context, id int, adminCodeID int) error {
	q := url.Values{"cod_admin_id": {strconv.Itoa(adminCodeID)}}
	if err := c.doJSON(ctx, http.MethodPut, idPath("/productos/%d/asignar-cod-admin", id), q, nil, nil); err != nil {
		return fmt.Errorf("assign admin code %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) PriceHistory(ctx context.Context, id int) ([]models.PricePoint, error) {
	points := []models.PricePoint{}
	if err := c.getJSON(ctx, idPath("/productos/%d/historial-precios", id), nil, &points); err != nil {
		return nil, fmt.Errorf("price history %d: %w", id, err)
	}
	return points, nil
}

func (c *HTTPClient) AdminCodes(ctx context.Context) ([]models.AdminCode, error) {
	codes := []models.AdminCode{}
	if err := c.getJSON(ctx, "/codigos_admin", nil, &codes); err != nil {
		return nil, fmt.Errorf("admin codes: %w", err)
	}
	return codes, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	if err := c.getJSON(ctx, "/categorias", nil, &cats); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return cats, nil
}
