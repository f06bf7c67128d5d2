package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/models"
)

func (c *HTTPClient) ListInvoices(ctx context.Context, filter models.InvoiceFilter, limit, offset int) ([]models.Invoice, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/facturas", models.WithPage(filter.Values(), limit, offset), &raw); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	invoices, err := decodeInvoiceList(raw)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// decodeInvoiceList accepts a bare array or an {"items": [...]} envelope.
func decodeInvoiceList(raw json.RawMessage) ([]models.Invoice, error) {
	trimmed := strings.TrimSpace(string(raw))

	switch {
	case strings.HasPrefix(trimmed, "["):
		list := []models.Invoice{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return list, nil
	case strings.HasPrefix(trimmed, "{"):
		var env struct {
			Items *[]models.Invoice `json:"items"`
		}
		if err := json.Unmarshal(raw, &env); err != nil || env.Items == nil {
			return nil, ErrUnexpectedShape
		}
		return *env.Items, nil
	}
	return nil, ErrUnexpectedShape
}

func (c *HTTPClient) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	var inv models.Invoice
	if err := c.getJSON(ctx, idPath("/facturas/%d", id), nil, &inv); err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}
	return &inv, nil
}

func (c *HTTPClient) DeleteInvoice(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, idPath("/facturas/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	return nil
}

func (c *HTTPClient) AssignBusiness(ctx context.Context, invoiceID, businessID int) error {
	body := map[string]int{"negocio_id": businessID}
	if err := c.doJSON(ctx, http.MethodPut, idPath("/facturas/%d/asignar-negocio", invoiceID), nil, body, nil); err != nil {
		return fmt.Errorf("assign business %d: %w", invoiceID, err)
	}
	return nil
}

func (c *HTTPClient) UploadXML(ctx context.Context, filename string, content []byte) (string, error) {
	body, err := filePayload("file", path.Base(filename), content)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	resp, err := c.send(ctx, http.MethodPost, "/subir-xml/", nil, body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	var out struct {
		Message string `json:"mensaje"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w: %v", filename, ErrUnavailable, err)
	}
	// an empty 2xx body is a success without a message
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("upload %s: %w: %v", filename, ErrUnexpectedShape, err)
	}
	return out.Message, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context, filter models.DashboardFilter) (*models.Dashboard, error) {
	d := models.EmptyDashboard()
	if err := c.getJSON(ctx, "/dashboard/principal", filter.Values(), &d); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &d, nil
}

func (c *HTTPClient) Export(ctx context.Context, kind ExportKind) (*Download, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("export %q: %w", kind, ErrNotFound)
	}

	resp, err := c.send(ctx, http.MethodGet, "/exportar/"+string(kind)+"/excel", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", kind, err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return &Download{Body: resp.Body, ContentType: ct, Filename: kind.Filename()}, nil
}
