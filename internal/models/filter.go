package models

import (
	"net/url"
	"strconv"
	"strings"
)

// ProductFilter holds the products list filters as typed by the user.
type ProductFilter struct {
	Name        string
	Code        string
	Folio       string
	AdminCodeID string
	From        string
	To          string
}

// InvoiceFilter holds the invoices list filters.
type InvoiceFilter struct {
	SupplierRUT string
	Folio       string
	From        string
	To          string
}

// DashboardFilter holds the dashboard filters.
type DashboardFilter struct {
	From        string
	To          string
	AdminCodeID string
	ProductCode string
}

// Values trims every field and omits the blank ones.
func (f ProductFilter) Values() url.Values {
	v := url.Values{}
	set(v, "nombre", f.Name)
	set(v, "codigo", f.Code)
	set(v, "folio", f.Folio)
	set(v, "cod_admin_id", f.AdminCodeID)
	set(v, "fecha_inicio", f.From)
	set(v, "fecha_fin", f.To)
	return v
}

func (f InvoiceFilter) Values() url.Values {
	v := url.Values{}
	set(v, "proveedor_rut", f.SupplierRUT)
	set(v, "folio", f.Folio)
	set(v, "fecha_inicio", f.From)
	set(v, "fecha_fin", f.To)
	return v
}

func (f DashboardFilter) Values() url.Values {
	v := url.Values{}
	set(v, "fecha_inicio", f.From)
	set(v, "fecha_fin", f.To)
	set(v, "cod_admin_id", f.AdminCodeID)
	set(v, "codigo_producto", f.ProductCode)
	return v
}

// WithPage adds limit/offset to v and returns it.
func WithPage(v url.Values, limit, offset int) url.Values {
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	return v
}

func set(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}
