package models

// Product is a product line with its latest price and server-computed costs.
type Product struct {
	ID                   int        `json:"id"`
	Name                 string     `json:"nombre"`
	Code                 string     `json:"codigo"`
	Unit                 string     `json:"unidad"`
	Quantity             *float64   `json:"cantidad,omitempty"`
	SupplierID           *int       `json:"proveedor_id,omitempty"`
	CategoryID           *int       `json:"categoria_id,omitempty"`
	UnitPrice            *float64   `json:"precio_unitario,omitempty"`
	VAT                  *float64   `json:"iva,omitempty"`
	OtherTaxes           *float64   `json:"otros_impuestos,omitempty"`
	NetTotal             *float64   `json:"total_neto,omitempty"`
	AdminCodeID          *int       `json:"cod_admin_id,omitempty"`
	AdminCode            *AdminCode `json:"cod_admin,omitempty"`
	Supplier             *Supplier  `json:"proveedor,omitempty"`
	Category             *Category  `json:"categoria,omitempty"`
	AdditionalTax        *float64   `json:"imp_adicional,omitempty"`
	AdditionalPercentage *float64   `json:"porcentaje_adicional,omitempty"`
	Folio                *string    `json:"folio,omitempty"`
	UnitCost             *float64   `json:"costo_unitario,omitempty"`
	TotalCost            *float64   `json:"total_costo,omitempty"`
	Others               *float64   `json:"otros,omitempty"`
	MasterName           *string    `json:"nombre_maestro,omitempty"`
	CreditNote           bool       `json:"es_nota_credito"`
}

// AdminName is the master name shown in lists: nombre_maestro, then the
// admin code's product name, then "-".
func (p Product) AdminName() string {
	if p.MasterName != nil && *p.MasterName != "" {
		return *p.MasterName
	}
	if p.AdminCode != nil && p.AdminCode.ProductName != nil && *p.AdminCode.ProductName != "" {
		return *p.AdminCode.ProductName
	}
	return "-"
}

// ProductPage is one page of GET /productos.
type ProductPage struct {
	Products []Product `json:"productos"`
	Total    int       `json:"total"`
}

// PricePoint is one entry of a product's price history.
type PricePoint struct {
	Date      string  `json:"fecha"`
	UnitPrice float64 `json:"precio_unitario"`
}
