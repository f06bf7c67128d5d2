package models

// InvoiceLine is a detail row of an invoice (detalle).
type InvoiceLine struct {
	ID            int      `json:"id"`
	Quantity      float64  `json:"cantidad"`
	UnitPrice     float64  `json:"precio_unitario"`
	Total         float64  `json:"total"`
	VAT           float64  `json:"iva"`
	OtherTaxes    float64  `json:"otros_impuestos"`
	AdditionalTax *float64 `json:"imp_adicional,omitempty"`
	Product       Product  `json:"producto"`
}

// BusinessRef is the short business shape embedded in invoices.
type BusinessRef struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// Invoice is a parsed DTE document (factura). Credit notes carry negative amounts.
type Invoice struct {
	ID         int           `json:"id"`
	Folio      string        `json:"folio"`
	IssuedOn   string        `json:"fecha_emision"`
	DueOn      *string       `json:"fecha_vencimiento,omitempty"`
	PaymentWay string        `json:"forma_pago"`
	Total      float64       `json:"monto_total"`
	Supplier   Supplier      `json:"proveedor"`
	Business   *BusinessRef  `json:"negocio,omitempty"`
	BusinessID *int          `json:"negocio_id,omitempty"`
	Lines      []InvoiceLine `json:"detalles"`
	CreditNote bool          `json:"es_nota_credito"`
}

// BusinessName returns the assigned business name or "".
func (i Invoice) BusinessName() string {
	if i.Business == nil {
		return ""
	}
	return i.Business.Name
}
