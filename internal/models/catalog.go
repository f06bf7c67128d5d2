package models

// Supplier is an invoice issuer (proveedor).
type Supplier struct {
	ID           int     `json:"id"`
	RUT          string  `json:"rut"`
	Name         string  `json:"nombre"`
	PaymentType  *string `json:"tipo_pago,omitempty"`
	Address      *string `json:"direccion,omitempty"`
	ContactEmail *string `json:"correo_contacto,omitempty"`
}

// Category groups products (categoria).
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// AdminCode is an entry of the master admin-code catalog (codigo admin maestro).
type AdminCode struct {
	ID                   int      `json:"id"`
	Code                 string   `json:"cod_admin"`
	ProductName          *string  `json:"nombre_producto,omitempty"`
	Family               *string  `json:"familia,omitempty"`
	Area                 *string  `json:"area,omitempty"`
	UM                   *string  `json:"um,omitempty"`
	Unit                 *string  `json:"un_medida,omitempty"`
	AdditionalPercentage *float64 `json:"porcentaje_adicional,omitempty"`
	AdditionalTax        *float64 `json:"imp_adicional,omitempty"`
}

// Label renders the option text used by admin-code selectors.
func (c AdminCode) Label() string {
	code := c.Code
	if code == "" {
		code = "—"
	}
	name := "(sin nombre)"
	if c.ProductName != nil && *c.ProductName != "" {
		name = *c.ProductName
	}
	return code + " — " + name
}

// Business is a tenant that invoices are assigned to (negocio).
type Business struct {
	ID        int     `json:"id"`
	Name      string  `json:"nombre"`
	RUT       *string `json:"rut_receptor,omitempty"`
	LegalName *string `json:"razon_social,omitempty"`
	Email     *string `json:"correo,omitempty"`
	Address   *string `json:"direccion,omitempty"`
}

// NewBusiness is the create payload. Blank optional fields are sent as null.
type NewBusiness struct {
	Name      string  `json:"nombre"`
	RUT       *string `json:"rut_receptor"`
	LegalName *string `json:"razon_social"`
	Email     *string `json:"correo"`
	Address   *string `json:"direccion"`
}
