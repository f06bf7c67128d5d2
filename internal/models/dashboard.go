package models

import "encoding/json"

// Dashboard is the aggregate payload of /dashboard/principal.
type Dashboard struct {
	PriceHistory    []PeriodAverage   `json:"historial_precios"`
	MonthlyInvoices []MonthlyTotal    `json:"facturas_mensuales"`
	SupplierAverage []SupplierAverage `json:"promedios_proveedor"`
}

// EmptyDashboard has three empty, non-nil series.
func EmptyDashboard() Dashboard {
	return Dashboard{
		PriceHistory:    []PeriodAverage{},
		MonthlyInvoices: []MonthlyTotal{},
		SupplierAverage: []SupplierAverage{},
	}
}

// PeriodAverage is keyed by "mes" or "fecha" and valued by "costo_promedio"
// or "precio_promedio", depending on the backend version.
type PeriodAverage struct {
	Period string
	Value  float64
}

func (p *PeriodAverage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Month    *string  `json:"mes"`
		Date     *string  `json:"fecha"`
		CostAvg  *float64 `json:"costo_promedio"`
		PriceAvg *float64 `json:"precio_promedio"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Period = firstString(raw.Month, raw.Date)
	p.Value = firstFloat(raw.CostAvg, raw.PriceAvg)
	return nil
}

type MonthlyTotal struct {
	Month string  `json:"mes"`
	Total float64 `json:"total"`
}

type SupplierAverage struct {
	Supplier string
	Value    float64
}

func (s *SupplierAverage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Supplier string   `json:"proveedor"`
		CostAvg  *float64 `json:"costo_promedio"`
		PriceAvg *float64 `json:"precio_promedio"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Supplier = raw.Supplier
	s.Value = firstFloat(raw.CostAvg, raw.PriceAvg)
	return nil
}

func firstString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}

func firstFloat(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}
