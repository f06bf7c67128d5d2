package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"golang.org/x/sync/errgroup"
)

// Palette is cycled over the bars of the supplier chart.
var Palette = []string{
	"rgba(255, 99, 132, 0.6)",
	"rgba(255, 159, 64, 0.6)",
	"rgba(255, 205, 86, 0.6)",
	"rgba(75, 192, 192, 0.6)",
	"rgba(54, 162, 235, 0.6)",
	"rgba(153, 102, 255, 0.6)",
	"rgba(201, 203, 207, 0.6)",
}

const (
	historyColor = "rgba(75, 192, 192, 0.2)"
	monthlyColor = "rgba(54, 162, 235, 0.6)"
)

// Point is one bar or line vertex. Percent is the value relative to the
// series maximum, for CSS bar widths.
type Point struct {
	Label   string
	Value   float64
	Percent float64
	Color   string
	Border  string
}

type Series struct {
	Title  string
	Kind   string
	Points []Point
	Max    float64
}

func (s Series) Empty() bool { return len(s.Points) == 0 }

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Filter       models.DashboardFilter
	PriceHistory Series
	Monthly      Series
	Suppliers    Series
	AdminCodes   []models.AdminCode
	Failed       bool
}

type DashboardService interface {
	Load(ctx context.Context, filter models.DashboardFilter) *DashboardView
	Export(ctx context.Context, kind client.ExportKind) (*client.Download, error)
}

type dashboardService struct {
	client  client.Client
	catalog *Catalog
	logger  logging.Logger
}

func NewDashboardService(c client.Client, catalog *Catalog, logger logging.Logger) DashboardService {
	return &dashboardService{client: c, catalog: catalog, logger: logger}
}

// Load never fails: a backend error yields three empty series.
func (s *dashboardService) Load(ctx context.Context, filter models.DashboardFilter) *DashboardView {
	data := models.EmptyDashboard()
	var codes []models.AdminCode
	failed := false

	var g errgroup.Group
	g.Go(func() error {
		d, err := s.client.Dashboard(ctx, filter)
		if err != nil {
			s.logger.Warn(ctx, "dashboard unavailable", "error", err)
			failed = true
			return nil
		}
		data = *d
		return nil
	})
	g.Go(func() error {
		var err error
		if codes, err = s.catalog.AdminCodes(ctx); err != nil {
			s.logger.Warn(ctx, "admin codes unavailable", "error", err)
			codes = []models.AdminCode{}
		}
		return nil
	})
	_ = g.Wait()

	return &DashboardView{
		Filter:       filter,
		PriceHistory: priceHistorySeries(data.PriceHistory),
		Monthly:      monthlySeries(data.MonthlyInvoices),
		Suppliers:    supplierSeries(data.SupplierAverage),
		AdminCodes:   codes,
		Failed:       failed,
	}
}

func (s *dashboardService) Export(ctx context.Context, kind client.ExportKind) (*client.Download, error) {
	if !kind.Valid() {
		return nil, client.ErrNotFound
	}
	return s.client.Export(ctx, kind)
}

func priceHistorySeries(in []models.PeriodAverage) Series {
	s := Series{Title: "Historial de precios promedio", Kind: "line", Points: make([]Point, 0, len(in))}
	for _, p := range in {
		s.Points = append(s.Points, Point{Label: p.Period, Value: p.Value, Color: historyColor, Border: BorderColor(historyColor)})
	}
	return s.scaled()
}

func monthlySeries(in []models.MonthlyTotal) Series {
	s := Series{Title: "Total facturado por mes", Kind: "bar", Points: make([]Point, 0, len(in))}
	for _, m := range in {
		s.Points = append(s.Points, Point{Label: m.Month, Value: m.Total, Color: monthlyColor, Border: BorderColor(monthlyColor)})
	}
	return s.scaled()
}

func supplierSeries(in []models.SupplierAverage) Series {
	s := Series{Title: "Costo promedio por proveedor", Kind: "bar", Points: make([]Point, 0, len(in))}
	for i, a := range in {
		c := Palette[i%len(Palette)]
		s.Points = append(s.Points, Point{Label: a.Supplier, Value: a.Value, Color: c, Border: BorderColor(c)})
	}
	return s.scaled()
}

// scaled fills Max and each point's Percent. Negative values scale by magnitude.
func (s Series) scaled() Series {
	for _, p := range s.Points {
		if v := abs(p.Value); v > s.Max {
			s.Max = v
		}
	}
	if s.Max == 0 {
		return s
	}
	for i := range s.Points {
		s.Points[i].Percent = abs(s.Points[i].Value) / s.Max * 100
	}
	return s
}

// BorderColor is c with its alpha set to 1.
func BorderColor(c string) string {
	i := strings.LastIndex(c, ",")
	if i < 0 || !strings.HasPrefix(c, "rgba(") {
		return c
	}
	return c[:i] + ", 1)"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
