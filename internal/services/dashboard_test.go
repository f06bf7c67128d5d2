package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/factorg/internal/client"
	"github.com/dmitrijs2005/factorg/internal/logging"
	"github.com/dmitrijs2005/factorg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(fc *fakeClient) DashboardService {
	return NewDashboardService(fc, NewCatalog(fc, time.Minute), logging.Discard())
}

func TestDashboardService_Load_ErrorGivesEmptySeries(t *testing.T) {
	fc := &fakeClient{DashboardErr: client.ErrUnavailable}
	v := newDashboard(fc).Load(context.Background(), models.DashboardFilter{})

	assert.True(t, v.Failed)
	assert.True(t, v.PriceHistory.Empty())
	assert.True(t, v.Monthly.Empty())
	assert.True(t, v.Suppliers.Empty())
	assert.NotNil(t, v.Suppliers.Points)
}

func TestDashboardService_Load_BuildsSeries(t *testing.T) {
	suppliers := make([]models.SupplierAverage, 8)
	for i := range suppliers {
		suppliers[i] = models.SupplierAverage{Supplier: string(rune('A' + i)), Value: float64(10 * (i + 1))}
	}
	fc := &fakeClient{DashboardRet: &models.Dashboard{
		PriceHistory:    []models.PeriodAverage{{Period: "2024-01", Value: 50}, {Period: "2024-02", Value: 100}},
		MonthlyInvoices: []models.MonthlyTotal{{Month: "2024-01", Total: -200}, {Month: "2024-02", Total: 400}},
		SupplierAverage: suppliers,
	}}

	v := newDashboard(fc).Load(context.Background(), models.DashboardFilter{From: "2024-01-01"})
	require.False(t, v.Failed)
	assert.Equal(t, "2024-01-01", v.Filter.From)

	require.Len(t, v.PriceHistory.Points, 2)
	assert.Equal(t, 100.0, v.PriceHistory.Max)
	assert.Equal(t, 50.0, v.PriceHistory.Points[0].Percent)
	assert.Equal(t, "line", v.PriceHistory.Kind)

	assert.Equal(t, 400.0, v.Monthly.Max)
	assert.Equal(t, 50.0, v.Monthly.Points[0].Percent)

	require.Len(t, v.Suppliers.Points, 8)
	assert.Equal(t, Palette[0], v.Suppliers.Points[0].Color)
	assert.Equal(t, Palette[0], v.Suppliers.Points[7].Color, "palette cycles")
	assert.Equal(t, "rgba(255, 99, 132, 1)", v.Suppliers.Points[0].Border)
	assert.Equal(t, 100.0, v.Suppliers.Points[7].Percent)
}

func TestBorderColor(t *testing.T) {
	assert.Equal(t, "rgba(54, 162, 235, 1)", BorderColor("rgba(54, 162, 235, 0.6)"))
	assert.Equal(t, "rgba(75, 192, 192, 1)", BorderColor("rgba(75, 192, 192, 0.2)"))
	assert.Equal(t, "#fff", BorderColor("#fff"))
}

func TestDashboardService_Export(t *testing.T) {
	svc := newDashboard(&fakeClient{})

	_, err := svc.Export(context.Background(), client.ExportKind("clientes"))
	assert.ErrorIs(t, err, client.ErrNotFound)

	d, err := svc.Export(context.Background(), client.ExportProducts)
	require.NoError(t, err)
	defer d.Body.Close()
	assert.Equal(t, "productos.xlsx", d.Filename)
	body, err := io.ReadAll(d.Body)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(body))
}
