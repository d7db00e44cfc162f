package analytics_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	summary  *repository.InventorySummaryResult
	lowStock []*entity.Product
	values   []repository.CategoryValueResult
	dayStart time.Time
}

func (r *fakeReportRepo) GetSummary(_ context.Context, dayStart time.Time) (*repository.InventorySummaryResult, error) {
	r.dayStart = dayStart
	return r.summary, nil
}

func (r *fakeReportRepo) ListLowStock(context.Context) ([]*entity.Product, error) {
	return r.lowStock, nil
}

func (r *fakeReportRepo) GetValueByCategory(context.Context) ([]repository.CategoryValueResult, error) {
	return r.values, nil
}

type pagedProductRepo struct {
	repository.ProductRepository
	items []*entity.Product
	calls int
}

func (r *pagedProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.calls++
	end := f.Offset + f.Limit
	if end > len(r.items) {
		end = len(r.items)
	}
	if f.Offset >= len(r.items) {
		return nil, len(r.items), nil
	}
	return r.items[f.Offset:end], len(r.items), nil
}

type pagedMovementRepo struct {
	repository.MovementRepository
	items []*entity.Movement
}

func (r *pagedMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	if f.Offset >= len(r.items) {
		return nil, len(r.items), nil
	}
	end := f.Offset + f.Limit
	if end > len(r.items) {
		end = len(r.items)
	}
	return r.items[f.Offset:end], len(r.items), nil
}

type captureEncoder struct {
	headers  []string
	rows     [][]string
	encoding string
}

func (e *captureEncoder) Encode(headers []string, rows [][]string, encoding string) ([]byte, error) {
	e.headers, e.rows, e.encoding = headers, rows, encoding
	return []byte(strings.Join(headers, ",")), nil
}

type capturePDF struct {
	items []dto.LowStockItemDTO
}

func (g *capturePDF) GenerateLowStockPDF(items []dto.LowStockItemDTO, _ *dto.InventorySummaryDTO, _ time.Time) ([]byte, error) {
	g.items = items
	return []byte("%PDF-1.3"), nil
}

type fixture struct {
	uc        *analytics.ReportUseCase
	reports   *fakeReportRepo
	products  *pagedProductRepo
	movements *pagedMovementRepo
	csv       *captureEncoder
	pdf       *capturePDF
}

func newFixture() *fixture {
	f := &fixture{
		reports: &fakeReportRepo{
			summary: &repository.InventorySummaryResult{
				ActiveProducts: 4, TotalUnits: 92, TotalValue: decimal.RequireFromString("433240.004"),
				LowStockCount: 1, Categories: 3, MovementsToday: 2,
			},
			lowStock: []*entity.Product{{
				ID: "p3", Name: "Papel Bond A4 500 hojas", CategoryName: "Oficina", Stock: 2, MinStock: 10,
				Price: decimal.NewFromInt(120), Supplier: "Papelería Corp", Barcode: "PAP-BON-003", Active: true,
			}},
			values: []repository.CategoryValueResult{
				{CategoryID: "c1", CategoryName: "Electrónicos", Products: 2, Units: 75, Value: decimal.NewFromInt(300000)},
				{CategoryID: "c2", CategoryName: "Herramientas", Products: 1, Units: 15, Value: decimal.NewFromInt(100000)},
			},
		},
		products:  &pagedProductRepo{},
		movements: &pagedMovementRepo{},
		csv:       &captureEncoder{},
		pdf:       &capturePDF{},
	}
	f.uc = analytics.NewReportUseCase(f.reports, f.products, f.movements, f.csv, f.pdf)
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "433240", out.TotalValue.String(), "redondeado a 2 decimales")
	assert.Equal(t, 4, out.ActiveProducts)
	assert.Equal(t, 0, f.reports.dayStart.Hour(), "movimientos desde el inicio del día")
}

func TestLowStock_ScenarioA(t *testing.T) {
	f := newFixture()

	items, err := f.uc.LowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Papel Bond A4 500 hojas", items[0].Name)
	assert.Equal(t, 8, items[0].Shortage)
}

func TestValueByCategory_Porcentajes(t *testing.T) {
	f := newFixture()

	items, err := f.uc.ValueByCategory(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "75", items[0].Percentage.String())
	assert.Equal(t, "25", items[1].Percentage.String())
}

func TestValueByCategory_SinValor(t *testing.T) {
	f := newFixture()
	f.reports.values = []repository.CategoryValueResult{{CategoryName: "Vacía"}}

	items, err := f.uc.ValueByCategory(context.Background())

	require.NoError(t, err)
	assert.True(t, items[0].Percentage.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportLowStock_CSV(t *testing.T) {
	f := newFixture()

	file, err := f.uc.ExportLowStock(context.Background(), dto.ExportRequest{Encoding: "LATIN1"})

	require.NoError(t, err)
	assert.Equal(t, "reporte_stock_bajo.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=iso-8859-1", file.ContentType)
	assert.Equal(t, analytics.EncodingLatin1, f.csv.encoding)
	assert.Equal(t, []string{"Nombre", "Categoria", "StockActual", "StockMinimo", "Proveedor", "CodigoBarras"}, f.csv.headers)
	assert.Equal(t, [][]string{{"Papel Bond A4 500 hojas", "Oficina", "2", "10", "Papelería Corp", "PAP-BON-003"}}, f.csv.rows)
}

func TestExportLowStock_PDF(t *testing.T) {
	f := newFixture()

	file, err := f.uc.ExportLowStock(context.Background(), dto.ExportRequest{Format: "pdf"})

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Len(t, f.pdf.items, 1)
}

func TestExport_FormatoInvalido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.ExportLowStock(ctx, dto.ExportRequest{Format: "xlsx"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ExportLowStock(ctx, dto.ExportRequest{Encoding: "utf-16"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ExportProducts(ctx, repository.ProductFilter{}, dto.ExportRequest{Format: "pdf"})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "el catálogo solo se exporta en CSV")
}

func TestExportProducts_RecorreTodasLasPaginas(t *testing.T) {
	f := newFixture()
	for i := 0; i < 250; i++ {
		f.products.items = append(f.products.items, &entity.Product{
			ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Producto %d", i), Price: decimal.NewFromFloat(10.5),
			Stock: i, MinStock: 5, Active: true,
		})
	}

	file, err := f.uc.ExportProducts(context.Background(), repository.ProductFilter{}, dto.ExportRequest{})

	require.NoError(t, err)
	assert.Equal(t, "productos.csv", file.Filename)
	assert.Len(t, f.csv.rows, 250)
	assert.Equal(t, 3, f.products.calls)
	assert.Equal(t, []string{"Producto 0", "", "", "10.50", "0", "5", "", "", "Sí", "Sí"}, f.csv.rows[0])
}

func TestExportMovements(t *testing.T) {
	f := newFixture()
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	f.movements.items = []*entity.Movement{
		{ID: "m1", ProductName: "Mouse Logitech MX Master", Type: "salida", Quantity: 2, Reason: "venta", User: "Caja, 1", Date: date},
		{ID: "m2", Type: "entrada", Quantity: 5, Reason: "compra", User: "Admin", Date: date},
	}

	_, err := f.uc.ExportMovements(context.Background(), repository.MovementFilter{}, dto.ExportRequest{})

	require.NoError(t, err)
	require.Len(t, f.csv.rows, 2)
	assert.Equal(t, []string{"2024-03-15 10:30", "Mouse Logitech MX Master", "salida", "2", "venta", "Caja, 1", ""}, f.csv.rows[0])
	assert.Equal(t, "(producto eliminado)", f.csv.rows[1][1])

	_, err = f.uc.ExportMovements(context.Background(), repository.MovementFilter{Type: "ajuste"}, dto.ExportRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
