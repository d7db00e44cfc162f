// Package pdf genera el reporte de stock bajo en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + sistema      │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos activos / stock bajo / valor total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Stock | Mínimo | Faltante     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos por reponer                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorHeader  = &props.Color{Red: 230, Green: 236, Blue: 243}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.LowStockPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.LowStockPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador. appName aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLowStockPDF(
	items []dto.LowStockItemDTO,
	summary *dto.InventorySummaryDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if summary != nil {
		m.AddRows(summaryRow(summary))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	if len(items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Todos los productos activos tienen stock suficiente.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: indicadores generales del inventario.
func summaryRow(s *dto.InventorySummaryDTO) core.Row {
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		kpi("Productos activos", strconv.Itoa(s.ActiveProducts), colorPrimary),
		kpi("Unidades en stock", formatThousands(strconv.Itoa(s.TotalUnits)), colorPrimary),
		kpi("Con stock bajo", strconv.Itoa(s.LowStockCount), colorAlert),
		kpi("Valor del inventario", "$"+formatMoney(s.TotalValue.StringFixed(2)), colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Proveedor", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Mínimo", 1, align.Center),
		h("Faltante", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

// tableDetailRows: una fila por producto.
func tableDetailRows(items []dto.LowStockItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.CategoryName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Supplier, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Stock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.MinStock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Shortage), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
		))
	}
	return result
}

func footerRow(items []dto.LowStockItemDTO) core.Row {
	units := 0
	for _, it := range items {
		units += it.Shortage
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos por reponer · %s unidades faltantes",
			len(items), formatThousands(strconv.Itoa(units))), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Color: colorPrimary,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con '.' y decimales con ','.
// Ej: "433240.00" → "433.240,00"
func formatMoney(s string) string {
	intPart, frac := s, ""
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	out := formatThousands(intPart)
	if frac != "" {
		out += "," + frac
	}
	return out
}

// formatThousands inserta puntos de miles en un entero sin signo.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
