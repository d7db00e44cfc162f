// Package analytics contiene los casos de uso de reportes de inventario y exportaciones.
package analytics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// Formatos de exportación.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"

	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

const exportBatchSize = 100

var hundred = decimal.NewFromInt(100)

// ReportUseCase genera los reportes del inventario (resumen, stock bajo, valor por categoría)
// y sus exportaciones CSV/PDF.
//
// Fuente de datos: ReportRepository (consultas read-only) y los repositorios de productos y movimientos
// para los listados completos.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	csv          TableEncoder
	pdf          LowStockPDFGenerator
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil (solo CSV).
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	csv TableEncoder,
	pdf LowStockPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		csv:          csv,
		pdf:          pdf,
		now:          time.Now,
	}
}

// Summary totales del inventario activo y movimientos del día.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	res, err := uc.reportRepo.GetSummary(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryDTO{
		ActiveProducts: res.ActiveProducts,
		TotalUnits:     res.TotalUnits,
		TotalValue:     res.TotalValue.Round(2),
		LowStockCount:  res.LowStockCount,
		Categories:     res.Categories,
		MovementsToday: res.MovementsToday,
	}, nil
}

// LowStock productos activos con stock < stockMinimo, mayor faltante primero.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	list, err := uc.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(list))
	for _, p := range list {
		items = append(items, dto.LowStockItemDTO{
			ID:           p.ID,
			Name:         p.Name,
			CategoryName: p.CategoryName,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			Shortage:     p.MinStock - p.Stock,
			Price:        p.Price,
			Supplier:     p.Supplier,
			Barcode:      p.Barcode,
		})
	}
	return items, nil
}

// ValueByCategory Σ precio × stock de productos activos por categoría, mayor valor primero.
func (uc *ReportUseCase) ValueByCategory(ctx context.Context) ([]dto.CategoryValueDTO, error) {
	rows, err := uc.reportRepo.GetValueByCategory(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Value)
	}
	items := make([]dto.CategoryValueDTO, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.Value.Div(total).Mul(hundred).Round(2)
		}
		items = append(items, dto.CategoryValueDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Products:     r.Products,
			Units:        r.Units,
			Value:        r.Value.Round(2),
			Percentage:   pct,
		})
	}
	return items, nil
}

// ExportLowStock exporta el reporte de stock bajo en CSV o PDF.
func (uc *ReportUseCase) ExportLowStock(ctx context.Context, in dto.ExportRequest) (*dto.ExportFile, error) {
	format, encoding, err := normalizeExport(in)
	if err != nil {
		return nil, err
	}
	items, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	if format == FormatPDF {
		if uc.pdf == nil {
			return nil, domain.ErrInvalidInput
		}
		summary, err := uc.Summary(ctx)
		if err != nil {
			return nil, err
		}
		content, err := uc.pdf.GenerateLowStockPDF(items, summary, uc.now())
		if err != nil {
			return nil, err
		}
		return &dto.ExportFile{Filename: "reporte_stock_bajo.pdf", ContentType: "application/pdf", Content: content}, nil
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name, it.CategoryName, strconv.Itoa(it.Stock), strconv.Itoa(it.MinStock), it.Supplier, it.Barcode,
		})
	}
	headers := []string{"Nombre", "Categoria", "StockActual", "StockMinimo", "Proveedor", "CodigoBarras"}
	return uc.csvFile("reporte_stock_bajo.csv", headers, rows, encoding)
}

// ExportValueByCategory exporta el valor por categoría en CSV.
func (uc *ReportUseCase) ExportValueByCategory(ctx context.Context, in dto.ExportRequest) (*dto.ExportFile, error) {
	_, encoding, err := normalizeCSVExport(in)
	if err != nil {
		return nil, err
	}
	items, err := uc.ValueByCategory(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.CategoryName, strconv.Itoa(it.Products), it.Value.StringFixed(2)})
	}
	headers := []string{"Categoria", "NumeroDeProductos", "ValorTotal"}
	return uc.csvFile("reporte_valor_por_categoria.csv", headers, rows, encoding)
}

// ExportProducts exporta el catálogo completo (con los mismos filtros del listado) en CSV.
func (uc *ReportUseCase) ExportProducts(ctx context.Context, filter repository.ProductFilter, in dto.ExportRequest) (*dto.ExportFile, error) {
	_, encoding, err := normalizeCSVExport(in)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	filter.Limit, filter.Offset = exportBatchSize, 0
	for {
		list, total, err := uc.productRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			rows = append(rows, productRow(p))
		}
		filter.Offset += len(list)
		if len(list) == 0 || filter.Offset >= total {
			break
		}
	}
	headers := []string{"Nombre", "Descripcion", "Categoria", "Precio", "Stock", "StockMinimo", "CodigoBarras", "Proveedor", "Activo", "StockBajo"}
	return uc.csvFile("productos.csv", headers, rows, encoding)
}

// ExportMovements exporta el historial de movimientos (más recientes primero) en CSV.
func (uc *ReportUseCase) ExportMovements(ctx context.Context, filter repository.MovementFilter, in dto.ExportRequest) (*dto.ExportFile, error) {
	_, encoding, err := normalizeCSVExport(in)
	if err != nil {
		return nil, err
	}
	if filter.Type != "" && !entity.IsValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	var rows [][]string
	filter.Limit, filter.Offset = exportBatchSize, 0
	for {
		list, total, err := uc.movementRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, m := range list {
			rows = append(rows, movementRow(m))
		}
		filter.Offset += len(list)
		if len(list) == 0 || filter.Offset >= total {
			break
		}
	}
	headers := []string{"Fecha", "Producto", "Tipo", "Cantidad", "Motivo", "Usuario", "Notas"}
	return uc.csvFile("movimientos.csv", headers, rows, encoding)
}

func (uc *ReportUseCase) csvFile(name string, headers []string, rows [][]string, encoding string) (*dto.ExportFile, error) {
	content, err := uc.csv.Encode(headers, rows, encoding)
	if err != nil {
		return nil, err
	}
	charset := "utf-8"
	if encoding == EncodingLatin1 {
		charset = "iso-8859-1"
	}
	return &dto.ExportFile{Filename: name, ContentType: "text/csv; charset=" + charset, Content: content}, nil
}

func normalizeExport(in dto.ExportRequest) (format, encoding string, err error) {
	format = strings.ToLower(strings.TrimSpace(in.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return "", "", domain.ErrInvalidInput
	}
	encoding = strings.ToLower(strings.TrimSpace(in.Encoding))
	switch encoding {
	case "", "utf8", EncodingUTF8:
		encoding = EncodingUTF8
	case "latin-1", "iso-8859-1", EncodingLatin1:
		encoding = EncodingLatin1
	default:
		return "", "", domain.ErrInvalidInput
	}
	return format, encoding, nil
}

func normalizeCSVExport(in dto.ExportRequest) (string, string, error) {
	format, encoding, err := normalizeExport(in)
	if err != nil {
		return "", "", err
	}
	if format != FormatCSV {
		return "", "", domain.ErrInvalidInput
	}
	return format, encoding, nil
}

func productRow(p *entity.Product) []string {
	return []string{
		p.Name,
		p.Description,
		p.CategoryName,
		p.Price.StringFixed(2),
		strconv.Itoa(p.Stock),
		strconv.Itoa(p.MinStock),
		p.Barcode,
		p.Supplier,
		yesNo(p.Active),
		yesNo(p.IsLowStock()),
	}
}

func movementRow(m *entity.Movement) []string {
	product := m.ProductName
	if product == "" {
		product = "(producto eliminado)"
	}
	return []string{
		m.Date.Format("2006-01-02 15:04"),
		product,
		m.Type,
		strconv.Itoa(m.Quantity),
		m.Reason,
		m.User,
		m.Notes,
	}
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
