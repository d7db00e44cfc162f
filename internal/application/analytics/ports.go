package analytics

import (
	"time"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
)

// TableEncoder serializa una tabla (encabezados + filas) a un archivo descargable.
// encoding: "utf-8" (por defecto) o "latin1".
type TableEncoder interface {
	Encode(headers []string, rows [][]string, encoding string) ([]byte, error)
}

// LowStockPDFGenerator genera el reporte de stock bajo en PDF.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(items []dto.LowStockItemDTO, summary *dto.InventorySummaryDTO, generatedAt time.Time) ([]byte, error)
}
