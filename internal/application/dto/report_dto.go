package dto

import "github.com/shopspring/decimal"

// InventorySummaryDTO resumen para GET /api/reports/summary.
type InventorySummaryDTO struct {
	ActiveProducts int             `json:"productosActivos"`
	TotalUnits     int             `json:"unidadesTotales"`
	TotalValue     decimal.Decimal `json:"valorTotal"` // Σ precio × stock (productos activos)
	LowStockCount  int             `json:"productosStockBajo"`
	Categories     int             `json:"categorias"`
	MovementsToday int             `json:"movimientosHoy"`
}

// LowStockItemDTO producto activo con stock < stockMinimo.
type LowStockItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"nombre"`
	CategoryName string          `json:"categoria"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"stockMinimo"`
	Shortage     int             `json:"faltante"` // stockMinimo - stock
	Price        decimal.Decimal `json:"precio"`
	Supplier     string          `json:"proveedor,omitempty"`
	Barcode      string          `json:"codigoBarras,omitempty"`
}

// CategoryValueDTO valor de inventario por categoría.
type CategoryValueDTO struct {
	CategoryID   string          `json:"categoriaId"`
	CategoryName string          `json:"categoria"`
	Products     int             `json:"productos"`
	Units        int             `json:"unidades"`
	Value        decimal.Decimal `json:"valor"`
	Percentage   decimal.Decimal `json:"porcentaje"` // participación en el valor total
}

// ExportRequest parámetros de exportación (?format=csv|pdf&encoding=utf-8|latin1).
type ExportRequest struct {
	Format   string `query:"format"`
	Encoding string `query:"encoding"`
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
