package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
)

// InventorySummaryResult totales del inventario activo.
type InventorySummaryResult struct {
	ActiveProducts int
	TotalUnits     int
	TotalValue     decimal.Decimal // Σ precio × stock
	LowStockCount  int
	Categories     int
	MovementsToday int
}

// CategoryValueResult valor de inventario agrupado por categoría.
type CategoryValueResult struct {
	CategoryID   string
	CategoryName string
	Products     int
	Units        int
	Value        decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	GetSummary(ctx context.Context, dayStart time.Time) (*InventorySummaryResult, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	GetValueByCategory(ctx context.Context) ([]CategoryValueResult, error)
}
