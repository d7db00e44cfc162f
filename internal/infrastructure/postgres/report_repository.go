package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestor-inventario/internal/domain/entity"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de inventario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSummary totales de productos activos, categorías y movimientos desde dayStart.
func (r *ReportRepo) GetSummary(ctx context.Context, dayStart time.Time) (*repository.InventorySummaryResult, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE activo),
			COALESCE(SUM(stock) FILTER (WHERE activo), 0),
			COALESCE(SUM(precio * stock) FILTER (WHERE activo), 0),
			COUNT(*) FILTER (WHERE activo AND stock < stock_minimo),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM movements WHERE fecha >= $1)
		FROM products`
	var res repository.InventorySummaryResult
	err := r.q.QueryRow(ctx, query, dayStart).Scan(
		&res.ActiveProducts, &res.TotalUnits, &res.TotalValue,
		&res.LowStockCount, &res.Categories, &res.MovementsToday,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &res, nil
}

// ListLowStock productos activos con stock < stock_minimo, mayor faltante primero.
func (r *ReportRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p JOIN categories c ON c.id = p.categoria
		WHERE p.activo AND p.stock < p.stock_minimo
		ORDER BY (p.stock_minimo - p.stock) DESC, p.nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetValueByCategory Σ precio × stock de productos activos por categoría, mayor valor primero.
// Incluye categorías sin productos activos (valor 0).
func (r *ReportRepo) GetValueByCategory(ctx context.Context) ([]repository.CategoryValueResult, error) {
	query := `
		SELECT c.id, c.nombre,
			COUNT(p.id),
			COALESCE(SUM(p.stock), 0),
			COALESCE(SUM(p.precio * p.stock), 0)
		FROM categories c
		LEFT JOIN products p ON p.categoria = c.id AND p.activo
		GROUP BY c.id, c.nombre
		ORDER BY 5 DESC, c.nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("value by category: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryValueResult
	for rows.Next() {
		var v repository.CategoryValueResult
		if err := rows.Scan(&v.CategoryID, &v.CategoryName, &v.Products, &v.Units, &v.Value); err != nil {
			return nil, fmt.Errorf("scan value by category: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
