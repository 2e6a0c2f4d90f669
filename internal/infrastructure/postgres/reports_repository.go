package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas de solo lectura para las vistas derivadas del
// inventario. Siempre sobre el pool: nunca participa en transacciones.
type ReportsRepo struct {
	pool *pgxpool.Pool
}

// NewReportsRepository construye el adaptador de vistas.
func NewReportsRepository(pool *pgxpool.Pool) *ReportsRepo {
	return &ReportsRepo{pool: pool}
}

// GetLowStock productos activos en o bajo su stock mínimo, ordenados por
// margen (stock_actual - stock_minimo) ascendente: lo más crítico primero.
func (r *ReportsRepo) GetLowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	const query = `
	SELECT
	    id,
	    sku,
	    nombre,
	    stock_actual,
	    stock_minimo,
	    stock_actual - stock_minimo AS margen
	FROM productos
	WHERE activo AND stock_actual <= stock_minimo
	ORDER BY margen ASC, nombre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.ProductID, &row.SKU, &row.Name,
			&row.StockActual, &row.StockMinimo, &row.Margen,
		); err != nil {
			return nil, fmt.Errorf("reports.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetInventoryValue valoración del inventario sobre productos activos.
// COALESCE devuelve cero cuando no hay productos.
func (r *ReportsRepo) GetInventoryValue(ctx context.Context) (*repository.InventoryValueRow, error) {
	const query = `
	SELECT
	    COUNT(*)                                            AS productos,
	    COALESCE(SUM(stock_actual * precio_compra), 0)      AS valor_compra,
	    COALESCE(SUM(stock_actual * precio_venta), 0)       AS valor_venta
	FROM productos
	WHERE activo`

	var row repository.InventoryValueRow
	err := r.pool.QueryRow(ctx, query).Scan(&row.ProductCount, &row.ValorCompra, &row.ValorVenta)
	if err != nil {
		return nil, fmt.Errorf("reports.GetInventoryValue: %w", err)
	}
	return &row, nil
}

// GetMovementStats agrega el ledger por tipo_movimiento y bucket de fecha
// (date_trunc) dentro de la ventana [desde, hasta].
func (r *ReportsRepo) GetMovementStats(ctx context.Context, desde, hasta time.Time, bucket string) ([]repository.MovementStatsRow, error) {
	const query = `
	SELECT
	    date_trunc($3, fecha_movimiento)   AS bucket,
	    tipo_movimiento,
	    COUNT(*)                           AS movimientos,
	    COALESCE(SUM(cantidad), 0)         AS cantidad_total
	FROM movimientos_inventario
	WHERE fecha_movimiento BETWEEN $1 AND $2
	GROUP BY 1, 2
	ORDER BY 1, 2`

	rows, err := r.pool.Query(ctx, query, desde, hasta, bucket)
	if err != nil {
		return nil, fmt.Errorf("reports.GetMovementStats: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementStatsRow
	for rows.Next() {
		var row repository.MovementStatsRow
		if err := rows.Scan(&row.Bucket, &row.Tipo, &row.Movimientos, &row.CantidadTotal); err != nil {
			return nil, fmt.Errorf("reports.GetMovementStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
