package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockRow producto activo con stock en o bajo su mínimo.
type LowStockRow struct {
	ProductID   string
	SKU         string
	Name        string
	StockActual decimal.Decimal
	StockMinimo decimal.Decimal
	Margen      decimal.Decimal // StockActual - StockMinimo (<= 0 siempre)
}

// InventoryValueRow valoración del inventario sobre productos activos.
type InventoryValueRow struct {
	ProductCount int64
	ValorCompra  decimal.Decimal // Σ stock_actual * precio_compra
	ValorVenta   decimal.Decimal // Σ stock_actual * precio_venta
}

// MovementStatsRow agregado del ledger por tipo y bucket de fecha.
type MovementStatsRow struct {
	Bucket        time.Time
	Tipo          string
	Movimientos   int64
	CantidadTotal decimal.Decimal
}

// ReportsRepository consultas de solo lectura sobre productos y ledger.
// Nunca escriben; reflejan el último commit del gateway.
type ReportsRepository interface {
	GetLowStock(ctx context.Context) ([]LowStockRow, error)
	GetInventoryValue(ctx context.Context) (*InventoryValueRow, error)
	// GetMovementStats agrupa por tipo_movimiento y bucket ("day", "week", "month")
	// dentro de la ventana [desde, hasta].
	GetMovementStats(ctx context.Context, desde, hasta time.Time, bucket string) ([]MovementStatsRow, error)
}
