package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO producto en o bajo su stock mínimo.
type LowStockItemDTO struct {
	ProductID   string          `json:"producto_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"nombre"`
	StockActual decimal.Decimal `json:"stock_actual"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	Margen      decimal.Decimal `json:"margen"`
}

// InventoryValueDTO valoración del inventario.
type InventoryValueDTO struct {
	ProductCount int64           `json:"productos"`
	ValorCompra  decimal.Decimal `json:"valor_compra"`
	ValorVenta   decimal.Decimal `json:"valor_venta"`
}

// MovementStatsDTO agregado del ledger por tipo y bucket.
type MovementStatsDTO struct {
	Bucket        time.Time       `json:"bucket"`
	Tipo          string          `json:"tipo_movimiento"`
	Movimientos   int64           `json:"movimientos"`
	CantidadTotal decimal.Decimal `json:"cantidad_total"`
}

// ProviderDTO proveedor en respuestas de listado.
type ProviderDTO struct {
	ID     string `json:"id"`
	Name   string `json:"nombre"`
	NIT    string `json:"nit"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"telefono,omitempty"`
	Activo bool   `json:"activo"`
}

// ProductDTO producto en respuestas de listado.
type ProductDTO struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"nombre"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       bool            `json:"activo"`
}
