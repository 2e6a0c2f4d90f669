package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/inventario/movimientos.
// Para tipo=ajuste, cantidad es el delta con signo.
type ApplyMovementRequest struct {
	ProductID     string          `json:"producto_id"`
	Tipo          string          `json:"tipo_movimiento"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Observaciones string          `json:"observaciones,omitempty"`
}

// MovementResponse resultado de un movimiento aplicado.
type MovementResponse struct {
	MovementID    string          `json:"movimiento_id"`
	ProductID     string          `json:"producto_id"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
}

// AdjustStockRequest body para POST /api/inventario/ajustes.
type AdjustStockRequest struct {
	ProductID     string          `json:"producto_id"`
	NuevoStock    decimal.Decimal `json:"nuevo_stock"`
	Observaciones string          `json:"observaciones"`
}

// AdjustmentResponse resultado de ajustarInventario.
type AdjustmentResponse struct {
	ProductID            string          `json:"producto_id"`
	StockAnterior        decimal.Decimal `json:"stock_anterior"`
	StockNuevo           decimal.Decimal `json:"stock_nuevo"`
	Diferencia           decimal.Decimal `json:"diferencia"`
	DiferenciaPorcentaje decimal.Decimal `json:"diferencia_porcentaje"`
	TipoAjuste           string          `json:"tipo_ajuste"`
	AlertaStockBajo      bool            `json:"alerta_stock_bajo"`
}

// MovementDTO fila del ledger en respuestas de listado.
type MovementDTO struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"producto_id"`
	TipoMovimiento  string          `json:"tipo_movimiento"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	StockAnterior   decimal.Decimal `json:"stock_anterior"`
	StockNuevo      decimal.Decimal `json:"stock_nuevo"`
	ReferenciaID    *string         `json:"referencia_id,omitempty"`
	ReferenciaTipo  *string         `json:"referencia_tipo,omitempty"`
	UserID          string          `json:"usuario_id"`
	Observaciones   string          `json:"observaciones,omitempty"`
	FechaMovimiento time.Time       `json:"fecha_movimiento"`
}
