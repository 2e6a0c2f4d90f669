package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario (bodega única).
// StockActual es el valor autoritativo y solo se muta vía el gateway de movimientos;
// el resto de atributos los administra el módulo de productos (externo).
type Product struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	StockActual  decimal.Decimal // no negativo, precisión 3 decimales
	StockMinimo  decimal.Decimal
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
	Activo       bool // desactivado = ya no se vende; nunca se borra
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
