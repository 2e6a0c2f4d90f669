package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
	MovementTypeAjuste  = "ajuste"
)

// Tipos de referencia de un movimiento (documento origen del cambio de stock).
const (
	ReferenceTypeVenta     = "venta"
	ReferenceTypeRecepcion = "recepcion"
	ReferenceTypeAjuste    = "ajuste"
)

// IsValidMovementType verifica que el tipo pertenezca al conjunto cerrado.
func IsValidMovementType(tipo string) bool {
	switch tipo {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste:
		return true
	}
	return false
}

// StockMovement es una fila del ledger de movimientos: inmutable, solo-append.
// Invariante: StockNuevo - StockAnterior es el delta con signo que implican
// TipoMovimiento y Cantidad (entrada +, salida -, ajuste con signo del caller).
type StockMovement struct {
	ID              string
	ProductID       string
	TipoMovimiento  string          // entrada, salida, ajuste
	Cantidad        decimal.Decimal // siempre > 0
	StockAnterior   decimal.Decimal
	StockNuevo      decimal.Decimal
	ReferenciaID    *string // nil cuando no hay documento origen
	ReferenciaTipo  *string // venta, recepcion, ajuste o nil
	UserID          string
	Observaciones   string
	FechaMovimiento time.Time
	CreatedAt       time.Time
}

// Delta devuelve StockNuevo - StockAnterior (el delta con signo aplicado).
func (m *StockMovement) Delta() decimal.Decimal {
	return m.StockNuevo.Sub(m.StockAnterior)
}
