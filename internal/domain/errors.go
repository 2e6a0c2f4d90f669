package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Taxonomía cerrada:
// NotFound, validación, regla de negocio y conflicto de concurrencia (retryable).
var (
	ErrProductNotFound            = errors.New("producto no encontrado")
	ErrProviderNotFoundOrInactive = errors.New("proveedor no encontrado o inactivo")
	ErrReceptionNotFound          = errors.New("recepción no encontrada")
	ErrUserNotFound               = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists         = errors.New("el email ya está registrado")

	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")

	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrStockNegative           = errors.New("el stock no puede ser negativo")
	ErrStockUnchanged          = errors.New("el stock nuevo es igual al actual")
	ErrDuplicateInvoice        = errors.New("ya existe una recepción con ese número de factura para el proveedor")
	ErrReceptionNotProcessable = errors.New("la recepción no está en estado pendiente, no se puede procesar")
	ErrReceptionNotCancellable = errors.New("la recepción no está en estado pendiente, no se puede cancelar")
	ErrReceptionNotEditable    = errors.New("la recepción no está en estado pendiente, no se puede editar")

	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrConcurrencyConflict señala contención de bloqueo sobre la fila de stock.
	// Es retryable: el gateway reintenta un número acotado de veces antes de exponerlo.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre el stock, reintentar")
)

// StockExcessiveError indica que el stock propuesto supera el tope permitido
// respecto al stock actual (protección contra errores de digitación).
type StockExcessiveError struct {
	StockPropuesto decimal.Decimal
	MaxPermitido   decimal.Decimal
}

func (e *StockExcessiveError) Error() string {
	return fmt.Sprintf("stock excesivo: %s supera el máximo permitido %s",
		e.StockPropuesto.String(), e.MaxPermitido.String())
}

// CriticalAdjustmentError indica un ajuste con cambio porcentual crítico
// sin justificación suficiente en observaciones.
type CriticalAdjustmentError struct {
	DiferenciaPorcentaje decimal.Decimal
	MinJustificacion     int
}

func (e *CriticalAdjustmentError) Error() string {
	return fmt.Sprintf("ajuste crítico (%s%%): se requiere justificación de al menos %d caracteres",
		e.DiferenciaPorcentaje.StringFixed(2), e.MinJustificacion)
}
