package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de mercancía. pendiente es el único estado no terminal;
// procesada y cancelada son terminales e irreversibles.
const (
	ReceptionEstadoPendiente = "pendiente"
	ReceptionEstadoProcesada = "procesada"
	ReceptionEstadoCancelada = "cancelada"
)

// Reception representa una entrega de proveedor. Total se fija en la creación
// como la suma de subtotales de sus líneas.
type Reception struct {
	ID             string
	NumeroFactura  string // único por proveedor
	ProviderID     string
	UserID         string
	Total          decimal.Decimal
	Estado         string
	Observaciones  string
	FechaRecepcion time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanTransition indica si la recepción admite transiciones de estado
// (solo desde pendiente).
func (r *Reception) CanTransition() bool {
	return r.Estado == ReceptionEstadoPendiente
}

// ReceptionItem es una línea de recepción. Inmutable una vez que la recepción
// sale de pendiente.
type ReceptionItem struct {
	ID             string
	ReceptionID    string
	ProductID      string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal // Cantidad * PrecioUnitario
}
