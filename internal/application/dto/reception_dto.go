package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceptionItemRequest línea de una recepción nueva.
type ReceptionItemRequest struct {
	ProductID      string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateReceptionRequest body para POST /api/recepciones.
type CreateReceptionRequest struct {
	NumeroFactura  string                 `json:"numero_factura"`
	ProviderID     string                 `json:"proveedor_id"`
	FechaRecepcion time.Time              `json:"fecha_recepcion"`
	Observaciones  string                 `json:"observaciones,omitempty"`
	Items          []ReceptionItemRequest `json:"items"`
}

// UpdateReceptionRequest body para PUT /api/recepciones/:id (solo metadatos).
type UpdateReceptionRequest struct {
	Observaciones string `json:"observaciones"`
}

// ReceptionItemDTO línea en respuestas.
type ReceptionItemDTO struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ReceptionResponse recepción en respuestas.
type ReceptionResponse struct {
	ID             string             `json:"id"`
	NumeroFactura  string             `json:"numero_factura"`
	ProviderID     string             `json:"proveedor_id"`
	UserID         string             `json:"usuario_id"`
	Total          decimal.Decimal    `json:"total"`
	Estado         string             `json:"estado"`
	Observaciones  string             `json:"observaciones,omitempty"`
	FechaRecepcion time.Time          `json:"fecha_recepcion"`
	Items          []ReceptionItemDTO `json:"items,omitempty"`
}

// ReceptionWarnings advertencias no fatales del procesamiento.
type ReceptionWarnings struct {
	ProductosInactivos []string `json:"productos_inactivos"`
}

// ProcessReceptionResponse resultado de procesar una recepción.
type ProcessReceptionResponse struct {
	ID           string             `json:"id"`
	Estado       string             `json:"estado"`
	Advertencias *ReceptionWarnings `json:"advertencias,omitempty"`
}
