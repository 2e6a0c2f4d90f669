package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock solo debe invocarse desde el gateway de movimientos;
// UpdatePurchasePrice solo desde el procesamiento de recepciones.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock decimal.Decimal) error
	UpdatePurchasePrice(productID string, precio decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
