package repository

import (
	"time"

	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// StockMovementRepository define el puerto del ledger de movimientos.
// Solo-append: no existen métodos de actualización ni borrado, el ledger
// es el rastro de auditoría.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
