package inventory

import (
	"context"

	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la actualización
// de stock y el append al ledger (Commit si fn retorna nil, Rollback si no).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ViewInvalidator descarta las vistas derivadas cacheadas (stock bajo,
// valoración, estadísticas) tras cada mutación confirmada.
type ViewInvalidator interface {
	Invalidate()
}
