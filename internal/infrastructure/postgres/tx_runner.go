package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/application/reception"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ reception.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con
// lock_timeout acotado: una espera de bloqueo que supere el límite aborta con
// 55P03, que los repos mapean a ErrConcurrencyConflict (retryable) en lugar de
// bloquear indefinidamente.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout <= 0 usa 3s.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con los repos del gateway atados a la
// tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewStockMovementRepository(q), NewProductRepository(q))
	})
}

// RunReception inicia una transacción con los repos del workflow de
// recepciones (ledger, productos y recepciones) atados a la misma tx.
func (r *TxRunner) RunReception(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	receptionRepo repository.ReceptionRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewStockMovementRepository(q), NewProductRepository(q), NewReceptionRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// SET LOCAL aplica solo a esta transacción
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, timeout); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
