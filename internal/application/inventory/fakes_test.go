package inventory_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el gateway: repos + TxRunner con rollback por snapshot
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		cp := *p
		m[p.ID] = &cp
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate no bloquea nada por sí mismo: la exclusión la da el mutex del
// fakeTxRunner, igual que el row lock la da la transacción real.
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *fakeProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	if p, ok := f.products[productID]; ok {
		p.StockActual = stock
	}
	return nil
}

func (f *fakeProductRepo) UpdatePurchasePrice(productID string, precio decimal.Decimal) error {
	if p, ok := f.products[productID]; ok {
		p.PrecioCompra = precio
	}
	return nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) snapshot() map[string]*entity.Product {
	snap := make(map[string]*entity.Product, len(f.products))
	for id, p := range f.products {
		cp := *p
		snap[id] = &cp
	}
	return snap
}

func (f *fakeProductRepo) restore(snap map[string]*entity.Product) {
	f.products = snap
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.FechaMovimiento.Before(*from) {
			continue
		}
		if to != nil && m.FechaMovimiento.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMovementRepo) snapshot() int { return len(f.movements) }

func (f *fakeMovementRepo) restore(n int) { f.movements = f.movements[:n] }

// fakeTxRunner serializa transacciones con un mutex (el equivalente del row
// lock) y revierte los fakes al estado previo cuando el callback falla.
type fakeTxRunner struct {
	mu       sync.Mutex
	products *fakeProductRepo
	movs     *fakeMovementRepo
}

func newFakeTxRunner(products *fakeProductRepo) *fakeTxRunner {
	return &fakeTxRunner{products: products, movs: &fakeMovementRepo{}}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	productsSnap := r.products.snapshot()
	movsSnap := r.movs.snapshot()
	if err := fn(r.movs, r.products); err != nil {
		r.products.restore(productsSnap)
		r.movs.restore(movsSnap)
		return err
	}
	return nil
}

// conflictTxRunner rechaza las primeras conflicts transacciones con
// ErrConcurrencyConflict (como un lock_timeout que expira) y después delega
// en el runner real.
type conflictTxRunner struct {
	inner     *fakeTxRunner
	conflicts int
	calls     int
}

func (r *conflictTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.calls++
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrConcurrencyConflict
	}
	return r.inner.Run(ctx, fn)
}

type fakeInvalidator struct {
	mu    sync.Mutex
	count int
}

func (f *fakeInvalidator) Invalidate() {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
}

func (f *fakeInvalidator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// helpers

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func productoDePrueba(id string, stock, minimo int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        "Producto " + id,
		StockActual: dec(stock),
		StockMinimo: dec(minimo),
		Activo:      true,
	}
}
