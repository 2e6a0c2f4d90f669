package reception_test

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
// Fakes en memoria para el workflow de recepciones
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

func (f *fakeProductRepo) restore(snap map[string]*entity.Product) { f.products = snap }

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
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) snapshot() int { return len(f.movements) }
func (f *fakeMovementRepo) restore(n int) { f.movements = f.movements[:n] }

type fakeReceptionRepo struct {
	receptions map[string]*entity.Reception
	items      map[string][]*entity.ReceptionItem
}

func newFakeReceptionRepo() *fakeReceptionRepo {
	return &fakeReceptionRepo{
		receptions: make(map[string]*entity.Reception),
		items:      make(map[string][]*entity.ReceptionItem),
	}
}

func (f *fakeReceptionRepo) Create(reception *entity.Reception, items []*entity.ReceptionItem) error {
	for _, rec := range f.receptions {
		if rec.ProviderID == reception.ProviderID && rec.NumeroFactura == reception.NumeroFactura {
			return domain.ErrDuplicateInvoice
		}
	}
	cp := *reception
	f.receptions[reception.ID] = &cp
	for _, it := range items {
		ci := *it
		f.items[reception.ID] = append(f.items[reception.ID], &ci)
	}
	return nil
}

func (f *fakeReceptionRepo) GetByID(id string) (*entity.Reception, error) {
	rec, ok := f.receptions[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeReceptionRepo) GetForUpdate(id string) (*entity.Reception, error) {
	return f.GetByID(id)
}

func (f *fakeReceptionRepo) GetItems(receptionID string) ([]*entity.ReceptionItem, error) {
	var out []*entity.ReceptionItem
	for _, it := range f.items[receptionID] {
		ci := *it
		out = append(out, &ci)
	}
	return out, nil
}

func (f *fakeReceptionRepo) ExistsByProviderAndInvoice(providerID, numeroFactura string) (bool, error) {
	for _, rec := range f.receptions {
		if rec.ProviderID == providerID && rec.NumeroFactura == numeroFactura {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReceptionRepo) Update(reception *entity.Reception) error {
	if _, ok := f.receptions[reception.ID]; ok {
		cp := *reception
		f.receptions[reception.ID] = &cp
	}
	return nil
}

func (f *fakeReceptionRepo) List(estado, providerID string, limit, offset int) ([]*entity.Reception, error) {
	var out []*entity.Reception
	for _, rec := range f.receptions {
		if estado != "" && rec.Estado != estado {
			continue
		}
		if providerID != "" && rec.ProviderID != providerID {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeReceptionRepo) snapshot() map[string]*entity.Reception {
	snap := make(map[string]*entity.Reception, len(f.receptions))
	for id, rec := range f.receptions {
		cp := *rec
		snap[id] = &cp
	}
	return snap
}

func (f *fakeReceptionRepo) restore(snap map[string]*entity.Reception) { f.receptions = snap }

type fakeProviderRepo struct {
	providers map[string]*entity.Provider
}

func newFakeProviderRepo(providers ...*entity.Provider) *fakeProviderRepo {
	m := make(map[string]*entity.Provider, len(providers))
	for _, p := range providers {
		cp := *p
		m[p.ID] = &cp
	}
	return &fakeProviderRepo{providers: m}
}

func (f *fakeProviderRepo) GetByID(id string) (*entity.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviderRepo) List(limit, offset int) ([]*entity.Provider, error) {
	out := make([]*entity.Provider, 0, len(f.providers))
	for _, p := range f.providers {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTxRunner implementa los runners de inventario y recepciones sobre los
// mismos fakes, con rollback por snapshot cuando el callback falla.
type fakeTxRunner struct {
	mu         sync.Mutex
	products   *fakeProductRepo
	movs       *fakeMovementRepo
	receptions *fakeReceptionRepo
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

func (r *fakeTxRunner) RunReception(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	receptionRepo repository.ReceptionRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	productsSnap := r.products.snapshot()
	movsSnap := r.movs.snapshot()
	receptionsSnap := r.receptions.snapshot()
	if err := fn(r.movs, r.products, r.receptions); err != nil {
		r.products.restore(productsSnap)
		r.movs.restore(movsSnap)
		r.receptions.restore(receptionsSnap)
		return err
	}
	return nil
}

// conflictReceptionTxRunner rechaza las primeras conflicts transacciones con
// ErrConcurrencyConflict (como un lock_timeout que expira) y después delega
// en el runner real.
type conflictReceptionTxRunner struct {
	inner     *fakeTxRunner
	conflicts int
	calls     int
}

func (r *conflictReceptionTxRunner) RunReception(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	receptionRepo repository.ReceptionRepository,
) error) error {
	r.calls++
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrConcurrencyConflict
	}
	return r.inner.RunReception(ctx, fn)
}

type fakeInvalidator struct {
	count int
}

func (f *fakeInvalidator) Invalidate() { f.count++ }

// helpers

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func productoDePrueba(id string, stock int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        "Producto " + id,
		StockActual: dec(stock),
		StockMinimo: dec(2),
		Activo:      true,
	}
}

func proveedorDePrueba(id string) *entity.Provider {
	return &entity.Provider{ID: id, Name: "Proveedor " + id, NIT: "900123456", Activo: true}
}
