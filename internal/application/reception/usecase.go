package reception

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// maxProcessRetries reintentos de la transacción de procesamiento ante
// conflictos de bloqueo.
const maxProcessRetries = 3

// UseCase orquesta el ciclo de vida de las recepciones de mercancía:
// creación (pendiente), procesamiento (pendiente → procesada, aplica stock por
// línea vía el gateway dentro de una sola tx) y cancelación (pendiente →
// cancelada, sin efecto en stock). Ninguna transición es reversible.
type UseCase struct {
	txRunner      TxRunner
	receptionRepo repository.ReceptionRepository
	productRepo   repository.ProductRepository
	providerRepo  repository.ProviderRepository
	gateway       *inventory.ApplyMovementUseCase
	invalidator   inventory.ViewInvalidator
	voucher       VoucherGenerator
}

// NewUseCase construye el workflow de recepciones. invalidator y voucher
// pueden ser nil.
func NewUseCase(
	txRunner TxRunner,
	receptionRepo repository.ReceptionRepository,
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	gateway *inventory.ApplyMovementUseCase,
	invalidator inventory.ViewInvalidator,
	voucher VoucherGenerator,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		receptionRepo: receptionRepo,
		productRepo:   productRepo,
		providerRepo:  providerRepo,
		gateway:       gateway,
		invalidator:   invalidator,
		voucher:       voucher,
	}
}

// ItemInput línea de una recepción nueva.
type ItemInput struct {
	ProductID      string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// CreateInput entrada de crearRecepcion.
type CreateInput struct {
	NumeroFactura  string
	ProviderID     string
	FechaRecepcion time.Time
	Observaciones  string
	UserID         string
	Items          []ItemInput
}

// Detail recepción con sus líneas.
type Detail struct {
	Reception *entity.Reception
	Items     []*entity.ReceptionItem
}

// Advertencias avisos no fatales del procesamiento.
type Advertencias struct {
	ProductosInactivos []string
}

// ProcessResult resultado de procesarRecepcion. Advertencias es nil cuando no
// hubo avisos.
type ProcessResult struct {
	Reception    *entity.Reception
	Advertencias *Advertencias
}

// Create valida proveedor, unicidad de factura y productos, calcula subtotales
// y total, y persiste cabecera y líneas atómicamente en estado pendiente.
// No muta stock.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*Detail, error) {
	if input.NumeroFactura == "" || input.ProviderID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	provider, err := uc.providerRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil || !provider.Activo {
		return nil, domain.ErrProviderNotFoundOrInactive
	}

	exists, err := uc.receptionRepo.ExistsByProviderAndInvoice(input.ProviderID, input.NumeroFactura)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateInvoice
	}

	// Validar líneas y productos (lectura, fuera de la tx)
	for _, item := range input.Items {
		if item.ProductID == "" || !item.Cantidad.IsPositive() || item.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Activo {
			return nil, domain.ErrProductNotFound
		}
	}

	now := time.Now()
	fecha := input.FechaRecepcion
	if fecha.IsZero() {
		fecha = now
	}

	reception := &entity.Reception{
		ID:             uuid.New().String(),
		NumeroFactura:  input.NumeroFactura,
		ProviderID:     input.ProviderID,
		UserID:         input.UserID,
		Estado:         entity.ReceptionEstadoPendiente,
		Observaciones:  input.Observaciones,
		FechaRecepcion: fecha,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]*entity.ReceptionItem, 0, len(input.Items))
	total := decimal.Zero
	for _, in := range input.Items {
		subtotal := in.Cantidad.Mul(in.PrecioUnitario)
		total = total.Add(subtotal)
		items = append(items, &entity.ReceptionItem{
			ID:             uuid.New().String(),
			ReceptionID:    reception.ID,
			ProductID:      in.ProductID,
			Cantidad:       in.Cantidad,
			PrecioUnitario: in.PrecioUnitario,
			Subtotal:       subtotal,
		})
	}
	reception.Total = total

	err = uc.txRunner.RunReception(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		receptionRepo repository.ReceptionRepository,
	) error {
		return receptionRepo.Create(reception, items)
	})
	if err != nil {
		return nil, err
	}

	return &Detail{Reception: reception, Items: items}, nil
}

// Process ejecuta la transición pendiente → procesada. Por cada línea invoca el
// gateway (tipo=entrada, referencia recepción) y actualiza el precio de compra
// del producto, todo dentro de una sola transacción: si una línea falla no
// persiste ningún cambio de stock de esta corrida. Un producto que quedó
// inactivo desde la creación no es fatal: la línea se aplica igualmente y el
// producto se reporta en advertencias.productos_inactivos.
func (uc *UseCase) Process(ctx context.Context, receptionID, userID string) (*ProcessResult, error) {
	var reception *entity.Reception
	var inactivos []string

	var err error
	for attempt := 0; attempt <= maxProcessRetries; attempt++ {
		inactivos = nil
		err = uc.txRunner.RunReception(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
			receptionRepo repository.ReceptionRepository,
		) error {
			rec, txErr := receptionRepo.GetForUpdate(receptionID)
			if txErr != nil {
				return txErr
			}
			if rec == nil {
				return domain.ErrReceptionNotFound
			}
			if !rec.CanTransition() {
				return domain.ErrReceptionNotProcessable
			}

			items, txErr := receptionRepo.GetItems(rec.ID)
			if txErr != nil {
				return txErr
			}

			now := time.Now()
			refID := rec.ID
			refTipo := entity.ReferenceTypeRecepcion
			for _, item := range items {
				product, txErr := productRepo.GetByID(item.ProductID)
				if txErr != nil {
					return txErr
				}
				if product == nil {
					return domain.ErrProductNotFound
				}
				if !product.Activo {
					inactivos = append(inactivos, product.ID)
				}

				_, txErr = uc.gateway.ApplyMovementInTx(movRepo, productRepo, inventory.ApplyMovementInput{
					ProductID:      item.ProductID,
					Tipo:           entity.MovementTypeEntrada,
					Cantidad:       item.Cantidad,
					UserID:         userID,
					Observaciones:  fmt.Sprintf("recepción factura %s", rec.NumeroFactura),
					ReferenciaID:   &refID,
					ReferenciaTipo: &refTipo,
				}, now)
				if txErr != nil {
					return txErr
				}

				if txErr := productRepo.UpdatePurchasePrice(item.ProductID, item.PrecioUnitario); txErr != nil {
					return txErr
				}
			}

			rec.Estado = entity.ReceptionEstadoProcesada
			rec.UpdatedAt = now
			if txErr := receptionRepo.Update(rec); txErr != nil {
				return txErr
			}
			reception = rec
			return nil
		})
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate()
	}

	result := &ProcessResult{Reception: reception}
	if len(inactivos) > 0 {
		result.Advertencias = &Advertencias{ProductosInactivos: inactivos}
	}
	return result, nil
}

// Cancel ejecuta la transición pendiente → cancelada. Transición pura de
// estado: no toca el ledger ni el stock.
func (uc *UseCase) Cancel(ctx context.Context, receptionID string) (*entity.Reception, error) {
	var reception *entity.Reception
	err := uc.txRunner.RunReception(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		receptionRepo repository.ReceptionRepository,
	) error {
		rec, txErr := receptionRepo.GetForUpdate(receptionID)
		if txErr != nil {
			return txErr
		}
		if rec == nil {
			return domain.ErrReceptionNotFound
		}
		if !rec.CanTransition() {
			return domain.ErrReceptionNotCancellable
		}
		rec.Estado = entity.ReceptionEstadoCancelada
		rec.UpdatedAt = time.Now()
		if txErr := receptionRepo.Update(rec); txErr != nil {
			return txErr
		}
		reception = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate()
	}
	return reception, nil
}

// UpdateObservaciones edita metadatos de la recepción. Solo mientras está
// pendiente; las líneas nunca se editan por este camino.
func (uc *UseCase) UpdateObservaciones(ctx context.Context, receptionID, observaciones string) (*entity.Reception, error) {
	var reception *entity.Reception
	err := uc.txRunner.RunReception(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		receptionRepo repository.ReceptionRepository,
	) error {
		rec, txErr := receptionRepo.GetForUpdate(receptionID)
		if txErr != nil {
			return txErr
		}
		if rec == nil {
			return domain.ErrReceptionNotFound
		}
		if !rec.CanTransition() {
			return domain.ErrReceptionNotEditable
		}
		rec.Observaciones = observaciones
		rec.UpdatedAt = time.Now()
		if txErr := receptionRepo.Update(rec); txErr != nil {
			return txErr
		}
		reception = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reception, nil
}

// Get devuelve la recepción con sus líneas.
func (uc *UseCase) Get(ctx context.Context, receptionID string) (*Detail, error) {
	rec, err := uc.receptionRepo.GetByID(receptionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrReceptionNotFound
	}
	items, err := uc.receptionRepo.GetItems(rec.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Reception: rec, Items: items}, nil
}

// List lista recepciones con filtros opcionales de estado y proveedor.
func (uc *UseCase) List(ctx context.Context, estado, providerID string, limit, offset int) ([]*entity.Reception, error) {
	return uc.receptionRepo.List(estado, providerID, limit, offset)
}

// GenerateVoucher genera el comprobante PDF de la recepción.
func (uc *UseCase) GenerateVoucher(ctx context.Context, receptionID string) ([]byte, error) {
	if uc.voucher == nil {
		return nil, domain.ErrInvalidInput
	}
	detail, err := uc.Get(ctx, receptionID)
	if err != nil {
		return nil, err
	}
	provider, err := uc.providerRepo.GetByID(detail.Reception.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.ErrProviderNotFoundOrInactive
	}

	lines := make([]VoucherLine, 0, len(detail.Items))
	for _, item := range detail.Items {
		line := VoucherLine{
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			line.SKU = product.SKU
			line.ProductName = product.Name
		}
		lines = append(lines, line)
	}
	return uc.voucher.GenerateReceptionVoucher(ctx, detail.Reception, provider, lines)
}
