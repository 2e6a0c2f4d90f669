package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// defaultMaxRetries reintentos internos ante ErrConcurrencyConflict antes de exponerlo.
const defaultMaxRetries = 3

// ApplyMovementUseCase es el gateway de mutación de stock: el único camino
// permitido para cambiar StockActual de un producto. Cada invocación lee el
// stock con bloqueo de fila, calcula el nuevo valor y persiste la actualización
// junto con la fila del ledger dentro de una misma transacción.
type ApplyMovementUseCase struct {
	txRunner    TxRunner
	invalidator ViewInvalidator
	maxRetries  int
}

// NewApplyMovementUseCase construye el gateway. invalidator puede ser nil
// (p.ej. en procesos batch sin cache de vistas).
func NewApplyMovementUseCase(txRunner TxRunner, invalidator ViewInvalidator) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:    txRunner,
		invalidator: invalidator,
		maxRetries:  defaultMaxRetries,
	}
}

// WithMaxRetries cambia el número de reintentos ante conflictos de bloqueo.
// Valores <= 0 se ignoran.
func (uc *ApplyMovementUseCase) WithMaxRetries(n int) *ApplyMovementUseCase {
	if n > 0 {
		uc.maxRetries = n
	}
	return uc
}

// ApplyMovementInput entrada del gateway. Para entrada/salida, Cantidad debe ser
// positiva; para ajuste, Cantidad es el delta con signo (el ledger registra su
// valor absoluto).
type ApplyMovementInput struct {
	ProductID      string
	Tipo           string
	Cantidad       decimal.Decimal
	UserID         string
	Observaciones  string
	ReferenciaID   *string
	ReferenciaTipo *string
}

// MovementResult resultado de un movimiento aplicado.
type MovementResult struct {
	MovementID    string
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
}

// ApplyMovement valida la entrada, abre una transacción y aplica el movimiento.
// Ante ErrConcurrencyConflict (timeout de lock) reintenta la transacción completa
// hasta maxRetries veces. Tras el commit invalida las vistas cacheadas.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*MovementResult, error) {
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	var result *MovementResult
	var err error
	for attempt := 0; attempt <= uc.maxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
		) error {
			r, txErr := uc.ApplyMovementInTx(movRepo, productRepo, input, time.Now())
			if txErr != nil {
				return txErr
			}
			result = r
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
	return result, nil
}

// ApplyMovementInTx aplica un movimiento usando repositorios ya atados a una
// transacción del caller (p.ej. el procesamiento de recepciones, que itera
// varias líneas dentro de una sola tx). No invalida cache ni reintenta: eso es
// responsabilidad del dueño de la transacción.
func (uc *ApplyMovementUseCase) ApplyMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input ApplyMovementInput,
	now time.Time,
) (*MovementResult, error) {
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto (SELECT FOR UPDATE): dos mutaciones
	// concurrentes sobre el mismo producto nunca leen el mismo stock_actual.
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	anterior := product.StockActual
	var nuevo decimal.Decimal
	switch input.Tipo {
	case entity.MovementTypeEntrada:
		nuevo = anterior.Add(input.Cantidad)
	case entity.MovementTypeSalida:
		nuevo = anterior.Sub(input.Cantidad)
		if nuevo.IsNegative() {
			return nil, domain.ErrInsufficientStock
		}
	case entity.MovementTypeAjuste:
		nuevo = anterior.Add(input.Cantidad) // Cantidad trae el signo
		if nuevo.IsNegative() {
			return nil, domain.ErrStockNegative
		}
	default:
		return nil, domain.ErrInvalidMovementType
	}

	if err := productRepo.UpdateStock(product.ID, nuevo); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		TipoMovimiento:  input.Tipo,
		Cantidad:        input.Cantidad.Abs(),
		StockAnterior:   anterior,
		StockNuevo:      nuevo,
		ReferenciaID:    input.ReferenciaID,
		ReferenciaTipo:  input.ReferenciaTipo,
		UserID:          input.UserID,
		Observaciones:   input.Observaciones,
		FechaMovimiento: now,
		CreatedAt:       now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	return &MovementResult{
		MovementID:    mov.ID,
		StockAnterior: anterior,
		StockNuevo:    nuevo,
	}, nil
}

// validateMovementInput valida tipo y cantidad antes de tocar la BD.
func validateMovementInput(input ApplyMovementInput) error {
	if input.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(input.Tipo) {
		return domain.ErrInvalidMovementType
	}
	switch input.Tipo {
	case entity.MovementTypeEntrada, entity.MovementTypeSalida:
		if !input.Cantidad.IsPositive() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAjuste:
		if input.Cantidad.IsZero() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
