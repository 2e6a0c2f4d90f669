package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dasava11/santuario-api-sub002/internal/domain"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// Tipos de ajuste según el signo de la diferencia.
const (
	TipoAjusteIncremento = "incremento"
	TipoAjusteDecremento = "decremento"
)

// GuardrailConfig límites de seguridad para correcciones manuales de stock.
type GuardrailConfig struct {
	// MaxFactor tope relativo: nuevoStock no puede superar stock_actual * MaxFactor.
	MaxFactor decimal.Decimal
	// MinCeiling piso absoluto del tope, para poder corregir productos en cero.
	MinCeiling decimal.Decimal
	// CriticalChangePct cambio porcentual a partir del cual se exige justificación.
	CriticalChangePct decimal.Decimal
	// MinJustificationLen largo mínimo de observaciones en ajustes críticos.
	MinJustificationLen int
}

// DefaultGuardrailConfig valores por defecto: tope 10x (mínimo 1000),
// umbral crítico 50%, justificación de 20 caracteres.
func DefaultGuardrailConfig() GuardrailConfig {
	return GuardrailConfig{
		MaxFactor:           decimal.NewFromInt(10),
		MinCeiling:          decimal.NewFromInt(1000),
		CriticalChangePct:   decimal.NewFromInt(50),
		MinJustificationLen: 20,
	}
}

// AdjustStockUseCase valida correcciones manuales de stock (guardrail) y las
// delega al gateway de movimientos como un ajuste con delta firmado.
type AdjustStockUseCase struct {
	gateway     *ApplyMovementUseCase
	productRepo repository.ProductRepository
	cfg         GuardrailConfig
}

// NewAdjustStockUseCase construye el caso de uso de ajustes.
func NewAdjustStockUseCase(gateway *ApplyMovementUseCase, productRepo repository.ProductRepository, cfg GuardrailConfig) *AdjustStockUseCase {
	return &AdjustStockUseCase{gateway: gateway, productRepo: productRepo, cfg: cfg}
}

// AdjustStockInput entrada de ajustarInventario.
type AdjustStockInput struct {
	ProductID     string
	NuevoStock    decimal.Decimal
	Observaciones string
	UserID        string
}

// AdjustmentCheck resultado de la validación del guardrail.
type AdjustmentCheck struct {
	Diferencia           decimal.Decimal
	DiferenciaPorcentaje decimal.Decimal
	TipoAjuste           string // incremento | decremento
	AlertaStockBajo      bool   // nuevoStock <= stock_minimo
}

// AdjustmentResult resultado completo del ajuste aplicado.
type AdjustmentResult struct {
	StockAnterior        decimal.Decimal
	StockNuevo           decimal.Decimal
	Diferencia           decimal.Decimal
	DiferenciaPorcentaje decimal.Decimal
	TipoAjuste           string
	AlertaStockBajo      bool
}

// ValidateAdjustment aplica el guardrail sobre una corrección propuesta sin
// tocar la BD: rangos, tope relativo y justificación en cambios críticos.
func (uc *AdjustStockUseCase) ValidateAdjustment(product *entity.Product, nuevoStock decimal.Decimal, observaciones string) (*AdjustmentCheck, error) {
	if nuevoStock.IsNegative() {
		return nil, domain.ErrStockNegative
	}
	if nuevoStock.Equal(product.StockActual) {
		return nil, domain.ErrStockUnchanged
	}

	maxPermitido := decimal.Max(product.StockActual.Mul(uc.cfg.MaxFactor), uc.cfg.MinCeiling)
	if nuevoStock.GreaterThan(maxPermitido) {
		return nil, &domain.StockExcessiveError{
			StockPropuesto: nuevoStock,
			MaxPermitido:   maxPermitido,
		}
	}

	diferencia := nuevoStock.Sub(product.StockActual)
	// max(stock_actual, 1) evita división por cero cuando el stock parte de 0.
	denominador := decimal.Max(product.StockActual, decimal.NewFromInt(1))
	porcentaje := diferencia.Mul(decimal.NewFromInt(100)).Div(denominador).Round(2)

	if porcentaje.Abs().GreaterThan(uc.cfg.CriticalChangePct) {
		if len(strings.TrimSpace(observaciones)) < uc.cfg.MinJustificationLen {
			return nil, &domain.CriticalAdjustmentError{
				DiferenciaPorcentaje: porcentaje,
				MinJustificacion:     uc.cfg.MinJustificationLen,
			}
		}
	}

	tipo := TipoAjusteIncremento
	if diferencia.IsNegative() {
		tipo = TipoAjusteDecremento
	}
	return &AdjustmentCheck{
		Diferencia:           diferencia,
		DiferenciaPorcentaje: porcentaje,
		TipoAjuste:           tipo,
		AlertaStockBajo:      nuevoStock.LessThanOrEqual(product.StockMinimo),
	}, nil
}

// AdjustStock valida el ajuste y lo aplica vía el gateway con tipo=ajuste y
// la diferencia firmada como delta.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*AdjustmentResult, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	check, err := uc.ValidateAdjustment(product, input.NuevoStock, input.Observaciones)
	if err != nil {
		return nil, err
	}

	refTipo := entity.ReferenceTypeAjuste
	res, err := uc.gateway.ApplyMovement(ctx, ApplyMovementInput{
		ProductID:      input.ProductID,
		Tipo:           entity.MovementTypeAjuste,
		Cantidad:       check.Diferencia,
		UserID:         input.UserID,
		Observaciones:  input.Observaciones,
		ReferenciaTipo: &refTipo,
	})
	if err != nil {
		return nil, err
	}

	return &AdjustmentResult{
		StockAnterior:        res.StockAnterior,
		StockNuevo:           res.StockNuevo,
		Diferencia:           check.Diferencia,
		DiferenciaPorcentaje: check.DiferenciaPorcentaje,
		TipoAjuste:           check.TipoAjuste,
		AlertaStockBajo:      check.AlertaStockBajo,
	}, nil
}
