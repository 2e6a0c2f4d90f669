package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/domain"
)

// respondDomainError traduce la taxonomía de errores de dominio a HTTP.
// Validación → 400, no encontrado → 404, reglas de negocio → 409, guardrail
// con datos estructurados → 422, conflicto de concurrencia (tras agotar los
// reintentos internos) → 409. Lo no clasificado es 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	var excessive *domain.StockExcessiveError
	if errors.As(err, &excessive) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "STOCK_EXCESSIVE",
			Message: "el stock propuesto supera el máximo permitido",
			Detail: map[string]any{
				"stock_propuesto": excessive.StockPropuesto,
				"max_permitido":   excessive.MaxPermitido,
			},
		})
	}
	var critical *domain.CriticalAdjustmentError
	if errors.As(err, &critical) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "CRITICAL_ADJUSTMENT",
			Message: "ajuste crítico: se requiere justificación",
			Detail: map[string]any{
				"diferencia_porcentaje": critical.DiferenciaPorcentaje,
				"min_justificacion":     critical.MinJustificacion,
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInvalidMovementType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT_TYPE", Message: "tipo de movimiento inválido"})
	case errors.Is(err, domain.ErrStockNegative):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STOCK_NEGATIVE", Message: "el stock no puede quedar negativo"})
	case errors.Is(err, domain.ErrStockUnchanged):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STOCK_UNCHANGED", Message: "el nuevo stock es igual al actual"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado o inactivo"})
	case errors.Is(err, domain.ErrProviderNotFoundOrInactive):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PROVIDER_NOT_FOUND", Message: "proveedor no encontrado o inactivo"})
	case errors.Is(err, domain.ErrReceptionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RECEPTION_NOT_FOUND", Message: "recepción no encontrada"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_INVOICE", Message: "ya existe una recepción con ese número de factura para el proveedor"})
	case errors.Is(err, domain.ErrReceptionNotProcessable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PROCESSABLE", Message: "solo una recepción pendiente puede procesarse"})
	case errors.Is(err, domain.ErrReceptionNotCancellable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CANCELLABLE", Message: "solo una recepción pendiente puede cancelarse"})
	case errors.Is(err, domain.ErrReceptionNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "solo una recepción pendiente puede editarse"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
