package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/application/inventory"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
	"github.com/dasava11/santuario-api-sub002/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y ajustes (protegido).
type InventoryHandler struct {
	gateway *inventory.ApplyMovementUseCase
	adjust  *inventory.AdjustStockUseCase
	movRepo repository.StockMovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(gateway *inventory.ApplyMovementUseCase, adjust *inventory.AdjustStockUseCase, movRepo repository.StockMovementRepository) *InventoryHandler {
	return &InventoryHandler{gateway: gateway, adjust: adjust, movRepo: movRepo}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "producto_id, tipo_movimiento (entrada|salida|ajuste), cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.gateway.ApplyMovement(c.Context(), inventory.ApplyMovementInput{
		ProductID:     in.ProductID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		UserID:        userID,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		MovementID:    res.MovementID,
		ProductID:     in.ProductID,
		StockAnterior: res.StockAnterior,
		StockNuevo:    res.StockNuevo,
	})
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto a un valor absoluto
// @Description  Valida el guardrail (rango, tope relativo, justificación en cambios
//
//	críticos) y registra el ajuste en el ledger vía el gateway.
//
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "producto_id, nuevo_stock, observaciones"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.adjust.AdjustStock(c.Context(), inventory.AdjustStockInput{
		ProductID:     in.ProductID,
		NuevoStock:    in.NuevoStock,
		Observaciones: in.Observaciones,
		UserID:        userID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AdjustmentResponse{
		ProductID:            in.ProductID,
		StockAnterior:        res.StockAnterior,
		StockNuevo:           res.StockNuevo,
		Diferencia:           res.Diferencia,
		DiferenciaPorcentaje: res.DiferenciaPorcentaje,
		TipoAjuste:           res.TipoAjuste,
		AlertaStockBajo:      res.AlertaStockBajo,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        productoId  path   string  true   "ID del producto"
// @Param        desde       query  string  false  "RFC3339"
// @Param        hasta       query  string  false  "RFC3339"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{productoId} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("productoId")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
	}

	movements, err := h.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}

	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:              m.ID,
		ProductID:       m.ProductID,
		TipoMovimiento:  m.TipoMovimiento,
		Cantidad:        m.Cantidad,
		StockAnterior:   m.StockAnterior,
		StockNuevo:      m.StockNuevo,
		ReferenciaID:    m.ReferenciaID,
		ReferenciaTipo:  m.ReferenciaTipo,
		UserID:          m.UserID,
		Observaciones:   m.Observaciones,
		FechaMovimiento: m.FechaMovimiento,
	}
}

func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
