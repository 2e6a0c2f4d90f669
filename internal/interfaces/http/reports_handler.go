package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/application/reports"
)

// ReportsHandler maneja las vistas derivadas del inventario (protegido).
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// GetLowStock godoc
// @Summary      Productos con stock en o bajo su mínimo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventario/stock-bajo [get]
func (h *ReportsHandler) GetLowStock(c *fiber.Ctx) error {
	rows, err := h.uc.GetLowStock(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItemDTO{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			Name:        r.Name,
			StockActual: r.StockActual,
			StockMinimo: r.StockMinimo,
			Margen:      r.Margen,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "productos": out})
}

// GetInventoryValue godoc
// @Summary      Valoración del inventario sobre productos activos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventario/valor [get]
func (h *ReportsHandler) GetInventoryValue(c *fiber.Ctx) error {
	row, err := h.uc.GetInventoryValue(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.InventoryValueDTO{
		ProductCount: row.ProductCount,
		ValorCompra:  row.ValorCompra,
		ValorVenta:   row.ValorVenta,
	})
}

// GetMovementStats godoc
// @Summary      Estadísticas de movimientos por tipo y periodo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  true   "RFC3339"
// @Param        hasta   query  string  true   "RFC3339"
// @Param        bucket  query  string  false  "day | week | month (default day)"
// @Success      200  {array}   dto.MovementStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/estadisticas [get]
func (h *ReportsHandler) GetMovementStats(c *fiber.Ctx) error {
	desde, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
	}
	hasta, err := time.Parse(time.RFC3339, c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
	}

	rows, err := h.uc.GetMovementStats(c.Context(), desde, hasta, c.Query("bucket"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovementStatsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementStatsDTO{
			Bucket:        r.Bucket,
			Tipo:          r.Tipo,
			Movimientos:   r.Movimientos,
			CantidadTotal: r.CantidadTotal,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "estadisticas": out})
}
