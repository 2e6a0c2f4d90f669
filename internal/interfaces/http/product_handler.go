package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/application/usecase"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// ProductHandler lecturas de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProductDTO(product))
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	products, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "productos": out})
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Activo:       p.Activo,
	}
}
