package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/application/usecase"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// ProviderHandler lecturas de proveedores (protegido).
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProviderDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	provider, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toProviderDTO(provider))
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProviderDTO
// @Router       /api/proveedores [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	providers, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ProviderDTO, 0, len(providers))
	for _, p := range providers {
		out = append(out, toProviderDTO(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "proveedores": out})
}

func toProviderDTO(p *entity.Provider) dto.ProviderDTO {
	return dto.ProviderDTO{
		ID:     p.ID,
		Name:   p.Name,
		NIT:    p.NIT,
		Email:  p.Email,
		Phone:  p.Phone,
		Activo: p.Activo,
	}
}
