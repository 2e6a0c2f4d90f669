package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dasava11/santuario-api-sub002/internal/application/dto"
	"github.com/dasava11/santuario-api-sub002/internal/application/reception"
	"github.com/dasava11/santuario-api-sub002/internal/domain/entity"
)

// ReceptionHandler maneja el ciclo de vida de las recepciones (protegido).
type ReceptionHandler struct {
	uc *reception.UseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *reception.UseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recepción de mercancía (estado pendiente)
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceptionRequest  true  "numero_factura, proveedor_id, items"
// @Success      201   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recepciones [post]
func (h *ReceptionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	items := make([]reception.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, reception.ItemInput{
			ProductID:      it.ProductID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}

	detail, err := h.uc.Create(c.Context(), reception.CreateInput{
		NumeroFactura:  in.NumeroFactura,
		ProviderID:     in.ProviderID,
		FechaRecepcion: in.FechaRecepcion,
		Observaciones:  in.Observaciones,
		UserID:         userID,
		Items:          items,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReceptionResponse(detail.Reception, detail.Items))
}

// GetByID godoc
// @Summary      Obtener recepción con sus líneas
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [get]
func (h *ReceptionHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReceptionResponse(detail.Reception, detail.Items))
}

// List godoc
// @Summary      Listar recepciones
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        estado        query  string  false  "pendiente | procesada | cancelada"
// @Param        proveedor_id  query  string  false  "Filtrar por proveedor"
// @Success      200  {array}  dto.ReceptionResponse
// @Router       /api/recepciones [get]
func (h *ReceptionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.List(c.Context(), c.Query("estado"), c.Query("proveedor_id"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ReceptionResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, toReceptionResponse(rec, nil))
	}
	return c.JSON(fiber.Map{"total": len(out), "recepciones": out})
}

// Update godoc
// @Summary      Editar metadatos de una recepción pendiente
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la recepción"
// @Param        body  body  dto.UpdateReceptionRequest  true  "observaciones"
// @Success      200   {object}  dto.ReceptionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [put]
func (h *ReceptionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.UpdateObservaciones(c.Context(), c.Params("id"), in.Observaciones)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReceptionResponse(rec, nil))
}

// Process godoc
// @Summary      Procesar recepción (pendiente → procesada, aplica stock)
// @Description  Aplica una entrada de stock por línea vía el gateway dentro de una
//
//	sola transacción y actualiza el precio de compra de cada producto.
//	Los productos que quedaron inactivos desde la creación se reportan
//	en advertencias sin bloquear el procesamiento.
//
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ProcessReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/procesar [post]
func (h *ReceptionHandler) Process(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	result, err := h.uc.Process(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := dto.ProcessReceptionResponse{
		ID:     result.Reception.ID,
		Estado: result.Reception.Estado,
	}
	if result.Advertencias != nil {
		out.Advertencias = &dto.ReceptionWarnings{ProductosInactivos: result.Advertencias.ProductosInactivos}
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar recepción (pendiente → cancelada, sin efecto en stock)
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.ReceptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/cancelar [post]
func (h *ReceptionHandler) Cancel(c *fiber.Ctx) error {
	rec, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toReceptionResponse(rec, nil))
}

// Voucher godoc
// @Summary      Comprobante PDF de la recepción
// @Tags         recepciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la recepción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/pdf [get]
func (h *ReceptionHandler) Voucher(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.uc.GenerateVoucher(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recepcion-%s.pdf"`, id))
	return c.Send(pdfBytes)
}

func toReceptionResponse(rec *entity.Reception, items []*entity.ReceptionItem) dto.ReceptionResponse {
	out := dto.ReceptionResponse{
		ID:             rec.ID,
		NumeroFactura:  rec.NumeroFactura,
		ProviderID:     rec.ProviderID,
		UserID:         rec.UserID,
		Total:          rec.Total,
		Estado:         rec.Estado,
		Observaciones:  rec.Observaciones,
		FechaRecepcion: rec.FechaRecepcion,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ReceptionItemDTO{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return out
}
