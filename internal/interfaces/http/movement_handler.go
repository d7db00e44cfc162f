package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/application/inventory"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// MovementHandler maneja entradas y salidas de inventario. Crear, editar y eliminar ajustan el stock.
type MovementHandler struct {
	uc      *inventory.MovementUseCase
	reports *analytics.ReportUseCase
	resp    *Responder
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, reports *analytics.ReportUseCase, resp *Responder) *MovementHandler {
	return &MovementHandler{uc: uc, reports: reports, resp: resp}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Una salida mayor al stock disponible se rechaza con 400. Sin responsable se usa el usuario autenticado.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.APIResponse{data=dto.MovementResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, GetUserName(c))
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusCreated, out, "Movimiento registrado exitosamente")
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.APIResponse{data=dto.MovementResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Movimiento obtenido exitosamente")
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite (máx. 100)"  default(10)
// @Param        productoId  query  string  false  "ID del producto"
// @Param        tipo        query  string  false  "entrada | salida"
// @Success      200  {object}  dto.APIResponse{data=[]dto.MovementResponse}
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	items, page, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.Page(c, items, page, "Movimientos obtenidos exitosamente")
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Revierte el efecto original y aplica el nuevo. Si no alcanza el stock, no cambia nada.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.MovementResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Movimiento actualizado exitosamente")
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Revierte su efecto sobre el stock del producto.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.APIResponse
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, nil, "Movimiento eliminado exitosamente")
}

// Export godoc
// @Summary      Exportar movimientos (CSV)
// @Tags         movements
// @Security     Bearer
// @Produce      text/csv
// @Param        productoId  query  string  false  "ID del producto"
// @Param        tipo        query  string  false  "entrada | salida"
// @Param        encoding    query  string  false  "utf-8 | latin1"  default(utf-8)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	var exp dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	if err := c.QueryParser(&exp); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	if !validID(in.ProductID) {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	file, err := h.reports.ExportMovements(c.UserContext(), repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
	}, exp)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return sendFile(c, file)
}
