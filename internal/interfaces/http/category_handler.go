package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/application/usecase"
)

// CategoryHandler maneja las peticiones HTTP para categorías. Las mutaciones requieren rol admin.
type CategoryHandler struct {
	uc   *usecase.CategoryUseCase
	resp *Responder
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, resp *Responder) *CategoryHandler {
	return &CategoryHandler{uc: uc, resp: resp}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Categorías obtenidas exitosamente")
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.APIResponse{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Categoría obtenida exitosamente")
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.APIResponse{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusCreated, out, "Categoría creada exitosamente")
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Categoría actualizada exitosamente")
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Falla con 409 si la categoría tiene productos.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, nil, "Categoría eliminada exitosamente")
}
