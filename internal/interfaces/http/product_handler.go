package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/gestor-inventario/internal/application/analytics"
	"github.com/jhoicas/gestor-inventario/internal/application/dto"
	"github.com/jhoicas/gestor-inventario/internal/application/usecase"
	"github.com/jhoicas/gestor-inventario/internal/domain"
	"github.com/jhoicas/gestor-inventario/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	reports *analytics.ReportUseCase
	resp    *Responder
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, reports *analytics.ReportUseCase, resp *Responder) *ProductHandler {
	return &ProductHandler{uc: uc, reports: reports, resp: resp}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusCreated, out, "Producto creado exitosamente")
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Producto obtenido exitosamente")
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite (máx. 100)"  default(10)
// @Param        search     query  string  false  "Texto en nombre o descripción"
// @Param        categoria  query  string  false  "ID de categoría"
// @Param        lowStock   query  bool    false  "Solo stock bajo"
// @Param        activo     query  bool    false  "Filtrar por estado"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	items, page, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.Page(c, items, page, "Productos obtenidos exitosamente")
}

// Update godoc
// @Summary      Actualizar producto
// @Description  El stock no se modifica aquí: se ajusta con movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := h.resp.Bind(c, &in); err != nil {
		return h.resp.Fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, out, "Producto actualizado exitosamente")
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.resp.Fail(c, err)
	}
	return h.resp.OK(c, fiber.StatusOK, nil, "Producto eliminado exitosamente")
}

// Export godoc
// @Summary      Exportar productos (CSV)
// @Tags         products
// @Security     Bearer
// @Produce      text/csv
// @Param        search     query  string  false  "Texto en nombre o descripción"
// @Param        categoria  query  string  false  "ID de categoría"
// @Param        lowStock   query  bool    false  "Solo stock bajo"
// @Param        encoding   query  string  false  "utf-8 | latin1"  default(utf-8)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/products/export [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	var exp dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	if err := c.QueryParser(&exp); err != nil {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	if !validID(in.CategoryID) {
		return h.resp.Fail(c, domain.ErrInvalidInput)
	}
	file, err := h.reports.ExportProducts(c.UserContext(), repository.ProductFilter{
		Search:     strings.TrimSpace(in.Search),
		CategoryID: in.CategoryID,
		LowStock:   in.LowStock,
		Active:     in.Active,
	}, exp)
	if err != nil {
		return h.resp.Fail(c, err)
	}
	return sendFile(c, file)
}

// validID acepta vacío (filtro ausente) o un UUID.
func validID(id string) bool {
	if id == "" {
		return true
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// sendFile responde un archivo generado como descarga.
func sendFile(c *fiber.Ctx, file *dto.ExportFile) error {
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Status(fiber.StatusOK).Send(file.Content)
}
