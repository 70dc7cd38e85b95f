package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/roi-admin-api/internal/application/dto"
	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// CatalogHandler CRUD HTTP de un catálogo de referencia (marcas, categorías, unidades, tipos de estado).
type CatalogHandler struct {
	uc   *usecase.CatalogUseCase
	kind entity.CatalogKind
}

// NewCatalogHandler construye el handler para el catálogo kind.
func NewCatalogHandler(uc *usecase.CatalogUseCase, kind entity.CatalogKind) *CatalogHandler {
	return &CatalogHandler{uc: uc, kind: kind}
}

// List godoc
// @Summary      Listar catálogo
// @Description  Rutas: /api/brands, /api/categories, /api/units-of-measure, /api/status-types. Ordenado por nombre.
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogItemResponse
// @Router       /api/brands [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener elemento de catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.CatalogItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), h.kind, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear elemento de catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogItemRequest  true  "name, description (symbol para unidades)"
// @Success      201   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar elemento de catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID"
// @Param        body  body  dto.CatalogItemRequest  true  "name, description (symbol para unidades)"
// @Success      200   {object}  dto.CatalogItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), h.kind, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar elemento de catálogo
// @Description  409 si algún producto lo referencia.
// @Tags         catalogs
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), h.kind, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
