package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/almacen-api/internal/application/dto"
	"github.com/jcastro/almacen-api/internal/application/usecase"
	"github.com/jcastro/almacen-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP del catálogo de items.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create alta de item. Si se pidió una entrada inicial y su registro falló,
// la respuesta llega igual con 201 y sin el bloque inbound.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un item no borrado.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List listado paginado de items activos, con búsqueda opcional.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page, search, err := listQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(page, search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDeleted listado paginado de items borrados (papelera).
func (h *ItemHandler) ListDeleted(c *fiber.Ctx) error {
	page, search, err := listQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListDeleted(page, search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición parcial de un item.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStock edición administrativa directa del stock, sin movimiento.
func (h *ItemHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStock(id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete borrado lógico. El item desaparece de listados y movimientos pero
// su historial queda.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SoftDelete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListLowStock items en estado LOW o EMPTY, stock ascendente.
func (h *ItemHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// ListOverStock items en estado HIGH, stock descendente.
func (h *ItemHandler) ListOverStock(c *fiber.Ctx) error {
	out, err := h.uc.ListOverStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Summary conteos globales del inventario activo.
func (h *ItemHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// listQuery parsea paginación y búsqueda de la query string.
func listQuery(c *fiber.Ctx) (dto.PageRequest, string, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, "", domain.NewValidation("query de paginación inválida")
	}
	page.DefaultPage()
	return page, c.Query("search"), nil
}
