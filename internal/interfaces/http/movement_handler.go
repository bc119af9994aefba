package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/almacen-api/internal/application/dto"
	"github.com/jcastro/almacen-api/internal/application/inventory"
	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del diario de movimientos.
// Un handler por tipo: el router registra uno para entradas y otro para
// salidas, compartiendo el mismo caso de uso.
type MovementHandler struct {
	uc   *inventory.JournalUseCase
	kind entity.MovementKind
}

// NewMovementHandler construye el handler para el tipo dado.
func NewMovementHandler(uc *inventory.JournalUseCase, kind entity.MovementKind) *MovementHandler {
	return &MovementHandler{uc: uc, kind: kind}
}

// Post registra un movimiento y devuelve la fila con el stock resultante.
func (h *MovementHandler) Post(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var (
		out *dto.MovementResponse
		err error
	)
	if h.kind == entity.KindOutbound {
		out, err = h.uc.PostOutbound(c.UserContext(), in)
	} else {
		out, err = h.uc.PostInbound(c.UserContext(), in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un movimiento con los datos de su item.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(h.kind, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List listado paginado con búsqueda y ventana mensual o anual.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, domain.NewValidation("query de listado inválida"))
	}
	out, err := h.uc.List(h.kind, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición de una entrada. Solo se registra para el handler de entradas.
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateInboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateInbound(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete borra una entrada revirtiendo su efecto sobre el stock.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteInbound(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary resumen mensual: conteo, suma y top de items.
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	month, year, err := monthYearParams(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(h.kind, month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// monthYearParams parsea los parámetros de ruta :month y :year.
func monthYearParams(c *fiber.Ctx) (int, int, error) {
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return 0, 0, domain.NewValidation("mes inválido")
	}
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return 0, 0, domain.NewValidation("año inválido")
	}
	return month, year, nil
}
