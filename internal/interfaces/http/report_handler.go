package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/almacen-api/internal/application/report"
)

// ReportHandler maneja la descarga de reportes PDF.
type ReportHandler struct {
	uc *report.MonthlyReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.MonthlyReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Monthly genera el reporte mensual de inventario y lo devuelve como
// descarga PDF.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	month, year, err := monthYearParams(c)
	if err != nil {
		return respondError(c, err)
	}
	out, filename, err := h.uc.GeneratePDF(c.UserContext(), month, year)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
