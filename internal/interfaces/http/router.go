package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/almacen-api/internal/application/inventory"
	"github.com/jcastro/almacen-api/internal/application/report"
	"github.com/jcastro/almacen-api/internal/application/usecase"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC    *usecase.ItemUseCase
	JournalUC *inventory.JournalUseCase
	ReportUC  *report.MonthlyReportUseCase
	Auth      config.AuthConfig
}

// Router registra las rutas de la API. Todo /api va detrás de la API key y,
// si está configurada, de la lista de IPs permitidas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api",
		IPAllowlistMiddleware(deps.Auth.AllowedIPs),
		APIKeyMiddleware(deps.Auth.APIKey),
	)

	// Items. Las rutas fijas van antes de /:id para que no las capture.
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/summary", itemHandler.Summary)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/over-stock", itemHandler.ListOverStock)
	items.Get("/deleted", itemHandler.ListDeleted)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Patch("/:id/stock", itemHandler.UpdateStock)
	items.Delete("/:id", itemHandler.Delete)

	// Entradas: el único tipo editable y borrable.
	inbound := api.Group("/inbound")
	inboundHandler := NewMovementHandler(deps.JournalUC, entity.KindInbound)
	inbound.Get("/summary/:month/:year", inboundHandler.Summary)
	inbound.Get("/", inboundHandler.List)
	inbound.Post("/", inboundHandler.Post)
	inbound.Get("/:id", inboundHandler.GetByID)
	inbound.Put("/:id", inboundHandler.Update)
	inbound.Delete("/:id", inboundHandler.Delete)

	// Salidas: registro y consulta, sin edición.
	outbound := api.Group("/outbound")
	outboundHandler := NewMovementHandler(deps.JournalUC, entity.KindOutbound)
	outbound.Get("/summary/:month/:year", outboundHandler.Summary)
	outbound.Get("/", outboundHandler.List)
	outbound.Post("/", outboundHandler.Post)
	outbound.Get("/:id", outboundHandler.GetByID)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/monthly/:month/:year", reportHandler.Monthly)
}
