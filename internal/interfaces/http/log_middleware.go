package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jcastro/almacen-api/pkg/logger"
)

// LocalRequestID key del request id en c.Locals (también sale por header).
const LocalRequestID = "request_id"

// HeaderRequestID header de respuesta con el request id asignado.
const HeaderRequestID = "X-Request-ID"

// RequestLogger registra cada petición con un request id propio, método,
// ruta, status y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		event := log.Info()
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", elapsed).
			Msg("request")

		return err
	}
}
