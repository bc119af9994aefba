package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/almacen-api/internal/application/dto"
)

// HeaderAPIKey header donde viaja la credencial estática de la API.
const HeaderAPIKey = "X-API-Key"

// APIKeyMiddleware exige la API key estática en cada petición. La comparación
// es de tiempo constante para no filtrar la clave por timing.
func APIKeyMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(HeaderAPIKey)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_API_KEY", Message: "header " + HeaderAPIKey + " requerido"})
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "API key inválida"})
		}
		return c.Next()
	}
}

// IPAllowlistMiddleware restringe el acceso a las IPs listadas. Lista vacía
// significa sin filtro. Las IPs IPv4-mapeadas ("::ffff:1.2.3.4") se normalizan
// antes de comparar.
func IPAllowlistMiddleware(allowed []string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, ip := range allowed {
		set[normalizeIP(ip)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if len(set) == 0 {
			return c.Next()
		}
		if _, ok := set[normalizeIP(c.IP())]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN_IP", Message: "IP no autorizada"})
		}
		return c.Next()
	}
}

func normalizeIP(ip string) string {
	return strings.TrimPrefix(strings.TrimSpace(ip), "::ffff:")
}
