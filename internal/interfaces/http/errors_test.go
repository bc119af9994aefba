package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/almacen-api/internal/domain"
)

// respondWith monta una ruta que siempre falla con err y devuelve la respuesta.
func respondWith(t *testing.T, err error) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, reqErr)
	return resp
}

func TestRespondError_Mapeos(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"validación", domain.NewValidation("la cantidad debe ser mayor que 0"), http.StatusBadRequest, "VALIDATION"},
		{"generación de código", domain.ErrCodeGeneration, http.StatusConflict, "CODE_GENERATION"},
		{"interno", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := respondWith(t, tc.err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.wantCode)
		})
	}
}

func TestRespondError_StockInsuficiente_IncluyeDisponible(t *testing.T) {
	resp := respondWith(t, &domain.InsufficientStockError{Available: 7})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.Contains(t, string(body), "7", "el mensaje debe llevar el stock disponible")
}
