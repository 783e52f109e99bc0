package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/dto"
)

// HeaderAPIKey header lido pelo gate do endpoint de BI.
const HeaderAPIKey = "X-API-Key"

// RequireAPIKey protege o endpoint de BI por chave compartilhada.
// Comparação em tempo constante; chave configurada vazia recusa tudo.
// A resposta de recusa mantém o envelope do relatório com lista vazia.
func RequireAPIKey(expected string) fiber.Handler {
	want := []byte(expected)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(HeaderAPIKey))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.RelatorioResponse{
				Success: false,
				Error:   "chave de API ausente ou inválida",
				Data:    []dto.RelatorioRetornadoItem{},
			})
		}
		return c.Next()
	}
}
