package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultFetchTimeout prazo das rotas que drenam a tabela inteira; fica abaixo do WriteTimeout do servidor.
const DefaultFetchTimeout = 50 * time.Second

// RequestDeadline põe um prazo no contexto do usuário da requisição. O fasthttp não cancela o
// contexto quando o cliente desiste, então sem isso a busca paginada seguiria até o fim.
func RequestDeadline(d time.Duration) fiber.Handler {
	if d <= 0 {
		d = DefaultFetchTimeout
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
