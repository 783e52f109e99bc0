package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/analytics"
)

// DashboardHandler expõe os indicadores do dashboard de retornados.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Retornados godoc
// @Summary      Dashboard de retornados
// @Description  Totais, valor por destino, por mês (últimos 12), por filial e ranking de modelos.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardRetornadosDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/retornados [get]
func (h *DashboardHandler) Retornados(c *fiber.Ctx) error {
	out, err := h.uc.GetRetornados(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
