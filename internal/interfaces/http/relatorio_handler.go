package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/domain"
)

// RelatorioHandler expõe o relatório de retornados para a ferramenta de BI.
type RelatorioHandler struct {
	uc *retornados.RelatorioUseCase
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *retornados.RelatorioUseCase) *RelatorioHandler {
	return &RelatorioHandler{uc: uc}
}

// Retornados godoc
// @Summary      Relatório de retornados para BI
// @Description  Conjunto completo com valor recuperado resolvido. Nunca devolve dados parciais.
// @Tags         relatorios
// @Security     ApiKey
// @Produce      json
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD"
// @Param        destino      query  string  false  "Destino final"
// @Param        filial       query  string  false  "Filial"
// @Success      200  {object}  dto.RelatorioResponse
// @Failure      401  {object}  dto.RelatorioResponse
// @Failure      503  {object}  dto.RelatorioResponse
// @Router       /api/v1/relatorios/retornados [get]
func (h *RelatorioHandler) Retornados(c *fiber.Ctx) error {
	var filtro dto.RelatorioFiltro
	if err := c.QueryParser(&filtro); err != nil {
		return relatorioErro(c, fiber.StatusBadRequest, "parâmetros inválidos")
	}
	itens, err := h.uc.Gerar(c.UserContext(), filtro)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return relatorioErro(c, fiber.StatusBadRequest, err.Error())
		}
		return relatorioErro(c, fiber.StatusServiceUnavailable, "não foi possível obter o conjunto completo de retornados")
	}
	return c.JSON(dto.RelatorioResponse{Success: true, Total: len(itens), Data: itens})
}

func relatorioErro(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.RelatorioResponse{
		Success: false,
		Error:   msg,
		Data:    []dto.RelatorioRetornadoItem{},
	})
}
