package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
)

// RetornadoHandler trata as requisições HTTP de retornados (protegido).
type RetornadoHandler struct {
	uc *usecase.RetornadoUseCase
}

// NewRetornadoHandler constrói o handler.
func NewRetornadoHandler(uc *usecase.RetornadoUseCase) *RetornadoHandler {
	return &RetornadoHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar retornado
// @Description  Sem valor_recuperado e com destino de estoque, o valor é calculado antes de gravar.
// @Tags         retornados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRetornadoRequest  true  "Dados do retornado"
// @Success      201   {object}  dto.RetornadoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/retornados [post]
func (h *RetornadoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRetornadoRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	if in.Filial == "" {
		in.Filial = GetFilial(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter retornado por ID
// @Tags         retornados
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do retornado"
// @Success      200  {object}  dto.RetornadoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/retornados/{id} [get]
func (h *RetornadoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "retornado não encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar retornados (página)
// @Tags         retornados
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.RetornadoListResponse
// @Router       /api/retornados [get]
func (h *RetornadoHandler) List(c *fiber.Ctx) error {
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Todos devolve o conjunto completo enriquecido (grid sem paginação).
// Falha na busca responde 503 sem dados parciais.
func (h *RetornadoHandler) Todos(c *fiber.Ctx) error {
	out, err := h.uc.Todos(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Update godoc
// @Summary      Atualizar retornado
// @Tags         retornados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do retornado"
// @Param        body  body  dto.UpdateRetornadoRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.RetornadoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/retornados/{id} [put]
func (h *RetornadoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRetornadoRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "retornado não encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir retornado
// @Tags         retornados
// @Security     Bearer
// @Param        id   path  string  true  "ID do retornado"
// @Success      204
// @Router       /api/retornados/{id} [delete]
func (h *RetornadoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
