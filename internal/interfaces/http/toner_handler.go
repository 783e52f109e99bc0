package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/usecase"
)

// TonerHandler trata as requisições HTTP do cadastro de toners (protegido).
type TonerHandler struct {
	uc *usecase.TonerUseCase
}

// NewTonerHandler constrói o handler.
func NewTonerHandler(uc *usecase.TonerUseCase) *TonerHandler {
	return &TonerHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar toner
// @Tags         toners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTonerRequest  true  "Dados do modelo"
// @Success      201   {object}  dto.TonerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/toners [post]
func (h *TonerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTonerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter toner por ID
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do toner"
// @Success      200  {object}  dto.TonerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/toners/{id} [get]
func (h *TonerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "toner não encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar toners
// @Tags         toners
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.TonerListResponse
// @Router       /api/toners [get]
func (h *TonerHandler) List(c *fiber.Ctx) error {
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar toner
// @Description  Recalcula valor_por_folha quando preço ou capacidade mudam.
// @Tags         toners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do toner"
// @Param        body  body  dto.UpdateTonerRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.TonerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/toners/{id} [put]
func (h *TonerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTonerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "toner não encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir toner
// @Description  Recusado com 409 enquanto houver retornados vinculados.
// @Tags         toners
// @Security     Bearer
// @Param        id   path  string  true  "ID do toner"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/toners/{id} [delete]
func (h *TonerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
