package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
)

// reportInvalidator é o mínimo que os casos de uso de escrita precisam do relatório em cache.
type reportInvalidator interface {
	Invalidar(ctx context.Context)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidar(context.Context) {}

// TonerUseCase casos de uso CRUD para modelos de toner.
// ValorPorFolha é sempre derivado de Preco / Capacidade.
type TonerUseCase struct {
	repo          repository.TonerRepository
	retornadoRepo repository.RetornadoRepository
	report        reportInvalidator
}

// NewTonerUseCase constrói o caso de uso. report pode ser nil.
func NewTonerUseCase(repo repository.TonerRepository, retornadoRepo repository.RetornadoRepository, report reportInvalidator) *TonerUseCase {
	if report == nil {
		report = nopInvalidator{}
	}
	return &TonerUseCase{repo: repo, retornadoRepo: retornadoRepo, report: report}
}

// Create cadastra um novo modelo. Modelo é único.
func (uc *TonerUseCase) Create(ctx context.Context, in dto.CreateTonerRequest) (*dto.TonerResponse, error) {
	modelo := strings.TrimSpace(in.Modelo)
	if modelo == "" || in.Capacidade <= 0 || in.Gramatura <= 0 || in.PesoVazio <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Preco.IsNegative() {
		return nil, fmt.Errorf("%w: preço negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByModelo(ctx, modelo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	toner := &entity.Toner{
		ID:         uuid.New().String(),
		Modelo:     modelo,
		Cor:        strings.TrimSpace(in.Cor),
		PesoVazio:  in.PesoVazio,
		Gramatura:  in.Gramatura,
		Capacidade: in.Capacidade,
		Preco:      in.Preco,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	toner.RecalcularValorPorFolha()
	if err := uc.repo.Create(ctx, toner); err != nil {
		return nil, err
	}
	return toTonerResponse(toner), nil
}

// GetByID obtém um toner por ID. Devolve nil, nil se não existir.
func (uc *TonerUseCase) GetByID(ctx context.Context, id string) (*dto.TonerResponse, error) {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTonerResponse(toner), nil
}

// Update atualiza um toner e recalcula ValorPorFolha quando preço ou capacidade mudam.
func (uc *TonerUseCase) Update(ctx context.Context, id string, in dto.UpdateTonerRequest) (*dto.TonerResponse, error) {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if toner == nil {
		return nil, nil
	}
	if in.Modelo != nil {
		modelo := strings.TrimSpace(*in.Modelo)
		if modelo == "" {
			return nil, domain.ErrInvalidInput
		}
		if modelo != toner.Modelo {
			other, err := uc.repo.GetByModelo(ctx, modelo)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != toner.ID {
				return nil, domain.ErrDuplicate
			}
		}
		toner.Modelo = modelo
	}
	if in.Cor != nil {
		toner.Cor = strings.TrimSpace(*in.Cor)
	}
	if in.PesoVazio != nil {
		if *in.PesoVazio <= 0 {
			return nil, domain.ErrInvalidInput
		}
		toner.PesoVazio = *in.PesoVazio
	}
	if in.Gramatura != nil {
		if *in.Gramatura <= 0 {
			return nil, domain.ErrInvalidInput
		}
		toner.Gramatura = *in.Gramatura
	}
	if in.Capacidade != nil {
		if *in.Capacidade <= 0 {
			return nil, domain.ErrInvalidInput
		}
		toner.Capacidade = *in.Capacidade
	}
	if in.Preco != nil {
		if in.Preco.IsNegative() {
			return nil, fmt.Errorf("%w: preço negativo", domain.ErrInvalidInput)
		}
		toner.Preco = *in.Preco
	}
	toner.RecalcularValorPorFolha()
	toner.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, toner); err != nil {
		return nil, err
	}
	// valores derivados na leitura dependem dos atributos do toner
	uc.report.Invalidar(ctx)
	return toTonerResponse(toner), nil
}

// List lista toners com paginação.
func (uc *TonerUseCase) List(ctx context.Context, limit, offset int) (*dto.TonerListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TonerResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTonerResponse(t))
	}
	return &dto.TonerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete exclui um toner. Bloqueado enquanto houver retornados vinculados:
// a checagem é explícita porque o erro de FK do banco não chega legível ao usuário.
func (uc *TonerUseCase) Delete(ctx context.Context, id string) error {
	toner, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if toner == nil {
		return domain.ErrNotFound
	}
	n, err := uc.retornadoRepo.CountByToner(ctx, id)
	if err != nil {
		return fmt.Errorf("verificar retornados do toner: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w (%d retornados)", domain.ErrTonerInUse, n)
	}
	return uc.repo.Delete(ctx, id)
}

func toTonerResponse(t *entity.Toner) *dto.TonerResponse {
	if t == nil {
		return nil
	}
	return &dto.TonerResponse{
		ID:            t.ID,
		Modelo:        t.Modelo,
		Cor:           t.Cor,
		PesoVazio:     t.PesoVazio,
		Gramatura:     t.Gramatura,
		Capacidade:    t.Capacidade,
		Preco:         t.Preco.Round(2),
		ValorPorFolha: t.ValorPorFolha,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

