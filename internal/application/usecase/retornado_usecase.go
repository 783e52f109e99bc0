package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
	"github.com/sgqpro/sgq-api/internal/domain/retornado"
)

// RetornadoUseCase casos de uso de retornados.
// Na escrita, sem valor informado e com destino estocável, a calculadora roda antes de gravar:
// o banco não deriva nada.
type RetornadoUseCase struct {
	repo      repository.RetornadoRepository
	tonerRepo repository.TonerRepository
	todos     retornados.RegistrosSource
	report    reportInvalidator
	log       zerolog.Logger
}

// NewRetornadoUseCase constrói o caso de uso. report pode ser nil.
func NewRetornadoUseCase(
	repo repository.RetornadoRepository,
	tonerRepo repository.TonerRepository,
	todos retornados.RegistrosSource,
	report reportInvalidator,
	log zerolog.Logger,
) *RetornadoUseCase {
	if report == nil {
		report = nopInvalidator{}
	}
	return &RetornadoUseCase{repo: repo, tonerRepo: tonerRepo, todos: todos, report: report, log: log}
}

// Create registra um retornado resolvendo o valor recuperado antes da gravação.
func (uc *RetornadoUseCase) Create(ctx context.Context, in dto.CreateRetornadoRequest) (*dto.RetornadoResponse, error) {
	destino, ok := retornado.ParseDestino(in.Destino)
	if !ok {
		return nil, fmt.Errorf("%w: destino %q desconhecido", domain.ErrInvalidInput, in.Destino)
	}
	if in.Peso < 0 || (in.ValorRecuperado != nil && *in.ValorRecuperado < 0) {
		return nil, domain.ErrInvalidInput
	}
	toner, err := uc.tonerRepo.GetByID(ctx, in.TonerID)
	if err != nil {
		return nil, err
	}
	if toner == nil {
		return nil, fmt.Errorf("%w: toner %s", domain.ErrNotFound, in.TonerID)
	}

	now := time.Now()
	r := &entity.Retornado{
		ID:              uuid.New().String(),
		ClienteID:       strings.TrimSpace(in.ClienteID),
		TonerID:         toner.ID,
		Peso:            in.Peso,
		Destino:         string(destino),
		ValorRecuperado: in.ValorRecuperado,
		Filial:          strings.TrimSpace(in.Filial),
		Observacao:      in.Observacao,
		DataRegistro:    now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.DataRegistro != nil && !in.DataRegistro.IsZero() {
		r.DataRegistro = *in.DataRegistro
	}
	uc.resolverNaEscrita(r, toner)

	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.report.Invalidar(ctx)
	return uc.responder(entity.RetornadoComToner{Retornado: *r, Toner: *toner}), nil
}

// GetByID obtém um retornado enriquecido. Devolve nil, nil se não existir.
func (uc *RetornadoUseCase) GetByID(ctx context.Context, id string) (*dto.RetornadoResponse, error) {
	row, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return uc.responder(*row), nil
}

// List lista uma página de retornados (mais recentes primeiro) já enriquecidos.
func (uc *RetornadoUseCase) List(ctx context.Context, limit, offset int) (*dto.RetornadoListResponse, error) {
	rows, err := uc.repo.FetchPage(ctx, repository.PageQuery{
		Limit:   limit,
		Offset:  offset,
		SortKey: repository.SortDataRegistro,
		SortDir: repository.SortDesc,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RetornadoResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, *uc.responder(row))
	}
	return &dto.RetornadoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Todos devolve o conjunto completo via busca exaustiva (grid sem paginação e exportação).
func (uc *RetornadoUseCase) Todos(ctx context.Context) ([]dto.RetornadoResponse, error) {
	regs, err := uc.todos.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RetornadoResponse, 0, len(regs))
	for i := range regs {
		out = append(out, toRetornadoResponse(regs[i]))
	}
	return out, nil
}

// Update atualiza um retornado. Valor informado é gravado como veio. Sem valor informado, uma
// mudança de peso, destino ou toner só descarta e resolve de novo o valor quando ele era calculado
// (destino anterior estocável) ou passa a ser (novo destino estocável); valor manual de garantia
// e afins é mantido.
func (uc *RetornadoUseCase) Update(ctx context.Context, id string, in dto.UpdateRetornadoRequest) (*dto.RetornadoResponse, error) {
	row, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	r, toner := row.Retornado, row.Toner
	mudouBase := false
	calculadoAntes := estocavel(r.Destino)

	if in.ClienteID != nil {
		r.ClienteID = strings.TrimSpace(*in.ClienteID)
	}
	if in.TonerID != nil && *in.TonerID != r.TonerID {
		t, err := uc.tonerRepo.GetByID(ctx, *in.TonerID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("%w: toner %s", domain.ErrNotFound, *in.TonerID)
		}
		r.TonerID, toner = t.ID, *t
		mudouBase = true
	}
	if in.Peso != nil {
		if *in.Peso < 0 {
			return nil, domain.ErrInvalidInput
		}
		mudouBase = mudouBase || *in.Peso != r.Peso
		r.Peso = *in.Peso
	}
	if in.Destino != nil {
		d, ok := retornado.ParseDestino(*in.Destino)
		if !ok {
			return nil, fmt.Errorf("%w: destino %q desconhecido", domain.ErrInvalidInput, *in.Destino)
		}
		mudouBase = mudouBase || string(d) != r.Destino
		r.Destino = string(d)
	}
	if in.Filial != nil {
		r.Filial = strings.TrimSpace(*in.Filial)
	}
	if in.Observacao != nil {
		r.Observacao = *in.Observacao
	}

	switch {
	case in.ValorRecuperado != nil:
		if *in.ValorRecuperado < 0 {
			return nil, domain.ErrInvalidInput
		}
		v := *in.ValorRecuperado
		r.ValorRecuperado = &v
	case mudouBase && (calculadoAntes || estocavel(r.Destino)):
		r.ValorRecuperado = nil
		uc.resolverNaEscrita(&r, &toner)
	}
	r.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, &r); err != nil {
		return nil, err
	}
	uc.report.Invalidar(ctx)
	return uc.responder(entity.RetornadoComToner{Retornado: r, Toner: toner}), nil
}

func estocavel(destino string) bool {
	d, ok := retornado.ParseDestino(destino)
	return ok && d.Estocavel()
}

// Delete exclui um retornado (ação do operador; nada depende dele).
func (uc *RetornadoUseCase) Delete(ctx context.Context, id string) error {
	row, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.report.Invalidar(ctx)
	return nil
}

// resolverNaEscrita preenche ValorRecuperado quando ausente e o destino permite.
// Não calculável fica nil (NULL no banco).
func (uc *RetornadoUseCase) resolverNaEscrita(r *entity.Retornado, t *entity.Toner) {
	res := retornado.Resolver(*r, *t)
	retornados.RegistrarQualidade(uc.log, *r, *t, res)
	r.ValorRecuperado = res.Valor
}

func (uc *RetornadoUseCase) responder(row entity.RetornadoComToner) *dto.RetornadoResponse {
	reg, _ := retornados.Enriquecer(row)
	out := toRetornadoResponse(reg)
	return &out
}

func toRetornadoResponse(r retornados.RegistroEnriquecido) dto.RetornadoResponse {
	return dto.RetornadoResponse{
		ID:              r.ID,
		ClienteID:       r.ClienteID,
		TonerID:         r.TonerID,
		Modelo:          r.Modelo,
		Cor:             r.Cor,
		Peso:            r.Peso,
		PesoVazio:       r.PesoVazio,
		Gramatura:       r.Gramatura,
		Capacidade:      r.Capacidade,
		ValorPorFolha:   r.ValorPorFolha,
		Destino:         r.Destino,
		ValorRecuperado: retornados.ArredondarPtr(r.ValorRecuperado),
		Calculado:       r.Calculado,
		Filial:          r.Filial,
		Observacao:      r.Observacao,
		DataRegistro:    r.DataRegistro,
	}
}
