package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
)

var _ repository.RetornadoRepository = (*RetornadoRepo)(nil)

// Colunas da consulta com join; a ordem acompanha scanRetornadoComToner.
const retornadoJoinSelect = `
	SELECT r.id, r.cliente_id, r.toner_id, r.peso, r.destino_final, r.valor_recuperado,
		r.filial, r.observacao, r.data_registro, r.created_at, r.updated_at,
		t.id, t.modelo, t.cor, t.peso_vazio, t.gramatura, t.capacidade, t.preco, t.valor_por_folha,
		t.created_at, t.updated_at
	FROM retornados r
	INNER JOIN toners t ON t.id = r.toner_id`

// colunas liberadas para ORDER BY (nunca interpolar entrada do cliente)
var sortColumns = map[string]string{
	repository.SortDataRegistro: "r.data_registro",
	repository.SortCreatedAt:    "r.created_at",
}

// RetornadoRepo implementação do porto RetornadoRepository sobre PostgreSQL (pool ou tx).
type RetornadoRepo struct {
	q Querier
}

// NewRetornadoRepository constrói o adaptador de persistência para retornados.
func NewRetornadoRepository(q Querier) *RetornadoRepo {
	return &RetornadoRepo{q: q}
}

// FetchPage devolve uma janela LIMIT/OFFSET do join retornados x toners.
// Retornados sem toner correspondente não aparecem (INNER JOIN).
// O desempate por id deixa a ordem total e estável entre páginas.
func (r *RetornadoRepo) FetchPage(ctx context.Context, q repository.PageQuery) ([]entity.RetornadoComToner, error) {
	if q.Limit <= 0 || q.Offset < 0 {
		return nil, fmt.Errorf("%w: janela limit=%d offset=%d", domain.ErrInvalidInput, q.Limit, q.Offset)
	}
	col, ok := sortColumns[q.SortKey]
	if !ok {
		col = sortColumns[repository.SortDataRegistro]
	}
	dir := repository.SortDesc
	if q.SortDir == repository.SortAsc {
		dir = repository.SortAsc
	}
	query := retornadoJoinSelect +
		fmt.Sprintf(" ORDER BY %s %s, r.id %s LIMIT $1 OFFSET $2", col, dir, dir)

	rows, err := r.q.Query(ctx, query, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("fetch retornados page: %w", err)
	}
	defer rows.Close()

	list := make([]entity.RetornadoComToner, 0, q.Limit)
	for rows.Next() {
		row, err := scanRetornadoComToner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan retornado: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch retornados page: %w", err)
	}
	return list, nil
}

// Create persiste um retornado já com o valor resolvido (ou NULL).
func (r *RetornadoRepo) Create(ctx context.Context, ret *entity.Retornado) error {
	query := `
		INSERT INTO retornados (id, cliente_id, toner_id, peso, destino_final, valor_recuperado,
			filial, observacao, data_registro, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.ClienteID, ret.TonerID, ret.Peso, ret.Destino, ret.ValorRecuperado,
		ret.Filial, ret.Observacao, ret.DataRegistro, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: toner %s", domain.ErrNotFound, ret.TonerID)
		}
		return fmt.Errorf("insert retornado: %w", err)
	}
	return nil
}

// GetByID obtém um retornado com seu toner.
func (r *RetornadoRepo) GetByID(ctx context.Context, id string) (*entity.RetornadoComToner, error) {
	if !validID(id) {
		return nil, nil
	}
	row, err := scanRetornadoComToner(r.q.QueryRow(ctx, retornadoJoinSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get retornado: %w", err)
	}
	return &row, nil
}

// Update atualiza um retornado.
func (r *RetornadoRepo) Update(ctx context.Context, ret *entity.Retornado) error {
	if !validID(ret.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE retornados SET cliente_id = $2, toner_id = $3, peso = $4, destino_final = $5,
			valor_recuperado = $6, filial = $7, observacao = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		ret.ID, ret.ClienteID, ret.TonerID, ret.Peso, ret.Destino, ret.ValorRecuperado,
		ret.Filial, ret.Observacao, ret.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: toner %s", domain.ErrNotFound, ret.TonerID)
		}
		return fmt.Errorf("update retornado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete exclui um retornado por ID.
func (r *RetornadoRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM retornados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete retornado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByToner conta retornados que referenciam o toner.
func (r *RetornadoRepo) CountByToner(ctx context.Context, tonerID string) (int, error) {
	if !validID(tonerID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM retornados WHERE toner_id = $1`, tonerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count retornados by toner: %w", err)
	}
	return n, nil
}

func scanRetornadoComToner(row pgx.Row) (entity.RetornadoComToner, error) {
	var out entity.RetornadoComToner
	rt, t := &out.Retornado, &out.Toner
	err := row.Scan(
		&rt.ID, &rt.ClienteID, &rt.TonerID, &rt.Peso, &rt.Destino, &rt.ValorRecuperado,
		&rt.Filial, &rt.Observacao, &rt.DataRegistro, &rt.CreatedAt, &rt.UpdatedAt,
		&t.ID, &t.Modelo, &t.Cor, &t.PesoVazio, &t.Gramatura, &t.Capacidade, &t.Preco, &t.ValorPorFolha,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return out, err
}
