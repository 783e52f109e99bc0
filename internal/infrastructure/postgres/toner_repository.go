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

var _ repository.TonerRepository = (*TonerRepo)(nil)

const tonerColumns = `id, modelo, cor, peso_vazio, gramatura, capacidade, preco, valor_por_folha, created_at, updated_at`

// TonerRepo implementação do porto TonerRepository sobre PostgreSQL (pool ou tx).
type TonerRepo struct {
	q Querier
}

// NewTonerRepository constrói o adaptador de persistência para toners.
func NewTonerRepository(q Querier) *TonerRepo {
	return &TonerRepo{q: q}
}

// Create persiste um novo modelo.
func (r *TonerRepo) Create(ctx context.Context, t *entity.Toner) error {
	query := `
		INSERT INTO toners (` + tonerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Modelo, t.Cor, t.PesoVazio, t.Gramatura, t.Capacidade, t.Preco, t.ValorPorFolha,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert toner: %w", err)
	}
	return nil
}

// GetByID obtém um toner por ID.
func (r *TonerRepo) GetByID(ctx context.Context, id string) (*entity.Toner, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+tonerColumns+` FROM toners WHERE id = $1`, id)
}

// GetByModelo obtém um toner pelo modelo (único, sem diferenciar maiúsculas).
func (r *TonerRepo) GetByModelo(ctx context.Context, modelo string) (*entity.Toner, error) {
	return r.getOne(ctx, `SELECT `+tonerColumns+` FROM toners WHERE lower(modelo) = lower($1)`, modelo)
}

func (r *TonerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Toner, error) {
	t, err := scanToner(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get toner: %w", err)
	}
	return t, nil
}

// Update atualiza um toner.
func (r *TonerRepo) Update(ctx context.Context, t *entity.Toner) error {
	if !validID(t.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE toners SET modelo = $2, cor = $3, peso_vazio = $4, gramatura = $5, capacidade = $6,
			preco = $7, valor_por_folha = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Modelo, t.Cor, t.PesoVazio, t.Gramatura, t.Capacidade, t.Preco, t.ValorPorFolha, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update toner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista toners por modelo com paginação.
func (r *TonerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Toner, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tonerColumns+` FROM toners ORDER BY modelo LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list toners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Toner
	for rows.Next() {
		t, err := scanToner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan toner: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete exclui um toner. A FK ON DELETE RESTRICT cobre a corrida com um retornado recém-criado.
func (r *TonerRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM toners WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTonerInUse
		}
		return fmt.Errorf("delete toner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanToner(row pgx.Row) (*entity.Toner, error) {
	var t entity.Toner
	err := row.Scan(
		&t.ID, &t.Modelo, &t.Cor, &t.PesoVazio, &t.Gramatura, &t.Capacidade, &t.Preco, &t.ValorPorFolha,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
