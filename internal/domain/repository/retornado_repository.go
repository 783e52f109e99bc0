package repository

import (
	"context"

	"github.com/sgqpro/sgq-api/internal/domain/entity"
)

// Chaves de ordenação aceitas pela consulta paginada.
const (
	SortDataRegistro = "data_registro"
	SortCreatedAt    = "created_at"

	SortDesc = "DESC"
	SortAsc  = "ASC"
)

// PageQuery descreve uma janela da consulta de retornados com join em toners.
type PageQuery struct {
	Limit   int
	Offset  int
	SortKey string
	SortDir string
}

// PageSource é o contrato de leitura consumido pela busca exaustiva:
// uma ida ao banco por página, já com os atributos do toner (INNER JOIN).
type PageSource interface {
	FetchPage(ctx context.Context, q PageQuery) ([]entity.RetornadoComToner, error)
}

// RetornadoRepository define o porto de persistência para Retornado (DIP).
type RetornadoRepository interface {
	PageSource

	Create(ctx context.Context, r *entity.Retornado) error
	GetByID(ctx context.Context, id string) (*entity.RetornadoComToner, error)
	Update(ctx context.Context, r *entity.Retornado) error
	Delete(ctx context.Context, id string) error
	// CountByToner conta retornados que referenciam o toner (pré-checagem de exclusão).
	CountByToner(ctx context.Context, tonerID string) (int, error)
}
