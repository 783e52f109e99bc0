package repository

import (
	"context"

	"github.com/sgqpro/sgq-api/internal/domain/entity"
)

// TonerRepository define o porto de persistência para Toner (DIP).
type TonerRepository interface {
	Create(ctx context.Context, toner *entity.Toner) error
	GetByID(ctx context.Context, id string) (*entity.Toner, error)
	GetByModelo(ctx context.Context, modelo string) (*entity.Toner, error)
	Update(ctx context.Context, toner *entity.Toner) error
	List(ctx context.Context, limit, offset int) ([]*entity.Toner, error)
	Delete(ctx context.Context, id string) error
}
