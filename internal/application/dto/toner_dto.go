package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTonerRequest entrada para cadastrar um modelo de toner.
type CreateTonerRequest struct {
	Modelo     string          `json:"modelo" validate:"required,min=1,max=120"`
	Cor        string          `json:"cor" validate:"omitempty,max=40"`
	PesoVazio  float64         `json:"peso_vazio" validate:"gt=0"`
	Gramatura  float64         `json:"gramatura" validate:"gt=0"`
	Capacidade int             `json:"capacidade_folhas" validate:"gt=0"`
	Preco      decimal.Decimal `json:"preco"`
}

// UpdateTonerRequest entrada para atualizar um toner (campos opcionais).
type UpdateTonerRequest struct {
	Modelo     *string          `json:"modelo" validate:"omitempty,min=1,max=120"`
	Cor        *string          `json:"cor" validate:"omitempty,max=40"`
	PesoVazio  *float64         `json:"peso_vazio" validate:"omitempty,gt=0"`
	Gramatura  *float64         `json:"gramatura" validate:"omitempty,gt=0"`
	Capacidade *int             `json:"capacidade_folhas" validate:"omitempty,gt=0"`
	Preco      *decimal.Decimal `json:"preco"`
}

// TonerResponse saída de um toner.
type TonerResponse struct {
	ID            string          `json:"id"`
	Modelo        string          `json:"modelo"`
	Cor           string          `json:"cor"`
	PesoVazio     float64         `json:"peso_vazio"`
	Gramatura     float64         `json:"gramatura"`
	Capacidade    int             `json:"capacidade_folhas"`
	Preco         decimal.Decimal `json:"preco"`
	ValorPorFolha float64         `json:"valor_por_folha"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TonerListResponse lista paginada de toners.
type TonerListResponse struct {
	Items []TonerResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
