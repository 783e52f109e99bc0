package dto

import "time"

// CreateRetornadoRequest entrada para registrar um retornado.
// ValorRecuperado omitido: o valor é calculado antes de gravar quando o destino permite.
type CreateRetornadoRequest struct {
	ClienteID       string     `json:"cliente_id" validate:"required,max=60"`
	TonerID         string     `json:"toner_id" validate:"required,uuid"`
	Peso            float64    `json:"peso" validate:"gte=0"`
	Destino         string     `json:"destino_final" validate:"required"`
	ValorRecuperado *float64   `json:"valor_recuperado" validate:"omitempty,gte=0"`
	Filial          string     `json:"filial" validate:"omitempty,max=80"`
	Observacao      string     `json:"observacao" validate:"omitempty,max=500"`
	DataRegistro    *time.Time `json:"data_registro"`
}

// UpdateRetornadoRequest entrada para atualizar um retornado (campos opcionais).
type UpdateRetornadoRequest struct {
	ClienteID       *string  `json:"cliente_id" validate:"omitempty,max=60"`
	TonerID         *string  `json:"toner_id" validate:"omitempty,uuid"`
	Peso            *float64 `json:"peso" validate:"omitempty,gte=0"`
	Destino         *string  `json:"destino_final"`
	ValorRecuperado *float64 `json:"valor_recuperado" validate:"omitempty,gte=0"`
	Filial          *string  `json:"filial" validate:"omitempty,max=80"`
	Observacao      *string  `json:"observacao" validate:"omitempty,max=500"`
}

// RetornadoResponse saída de um retornado já enriquecido com o toner.
type RetornadoResponse struct {
	ID              string    `json:"id"`
	ClienteID       string    `json:"cliente_id"`
	TonerID         string    `json:"toner_id"`
	Modelo          string    `json:"modelo"`
	Cor             string    `json:"cor"`
	Peso            float64   `json:"peso"`
	PesoVazio       float64   `json:"peso_vazio"`
	Gramatura       float64   `json:"gramatura"`
	Capacidade      int       `json:"capacidade_folhas"`
	ValorPorFolha   float64   `json:"valor_por_folha"`
	Destino         string    `json:"destino_final"`
	ValorRecuperado *float64  `json:"valor_recuperado"` // null quando não calculável
	Calculado       bool      `json:"valor_calculado"`
	Filial          string    `json:"filial"`
	Observacao      string    `json:"observacao"`
	DataRegistro    time.Time `json:"data_registro"`
}

// RetornadoListResponse lista paginada de retornados.
type RetornadoListResponse struct {
	Items []RetornadoResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
