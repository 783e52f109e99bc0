package entity

import "time"

// Retornado é uma unidade física devolvida por um cliente.
// ValorRecuperado nil significa "não armazenado": o valor pode ser derivado na leitura
// quando o destino permite.
type Retornado struct {
	ID              string
	ClienteID       string
	TonerID         string
	Peso            float64 // peso medido, gramas
	Destino         string
	ValorRecuperado *float64
	Filial          string
	Observacao      string
	DataRegistro    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RetornadoComToner é a linha devolvida pela consulta com INNER JOIN em toners.
type RetornadoComToner struct {
	Retornado Retornado
	Toner     Toner
}
