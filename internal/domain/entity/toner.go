package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Toner é o registro de referência de um modelo de consumível.
// PesoVazio e Gramatura em gramas; Capacidade em folhas.
// ValorPorFolha = Preco / Capacidade e deve ser recalculado sempre que um dos dois mudar.
type Toner struct {
	ID            string
	Modelo        string
	Cor           string
	PesoVazio     float64
	Gramatura     float64
	Capacidade    int
	Preco         decimal.Decimal
	ValorPorFolha float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecalcularValorPorFolha atualiza ValorPorFolha a partir de Preco e Capacidade.
func (t *Toner) RecalcularValorPorFolha() {
	if t.Capacidade <= 0 {
		t.ValorPorFolha = 0
		return
	}
	t.ValorPorFolha = t.Preco.InexactFloat64() / float64(t.Capacidade)
}
