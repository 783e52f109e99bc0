package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgqpro/sgq-api/internal/application/retornados"
)

type stubSource struct {
	regs []retornados.RegistroEnriquecido
	err  error
}

func (s stubSource) FetchAll(context.Context) ([]retornados.RegistroEnriquecido, error) {
	return s.regs, s.err
}

func valor(v float64) *float64 { return &v }

func reg(modelo, destino, filial string, v *float64, data time.Time) retornados.RegistroEnriquecido {
	return retornados.RegistroEnriquecido{Modelo: modelo, Destino: destino, Filial: filial, ValorRecuperado: v, DataRegistro: data}
}

func TestGetRetornados_Agregacao(t *testing.T) {
	loc := time.UTC
	agora := time.Date(2026, time.October, 19, 10, 0, 0, 0, loc)
	src := stubSource{regs: []retornados.RegistroEnriquecido{
		reg("CF258A", "Estoque", "Matriz", valor(65.185), agora.AddDate(0, 0, -1)),
		reg("CF258A", "Estoque", "Filial SP", valor(10), agora.AddDate(0, -1, 0)),
		reg("W1330X", "Estoque Semi Novo", "Matriz", valor(100.004), agora.AddDate(0, -2, 0)),
		reg("W1330X", "Descarte", "", nil, agora.AddDate(-2, 0, 0)),
	}}
	uc := NewDashboardUseCase(src, loc)
	uc.now = func() time.Time { return agora }

	out, err := uc.GetRetornados(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalRetornados)
	assert.Equal(t, 3, out.ComValor)
	assert.Equal(t, 1, out.SemValor)
	assert.Equal(t, "175.19", out.ValorTotal.StringFixed(2), "soma dos valores já arredondados")
	assert.Equal(t, "Outubro 2026", out.Periodo)

	require.Len(t, out.PorMes, 12)
	assert.Equal(t, "Novembro 2025", out.PorMes[0].Label)
	assert.Equal(t, "Outubro 2026", out.PorMes[11].Label)
	assert.Equal(t, 1, out.PorMes[11].Quantidade)
	assert.Equal(t, "65.19", out.PorMes[11].Valor.StringFixed(2))
	assert.Equal(t, 1, out.PorMes[10].Quantidade)

	require.Len(t, out.PorDestino, 3)
	assert.Equal(t, "Descarte", out.PorDestino[0].Label)

	require.Len(t, out.TopModelos, 2, "registros sem valor não entram no ranking")
	assert.Equal(t, "W1330X", out.TopModelos[0].Label)
	assert.Equal(t, "Matriz", out.PorFilial[0].Label)
	assert.Equal(t, "Sem filial", out.PorFilial[len(out.PorFilial)-1].Label)
}

func TestGetRetornados_Vazio(t *testing.T) {
	out, err := NewDashboardUseCase(stubSource{regs: []retornados.RegistroEnriquecido{}}, time.UTC).GetRetornados(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalRetornados)
	assert.True(t, out.ValorTotal.IsZero())
	assert.Len(t, out.PorMes, 12)
	assert.Empty(t, out.TopModelos)
}

func TestGetRetornados_FalhaNaBusca(t *testing.T) {
	_, err := NewDashboardUseCase(stubSource{err: retornados.ErrFetchFailed}, time.UTC).GetRetornados(context.Background())
	assert.True(t, errors.Is(err, retornados.ErrFetchFailed))
}
