// Package analytics contém os casos de uso de indicadores do dashboard de retornados.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
)

const (
	dashboardTopModelos = 5  // modelos no widget de ranking
	dashboardMeses      = 12 // janela do gráfico mensal
)

// DashboardUseCase gera os KPIs e séries de gráfico do dashboard de retornados.
//
// Fonte de dados: o mesmo conjunto enriquecido do relatório de BI (busca exaustiva),
// assim dashboard e BI nunca divergem no valor recuperado.
type DashboardUseCase struct {
	src retornados.RegistrosSource
	loc *time.Location
	now func() time.Time
}

// NewDashboardUseCase constrói o caso de uso. loc nil usa time.Local.
func NewDashboardUseCase(src retornados.RegistrosSource, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{src: src, loc: loc, now: time.Now}
}

type acumulado struct {
	quantidade int
	valor      decimal.Decimal
}

// GetRetornados monta o DashboardRetornadosDTO.
//
// Somas em decimal a partir dos valores arredondados a 2 casas, igual ao que o BI exibe.
func (uc *DashboardUseCase) GetRetornados(ctx context.Context) (*dto.DashboardRetornadosDTO, error) {
	regs, err := uc.src.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: retornados: %w", err)
	}
	now := uc.now().In(uc.loc)

	// ── Janela mensal ─────────────────────────────────────────────────────────
	inicioMesAtual := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	inicioJanela := inicioMesAtual.AddDate(0, -(dashboardMeses - 1), 0)
	meses := make([]acumulado, dashboardMeses)

	porDestino := map[string]*acumulado{}
	porFilial := map[string]*acumulado{}
	porModelo := map[string]*acumulado{}
	var ordemDestino []string

	out := &dto.DashboardRetornadosDTO{
		TotalRetornados: len(regs),
		ValorTotal:      decimal.Zero,
		Periodo:         monthLabel(now),
	}

	for _, r := range regs {
		valor := decimal.Zero
		if v := retornados.ArredondarPtr(r.ValorRecuperado); v != nil {
			valor = decimal.NewFromFloat(*v).Round(2)
			out.ComValor++
		} else {
			out.SemValor++
		}
		out.ValorTotal = out.ValorTotal.Add(valor)

		if _, ok := porDestino[r.Destino]; !ok {
			ordemDestino = append(ordemDestino, r.Destino)
		}
		somar(porDestino, r.Destino, valor)
		filial := r.Filial
		if filial == "" {
			filial = "Sem filial"
		}
		somar(porFilial, filial, valor)
		if r.ValorRecuperado != nil {
			somar(porModelo, r.Modelo, valor)
		}

		d := r.DataRegistro.In(uc.loc)
		if d.Before(inicioJanela) || d.After(now) {
			continue
		}
		idx := (d.Year()-inicioJanela.Year())*12 + int(d.Month()) - int(inicioJanela.Month())
		if idx >= 0 && idx < dashboardMeses {
			meses[idx].quantidade++
			meses[idx].valor = meses[idx].valor.Add(valor)
		}
	}
	out.ValorTotal = out.ValorTotal.Round(2)

	sort.Strings(ordemDestino)
	for _, d := range ordemDestino {
		out.PorDestino = append(out.PorDestino, serie(d, porDestino[d]))
	}
	for i, m := range meses {
		t := inicioJanela.AddDate(0, i, 0)
		out.PorMes = append(out.PorMes, serie(monthLabel(t), &m))
	}
	out.PorFilial = ranking(porFilial, 0)
	out.TopModelos = ranking(porModelo, dashboardTopModelos)
	return out, nil
}

func somar(m map[string]*acumulado, chave string, valor decimal.Decimal) {
	a, ok := m[chave]
	if !ok {
		a = &acumulado{valor: decimal.Zero}
		m[chave] = a
	}
	a.quantidade++
	a.valor = a.valor.Add(valor)
}

func serie(label string, a *acumulado) dto.SerieDTO {
	return dto.SerieDTO{Label: label, Quantidade: a.quantidade, Valor: a.valor.Round(2)}
}

// ranking ordena por valor desc (desempate por rótulo). limite 0 = todos.
func ranking(m map[string]*acumulado, limite int) []dto.SerieDTO {
	out := make([]dto.SerieDTO, 0, len(m))
	for k, a := range m {
		out = append(out, serie(k, a))
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Valor.Cmp(out[j].Valor); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out
}

// monthLabel devolve um rótulo legível do mês, ex: "Outubro 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", retornados.NomeMes(t.Month()), t.Year())
}
