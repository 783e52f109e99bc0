package dto

import "github.com/shopspring/decimal"

// DashboardRetornadosDTO resposta de GET /api/dashboard/retornados.
// Todos os valores vêm do mesmo conjunto enriquecido usado pelo relatório de BI.
type DashboardRetornadosDTO struct {
	TotalRetornados int             `json:"total_retornados"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	ComValor        int             `json:"com_valor"`     // registros com valor resolvido
	SemValor        int             `json:"sem_valor"`     // destino sem valor ou dados incompletos
	PorDestino      []SerieDTO      `json:"por_destino"`   // gráfico de pizza
	PorMes          []SerieDTO      `json:"por_mes"`       // últimos 12 meses, mais antigo primeiro
	PorFilial       []SerieDTO      `json:"por_filial"`    // ordenado por valor desc
	TopModelos      []SerieDTO      `json:"top_modelos"`   // 5 modelos com maior valor recuperado
	Periodo         string          `json:"periodo_label"` // ex: "Outubro 2026"
}

// SerieDTO um ponto de gráfico: rótulo, quantidade e valor recuperado somado.
type SerieDTO struct {
	Label      string          `json:"label"`
	Quantidade int             `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
}
