package dto

// RelatorioRetornadoItem linha plana entregue ao consumidor de BI.
type RelatorioRetornadoItem struct {
	ID              string   `json:"id"`
	ClienteID       string   `json:"cliente_id"`
	Modelo          string   `json:"modelo"`
	Cor             string   `json:"cor"`
	Filial          string   `json:"filial"`
	Destino         string   `json:"destino_final"`
	ValorRecuperado *float64 `json:"valor_recuperado"`
	DataRegistro    string   `json:"data_registro"` // YYYY-MM-DD
	Ano             int      `json:"ano"`
	Mes             int      `json:"mes"`
	MesNome         string   `json:"mes_nome"`
	Trimestre       int      `json:"trimestre"`
	Peso            float64  `json:"peso"`
	PesoVazio       float64  `json:"peso_vazio"`
	Gramatura       float64  `json:"gramatura"`
	Capacidade      int      `json:"capacidade_folhas"`
	ValorPorFolha   float64  `json:"valor_por_folha"`
}

// RelatorioFiltro filtros opcionais aplicados depois da busca exaustiva.
type RelatorioFiltro struct {
	DataInicio string `query:"data_inicio"` // YYYY-MM-DD, inclusivo
	DataFim    string `query:"data_fim"`    // YYYY-MM-DD, inclusivo
	Destino    string `query:"destino"`
	Filial     string `query:"filial"`
}

// RelatorioResponse envelope do endpoint de BI. Em falha de autenticação Data vem vazio.
type RelatorioResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error,omitempty"`
	Total   int                      `json:"total"`
	Data    []RelatorioRetornadoItem `json:"data"`
}
