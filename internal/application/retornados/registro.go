package retornados

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/retornado"
)

// RegistroEnriquecido é a projeção de leitura entregue a grids, gráficos e BI:
// o retornado achatado com os atributos do toner e o valor recuperado final.
// Não é persistido; é reconstruído a cada busca.
type RegistroEnriquecido struct {
	ID              string
	ClienteID       string
	TonerID         string
	Modelo          string
	Cor             string
	Filial          string
	Destino         string
	Observacao      string
	Peso            float64
	PesoVazio       float64
	Gramatura       float64
	Capacidade      int
	ValorPorFolha   float64
	ValorRecuperado *float64
	Calculado       bool
	DataRegistro    time.Time
}

// Enriquecer aplica política de destino e calculadora a uma linha do join.
func Enriquecer(row entity.RetornadoComToner) (RegistroEnriquecido, retornado.Resolucao) {
	r, t := row.Retornado, row.Toner
	res := retornado.Resolver(r, t)

	destino := strings.TrimSpace(r.Destino)
	if d, ok := retornado.ParseDestino(destino); ok {
		destino = string(d)
	}

	return RegistroEnriquecido{
		ID:              r.ID,
		ClienteID:       strings.TrimSpace(r.ClienteID),
		TonerID:         r.TonerID,
		Modelo:          t.Modelo,
		Cor:             t.Cor,
		Filial:          strings.TrimSpace(r.Filial),
		Destino:         destino,
		Observacao:      r.Observacao,
		Peso:            r.Peso,
		PesoVazio:       t.PesoVazio,
		Gramatura:       t.Gramatura,
		Capacidade:      t.Capacidade,
		ValorPorFolha:   t.ValorPorFolha,
		ValorRecuperado: res.Valor,
		Calculado:       res.Calculado,
		DataRegistro:    r.DataRegistro,
	}, res
}

// RegistrarQualidade loga sinais de dado inconsistente sem interromper o processamento.
func RegistrarQualidade(log zerolog.Logger, r entity.Retornado, t entity.Toner, res retornado.Resolucao) {
	if res.Decisao != retornado.DecisaoCalcular {
		return
	}
	switch {
	case !res.Resultado.Calculavel:
		log.Warn().
			Str("retornado_id", r.ID).
			Str("toner_id", t.ID).
			Msg("dados de referência do toner incompletos, valor recuperado não calculável")
	case res.Resultado.MassaNegativa:
		log.Warn().
			Str("retornado_id", r.ID).
			Float64("peso", r.Peso).
			Float64("peso_vazio", t.PesoVazio).
			Msg("peso medido abaixo do peso vazio, massa truncada em zero")
	case res.Resultado.AcimaDaGramatura:
		log.Warn().
			Str("retornado_id", r.ID).
			Float64("peso", r.Peso).
			Float64("gramatura", t.Gramatura).
			Msg("massa restante acima da gramatura nominal")
	}
}
