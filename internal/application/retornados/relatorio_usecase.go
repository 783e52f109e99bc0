package retornados

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sgqpro/sgq-api/internal/application/dto"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/retornado"
)

// CacheKeyRelatorio chave do relatório completo (sem filtros) no cache.
const CacheKeyRelatorio = "sgq:relatorio:retornados:v1"

const layoutData = "2006-01-02"

var mesesPtBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var tituloPtBR = cases.Title(language.BrazilianPortuguese)

// NomeMes devolve o nome do mês em português com inicial maiúscula, ex: "Março".
func NomeMes(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return tituloPtBR.String(mesesPtBR[m-1])
}

// Trimestre devolve o trimestre (1-4) do mês.
func Trimestre(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// RegistrosSource é o que os consumidores precisam da busca exaustiva.
type RegistrosSource interface {
	FetchAll(ctx context.Context) ([]RegistroEnriquecido, error)
}

// RelatorioUseCase monta o relatório plano de retornados para o consumidor de BI externo.
// O relatório completo fica em cache; filtros são aplicados depois.
type RelatorioUseCase struct {
	src   RegistrosSource
	cache ReportCache
	ttl   time.Duration
	loc   *time.Location
	log   zerolog.Logger
}

// NewRelatorioUseCase constrói o caso de uso. cache nil equivale a NopCache; loc nil usa time.Local.
func NewRelatorioUseCase(src RegistrosSource, cache ReportCache, ttl time.Duration, loc *time.Location, log zerolog.Logger) *RelatorioUseCase {
	if cache == nil {
		cache = NopCache{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &RelatorioUseCase{src: src, cache: cache, ttl: ttl, loc: loc, log: log}
}

// Gerar devolve os itens do relatório. Erro de busca nunca vira lista vazia.
func (uc *RelatorioUseCase) Gerar(ctx context.Context, filtro dto.RelatorioFiltro) ([]dto.RelatorioRetornadoItem, error) {
	f, err := uc.parseFiltro(filtro)
	if err != nil {
		return nil, err
	}

	itens, err := uc.completo(ctx)
	if err != nil {
		return nil, err
	}
	return f.aplicar(itens), nil
}

// Invalidar remove o relatório do cache (chamado após escrita em retornados ou toners).
func (uc *RelatorioUseCase) Invalidar(ctx context.Context) {
	if err := uc.cache.Delete(ctx, CacheKeyRelatorio); err != nil {
		uc.log.Warn().Err(err).Msg("falha ao invalidar cache do relatório")
	}
}

func (uc *RelatorioUseCase) completo(ctx context.Context) ([]dto.RelatorioRetornadoItem, error) {
	if payload, found, err := uc.cache.Get(ctx, CacheKeyRelatorio); err != nil {
		uc.log.Warn().Err(err).Msg("cache do relatório indisponível, buscando no banco")
	} else if found {
		var itens []dto.RelatorioRetornadoItem
		if err := json.Unmarshal(payload, &itens); err == nil {
			return itens, nil
		}
		uc.log.Warn().Msg("relatório em cache corrompido, descartando")
	}

	regs, err := uc.src.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("relatório de retornados: %w", err)
	}
	itens := make([]dto.RelatorioRetornadoItem, 0, len(regs))
	for i := range regs {
		itens = append(itens, uc.toItem(regs[i]))
	}

	if uc.ttl > 0 {
		if payload, err := json.Marshal(itens); err == nil {
			if err := uc.cache.Set(ctx, CacheKeyRelatorio, payload, uc.ttl); err != nil {
				uc.log.Warn().Err(err).Msg("falha ao gravar relatório no cache")
			}
		}
	}
	return itens, nil
}

func (uc *RelatorioUseCase) toItem(r RegistroEnriquecido) dto.RelatorioRetornadoItem {
	data := r.DataRegistro.In(uc.loc)
	return dto.RelatorioRetornadoItem{
		ID:              r.ID,
		ClienteID:       r.ClienteID,
		Modelo:          r.Modelo,
		Cor:             r.Cor,
		Filial:          r.Filial,
		Destino:         r.Destino,
		ValorRecuperado: ArredondarPtr(r.ValorRecuperado),
		DataRegistro:    data.Format(layoutData),
		Ano:             data.Year(),
		Mes:             int(data.Month()),
		MesNome:         NomeMes(data.Month()),
		Trimestre:       Trimestre(data.Month()),
		Peso:            r.Peso,
		PesoVazio:       r.PesoVazio,
		Gramatura:       r.Gramatura,
		Capacidade:      r.Capacidade,
		ValorPorFolha:   r.ValorPorFolha,
	}
}

// ArredondarPtr arredonda para centavos na fronteira de apresentação; nil continua nil.
func ArredondarPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f, _ := decimal.NewFromFloat(*v).Round(2).Float64()
	return &f
}

type filtroRelatorio struct {
	inicio, fim string // YYYY-MM-DD; comparação lexicográfica
	destino     string
	filial      string
}

func (uc *RelatorioUseCase) parseFiltro(in dto.RelatorioFiltro) (filtroRelatorio, error) {
	var f filtroRelatorio
	for _, p := range []struct {
		raw string
		dst *string
	}{{in.DataInicio, &f.inicio}, {in.DataFim, &f.fim}} {
		raw := strings.TrimSpace(p.raw)
		if raw == "" {
			continue
		}
		if _, err := time.Parse(layoutData, raw); err != nil {
			return f, fmt.Errorf("%w: data %q fora do formato AAAA-MM-DD", domain.ErrInvalidInput, raw)
		}
		*p.dst = raw
	}
	if f.inicio != "" && f.fim != "" && f.inicio > f.fim {
		return f, fmt.Errorf("%w: data_inicio posterior a data_fim", domain.ErrInvalidInput)
	}
	if raw := strings.TrimSpace(in.Destino); raw != "" {
		d, ok := retornado.ParseDestino(raw)
		if !ok {
			return f, fmt.Errorf("%w: destino %q desconhecido", domain.ErrInvalidInput, raw)
		}
		f.destino = string(d)
	}
	f.filial = strings.TrimSpace(in.Filial)
	return f, nil
}

func (f filtroRelatorio) aplicar(itens []dto.RelatorioRetornadoItem) []dto.RelatorioRetornadoItem {
	if f == (filtroRelatorio{}) {
		return itens
	}
	out := make([]dto.RelatorioRetornadoItem, 0, len(itens))
	for _, it := range itens {
		if f.inicio != "" && it.DataRegistro < f.inicio {
			continue
		}
		if f.fim != "" && it.DataRegistro > f.fim {
			continue
		}
		if f.destino != "" && it.Destino != f.destino {
			continue
		}
		if f.filial != "" && !strings.EqualFold(it.Filial, f.filial) {
			continue
		}
		out = append(out, it)
	}
	return out
}
