package retornados

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sgqpro/sgq-api/internal/domain"
	"github.com/sgqpro/sgq-api/internal/domain/entity"
	"github.com/sgqpro/sgq-api/internal/domain/repository"
)

// DefaultPageSize é o teto de linhas por consulta imposto pela camada de dados.
const DefaultPageSize = 1000

var (
	// ErrFetchFailed indica que uma página falhou após as tentativas; nada do que foi lido é devolvido.
	ErrFetchFailed = errors.New("busca de retornados falhou")
	// ErrFetchCancelled indica que o chamador abandonou a busca; o resultado parcial não é completo.
	ErrFetchCancelled = errors.New("busca de retornados cancelada")
)

// FetcherOptions parâmetros da busca exaustiva.
type FetcherOptions struct {
	PageSize int
	Retries  int    // tentativas extras por página
	SortKey  string // padrão: data_registro
	SortDir  string // padrão: DESC
	// NewBackOff permite trocar a estratégia de espera (testes usam ZeroBackOff).
	NewBackOff func() backoff.BackOff
	Logger     zerolog.Logger
}

// Fetcher drena todas as páginas de retornados (com join em toners) e enriquece cada linha.
// As páginas são pedidas em sequência: o offset de uma depende do tamanho da anterior.
type Fetcher struct {
	src        repository.PageSource
	pageSize   int
	retries    int
	sortKey    string
	sortDir    string
	newBackOff func() backoff.BackOff
	log        zerolog.Logger
}

// NewFetcher constrói o Fetcher aplicando valores padrão.
func NewFetcher(src repository.PageSource, opts FetcherOptions) *Fetcher {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.SortKey == "" {
		opts.SortKey = repository.SortDataRegistro
	}
	if opts.SortDir == "" {
		opts.SortDir = repository.SortDesc
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = defaultBackOff
	}
	return &Fetcher{
		src:        src,
		pageSize:   opts.PageSize,
		retries:    opts.Retries,
		sortKey:    opts.SortKey,
		sortDir:    opts.SortDir,
		newBackOff: opts.NewBackOff,
		log:        opts.Logger,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 15 * time.Second
	return b
}

// PageSize devolve o tamanho de página efetivo.
func (f *Fetcher) PageSize() int { return f.pageSize }

// All devolve uma sequência finita e reiniciável: cada range recomeça do offset 0.
// Um erro é entregue como último elemento e encerra a sequência.
//
// Transição: página com exatamente PageSize linhas → pede a próxima;
// menos que PageSize (inclusive zero) → fim.
func (f *Fetcher) All(ctx context.Context) iter.Seq2[RegistroEnriquecido, error] {
	return func(yield func(RegistroEnriquecido, error) bool) {
		offset := 0
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(RegistroEnriquecido{}, fmt.Errorf("%w: %w", ErrFetchCancelled, err))
				return
			}

			rows, err := f.fetchPage(ctx, repository.PageQuery{
				Limit:   f.pageSize,
				Offset:  offset,
				SortKey: f.sortKey,
				SortDir: f.sortDir,
			})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					yield(RegistroEnriquecido{}, fmt.Errorf("%w: %w", ErrFetchCancelled, ctxErr))
					return
				}
				yield(RegistroEnriquecido{}, fmt.Errorf("%w: página %d (offset %d): %w", ErrFetchFailed, page, offset, err))
				return
			}

			for _, row := range rows {
				reg, res := Enriquecer(row)
				RegistrarQualidade(f.log, row.Retornado, row.Toner, res)
				if !yield(reg, nil) {
					return
				}
			}

			if len(rows) < f.pageSize {
				f.log.Debug().Int("paginas", page).Int("offset_final", offset+len(rows)).Msg("busca de retornados concluída")
				return
			}
			offset += f.pageSize
		}
	}
}

// FetchAll materializa a sequência completa. Tabela vazia devolve slice vazio (não nil);
// qualquer falha devolve nil e o erro, nunca um resultado parcial.
func (f *Fetcher) FetchAll(ctx context.Context) ([]RegistroEnriquecido, error) {
	out := make([]RegistroEnriquecido, 0)
	for reg, err := range f.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, nil
}

// fetchPage pede uma página com retentativa limitada. Cancelamento do contexto e consulta
// inválida não são retentados.
func (f *Fetcher) fetchPage(ctx context.Context, q repository.PageQuery) ([]entity.RetornadoComToner, error) {
	var rows []entity.RetornadoComToner
	op := func() error {
		var err error
		rows, err = f.src.FetchPage(ctx, q)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, domain.ErrInvalidInput):
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		f.log.Warn().Err(err).
			Int("offset", q.Offset).
			Dur("espera", wait).
			Msg("falha ao buscar página de retornados, nova tentativa")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), uint64(f.retries)), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return rows, nil
}
