package retornados

import (
	"context"
	"time"
)

// ReportCache guarda o relatório completo serializado. Implementado em infrastructure/cache.
// Get devolve found=false quando a chave não existe.
type ReportCache interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NopCache desliga o cache (Redis não configurado).
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, string) error                     { return nil }
