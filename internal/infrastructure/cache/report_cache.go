package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sgqpro/sgq-api/internal/application/retornados"
)

const defaultKeyPrefix = "sgq:"

var _ retornados.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache guarda o relatório de BI serializado no Redis, compartilhado entre instâncias.
type RedisReportCache struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisReportCache constrói o cache sobre um cliente existente.
func NewRedisReportCache(client redis.Cmdable, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

// Get devolve o payload; found=false quando a chave não existe ou expirou.
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, true, nil
}

// Set grava o payload com TTL.
func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete remove a chave (invalidação após escrita).
func (c *RedisReportCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
