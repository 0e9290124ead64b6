// Package lock сериализует изменения одной продажи между экземплярами сервиса.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL          = 10 * time.Second
	defaultRetryBackoff = 100 * time.Millisecond
	defaultRetryCount   = 20
)

// ReleaseFunc снимает блокировку.
type ReleaseFunc func(ctx context.Context) error

// SaleKey ключ блокировки продажи.
func SaleKey(saleID uuid.UUID) string {
	return "lock:sale:" + saleID.String()
}

// RedisLocker распределённая блокировка на redis.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    DefaultTTL,
	}
}

// SetTTL устанавливает время жизни блокировки.
func (l *RedisLocker) SetTTL(ttl time.Duration) *RedisLocker {
	l.ttl = ttl
	return l
}

// Acquire захватывает блокировку key, повторяя попытки с линейной задержкой. Если блокировку получить не удалось,
// возвращает domain.ErrSaleBusy.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(defaultRetryBackoff), defaultRetryCount),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("acquire `%s`: %w", key, domain.ErrSaleBusy)
		}
		return nil, fmt.Errorf("acquire `%s`: %w", key, err)
	}

	return func(ctx context.Context) error {
		if relErr := lk.Release(ctx); relErr != nil && !errors.Is(relErr, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release `%s`: %w", key, relErr)
		}
		return nil
	}, nil
}

// NopLocker используется, когда redis не настроен. Внутри одного экземпляра сервиса продажи
// защищает блокировка строки в транзакции.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
