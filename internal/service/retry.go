package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
)

const (
	// defaultTransientRetryDelay задержка перед единственным повтором операции после domain.ErrTransient.
	defaultTransientRetryDelay = 500 * time.Millisecond
	// jitterPercent разброс задержки повтора в обе стороны.
	jitterPercent = 0.15
)

// retryTransient выполняет fn и, если она вернула domain.ErrTransient, повторяет её ровно один раз
// после задержки delay с разбросом 15%. Остальные ошибки возвращаются сразу.
func retryTransient(ctx context.Context, delay time.Duration, fn func() error) error {
	err := fn()
	if err == nil || !errors.Is(err, domain.ErrTransient) {
		return err
	}

	if delay > 0 {
		t := time.NewTimer(time.Duration(jitter(float64(delay), jitterPercent, jitterPercent)))
		defer t.Stop()
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-t.C:
		}
	}
	return fn()
}

// jitter возвращает число, рассыпавшееся относительно value на случайный процент в пределах
// [1-minPercent, 1+maxPercent]. Отрицательные проценты заменяются на jitterPercent.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = jitterPercent
		maxPercent = jitterPercent
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}
