package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL      = 5 * time.Second
	DefaultMinGap        = 1200 * time.Millisecond
	DefaultThrottleDelay = 400 * time.Millisecond
	DefaultBackoff       = 1200 * time.Millisecond
)

const flightKey = "session"

// SleepFunc ожидает d либо отмену контекста.
type SleepFunc func(ctx context.Context, d time.Duration)

// Guard подтверждает сессию одного вызывающего с учётом лимитов провайдера.
//
// Поведение Ensure:
//  1. Результат (в том числе пустой) кешируется на CacheTTL.
//  2. Одновременные вызовы разделяют один запрос к провайдеру.
//  3. Если предыдущий запрос стартовал менее MinGap назад, перед новым выдерживается ThrottleDelay.
//  4. При ErrRateLimited выдерживается Backoff и делается ровно один повтор. Повторный отказ кеширует пустой результат.
type Guard struct {
	source Source
	l      *logrus.Entry
	flight singleflight.Group

	cacheTTL      time.Duration
	minGap        time.Duration
	throttleDelay time.Duration
	backoff       time.Duration
	now           func() time.Time
	sleep         SleepFunc

	mu          sync.Mutex
	hasCached   bool
	cached      *Session
	cachedAt    time.Time
	lastAttempt time.Time
	lastGood    *Session
	lastGoodAt  time.Time
	softFailure bool
}

// NewGuard создаёт Guard с параметрами по умолчанию.
func NewGuard(source Source, l *logrus.Logger) *Guard {
	return &Guard{
		source: source,
		l: l.WithFields(logrus.Fields{
			"component": "session",
			"module":    "guard",
		}),
		cacheTTL:      DefaultCacheTTL,
		minGap:        DefaultMinGap,
		throttleDelay: DefaultThrottleDelay,
		backoff:       DefaultBackoff,
		now:           time.Now,
		sleep:         sleepCtx,
	}
}

// SetCacheTTL устанавливает время жизни кешированного результата.
func (g *Guard) SetCacheTTL(ttl time.Duration) *Guard {
	g.cacheTTL = ttl
	return g
}

// SetThrottle устанавливает минимальный интервал между запросами и задержку при его нарушении.
func (g *Guard) SetThrottle(minGap, delay time.Duration) *Guard {
	g.minGap = minGap
	g.throttleDelay = delay
	return g
}

func (g *Guard) SetBackoff(backoff time.Duration) *Guard {
	g.backoff = backoff
	return g
}

// SetClock подменяет источник времени.
func (g *Guard) SetClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// SetSleep подменяет функцию ожидания.
func (g *Guard) SetSleep(sleep SleepFunc) *Guard {
	g.sleep = sleep
	return g
}

// Ensure возвращает подтверждённую сессию или nil. Ошибок не возвращает: любой отказ провайдера означает отсутствие
// сессии на ближайшие CacheTTL.
func (g *Guard) Ensure(ctx context.Context) *Session {
	if s, ok := g.fromCache(); ok {
		return s
	}

	// Общий запрос не должен прерываться отменой контекста одного из ожидающих.
	flightCtx := context.WithoutCancel(ctx)
	ch := g.flight.DoChan(flightKey, func() (any, error) {
		return g.fetch(flightCtx), nil
	})

	select {
	case res := <-ch:
		s, _ := res.Val.(*Session)
		return s
	case <-ctx.Done():
		return nil
	}
}

// LastConfirmed возвращает последнюю подтверждённую сессию и время подтверждения.
func (g *Guard) LastConfirmed() (*Session, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastGood, g.lastGoodAt
}

// SoftFailure сообщает, что последний пустой результат вызван временным отказом провайдера, а не отсутствием сессии.
func (g *Guard) SoftFailure() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.softFailure
}

// Invalidate сбрасывает кеш, следующий Ensure обратится к провайдеру.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hasCached = false
	g.cached = nil
}

func (g *Guard) fromCache() (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hasCached && g.now().Sub(g.cachedAt) < g.cacheTTL {
		return g.cached, true
	}
	return nil, false
}

func (g *Guard) fetch(ctx context.Context) *Session {
	// вызов мог дождаться окончания предыдущего запроса уже после проверки кеша
	if s, ok := g.fromCache(); ok {
		return s
	}

	g.mu.Lock()
	last := g.lastAttempt
	g.mu.Unlock()

	if !last.IsZero() && g.now().Sub(last) < g.minGap {
		g.sleep(ctx, g.throttleDelay)
	}

	s, err := g.attempt(ctx)
	if errors.Is(err, ErrRateLimited) {
		g.l.WithField("backoff", g.backoff).Debug("rate limited, retrying once")
		g.sleep(ctx, g.backoff)
		s, err = g.attempt(ctx)
	}

	soft := false
	if err != nil {
		s = nil
		soft = !errors.Is(err, ErrNoSession)
		if soft {
			g.l.WithError(err).Warn("session check failed")
		}
	}

	g.store(s, soft)
	return s
}

func (g *Guard) attempt(ctx context.Context) (*Session, error) {
	g.mu.Lock()
	g.lastAttempt = g.now()
	g.mu.Unlock()

	s, err := g.source.FetchSession(ctx)
	if err == nil && s == nil {
		return nil, ErrNoSession
	}
	return s, err
}

func (g *Guard) store(s *Session, soft bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.hasCached = true
	g.cached = s
	g.cachedAt = now
	g.softFailure = soft
	if s != nil {
		g.lastGood = s
		g.lastGoodAt = now
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
