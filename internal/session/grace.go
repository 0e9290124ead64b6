package session

import (
	"context"
	"time"
)

// DefaultGraceWindow сколько последняя подтверждённая сессия остаётся действительной при временных отказах провайдера.
const DefaultGraceWindow = 30 * time.Second

// GracePolicy отличает мягкий отказ (лимит провайдера, сетевые ошибки) от жёсткого (сессии нет).
type GracePolicy struct {
	Window time.Duration
	Now    func() time.Time
}

// Resolve возвращает сессию для запроса. При мягком отказе в пределах Window от последнего подтверждения
// возвращается последняя подтверждённая сессия. nil означает, что вызывающий не аутентифицирован.
func (p GracePolicy) Resolve(ctx context.Context, g *Guard) *Session {
	if s := g.Ensure(ctx); s != nil {
		return s
	}
	if !g.SoftFailure() {
		return nil
	}

	last, at := g.LastConfirmed()
	if last == nil {
		return nil
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	if now().Sub(at) > p.Window {
		return nil
	}
	return last
}
