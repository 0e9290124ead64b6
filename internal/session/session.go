// Package session подтверждает сессию вызывающего у провайдера аутентификации перед обращением к данным.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/google/uuid"
)

var (
	// ErrRateLimited провайдер ответил отказом по лимиту запросов (HTTP 429).
	ErrRateLimited = errors.New("auth provider rate limited")
	// ErrNoSession у вызывающего нет действующей сессии.
	ErrNoSession = errors.New("no active session")
)

// Session подтверждённая провайдером сессия.
type Session struct {
	UserID      uuid.UUID
	Email       string
	Role        domain.Role
	AccessToken string
	ExpiresAt   time.Time
}

// Can проверяет разрешение роли сессии.
func (s *Session) Can(p domain.Permission) bool {
	return s != nil && s.Role.Can(p)
}

//go:generate mockgen -source=session.go -destination=mocks/mocks.go -package=mocks

// Source получает сессию у провайдера. Реализация должна возвращать ErrRateLimited при отказе по лимиту
// и ErrNoSession, если провайдер сессию не признал.
type Source interface {
	FetchSession(ctx context.Context) (*Session, error)
}

type ctxKey struct{}

// WithContext кладёт сессию в контекст запроса.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт сессию из контекста. Возвращает nil, если её там нет.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
