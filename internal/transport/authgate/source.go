// Package authgate связывает Session Guard с провайдером аутентификации.
package authgate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/fsdevblog/lynx-sales/internal/session"
	"github.com/fsdevblog/lynx-sales/internal/transport/authgate/client"
)

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks

// UserGetter получает пользователя провайдера по токену доступа.
type UserGetter interface {
	GetUser(ctx context.Context, accessToken string) (*client.User, error)
}

// Source реализует session.Source для одного токена доступа.
type Source struct {
	users       UserGetter
	accessToken string
}

func NewSource(users UserGetter, accessToken string) *Source {
	return &Source{users: users, accessToken: accessToken}
}

// Factory возвращает session.SourceFactory для реестра Guard.
func Factory(users UserGetter) session.SourceFactory {
	return func(accessToken string) session.Source {
		return NewSource(users, accessToken)
	}
}

// FetchSession спрашивает провайдера о владельце токена.
// Ответ 429 приводится к session.ErrRateLimited, 401 и 403 к session.ErrNoSession.
func (s *Source) FetchSession(ctx context.Context) (*session.Session, error) {
	user, err := s.users.GetUser(ctx, s.accessToken)
	if err != nil {
		var tmErr *client.TooManyRequestError
		if errors.As(err, &tmErr) {
			return nil, fmt.Errorf("%w: %s", session.ErrRateLimited, tmErr.Error())
		}
		var scErr *client.StatusCodeError
		if errors.As(err, &scErr) && (scErr.Code == http.StatusUnauthorized || scErr.Code == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %s", session.ErrNoSession, scErr.Error())
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	return &session.Session{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        domain.ParseRole(user.AppMetadata.Role),
		AccessToken: s.accessToken,
	}, nil
}
