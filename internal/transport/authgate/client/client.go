// Package client HTTP клиент провайдера аутентификации (GoTrue совместимый API).
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"resty.dev/v3"
)

const RouteUser = "/auth/v1/user"

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60 * time.Second
)

const defaultTimeout = 10 * time.Second

type AppMetadata struct {
	Role string `json:"role"`
}

// User пользователь, которому принадлежит токен доступа.
type User struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

// HTTPClient обращается к API провайдера аутентификации.
type HTTPClient struct {
	rc *resty.Client
}

// New создаёт клиент. apiKey передаётся в заголовке apikey каждого запроса, если задан.
func New(baseURL, apiKey string) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		rc.SetHeader("apikey", apiKey)
	}
	return &HTTPClient{rc: rc}
}

// Close освобождает ресурсы клиента.
func (c *HTTPClient) Close() error {
	return c.rc.Close() //nolint:wrapcheck
}

// GetUser возвращает пользователя по токену доступа.
// При ответе сервера со статусом отличным от http.StatusOK, возвращает ошибку StatusCodeError, или
// TooManyRequestError в случае http.StatusTooManyRequests.
func (c *HTTPClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		Get(RouteUser)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header().Get("Retry-After")))
	}

	// Статус отличный от http.StatusOK нас не интересует.
	if resp.StatusCode() != http.StatusOK {
		return nil, NewStatusCodeError(resp.StatusCode())
	}

	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("parse response: user id is empty")
	}
	return &user, nil
}

// parseRetryAfter разбирает Retry-After в секундах. Некорректные значения и значения вне
// [minRetryAfter, maxRetryAfter] заменяются на defaultRetryAfter.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < minRetryAfter || seconds > maxRetryAfter {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
