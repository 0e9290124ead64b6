// Package tokens проверяет токены доступа провайдера аутентификации.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type AppMetadata struct {
	Role string `json:"role,omitempty"`
}

// AccessClaims набор полей токена доступа провайдера. Subject содержит id пользователя.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email,omitempty"`
	Role        string      `json:"role,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

// UserID возвращает id пользователя из Subject.
func (c *AccessClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	return id, nil
}

// AppRole роль пользователя в приложении. Поле role верхнего уровня у провайдера означает роль базы данных
// (authenticated, anon), поэтому учитывается только app_metadata.role.
func (c *AccessClaims) AppRole() domain.Role {
	return domain.ParseRole(c.AppMetadata.Role)
}

// GenerateAccessToken выпускает токен в формате провайдера. Используется в тестах и для локальной разработки.
func GenerateAccessToken(
	userID uuid.UUID,
	email string,
	role domain.Role,
	expire time.Duration,
	key []byte,
) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email:       email,
		Role:        "authenticated",
		AppMetadata: AppMetadata{Role: string(role)},
	}
	token, err := generateJWT(claims, key)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

// ValidateAccessToken проверяет подпись и срок действия токена. Истёкший токен возвращает ErrTokenExpired.
func ValidateAccessToken(tokenString string, key []byte) (*AccessClaims, error) {
	token, err := validateJWT(tokenString, new(AccessClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating access token: %w", err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if _, idErr := claims.UserID(); idErr != nil {
		return nil, idErr
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing jwt token: %w", err)
	}
	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	return token, nil
}
