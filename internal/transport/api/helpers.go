package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/lynx-sales/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// serviceErrorStatus сопоставляет ошибку сервиса http статусу.
func serviceErrorStatus(err error) int {
	var valErr *domain.ValidationError
	var preErr *domain.PreconditionError

	switch {
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &preErr), errors.Is(err, domain.ErrSaleBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError прерывает запрос публичной ошибкой с сообщением операции. Для ошибок валидации и
// предусловий к сообщению добавляется причина, исходная ошибка сохраняется приватной для лога.
func abortWithServiceError(c *gin.Context, message string, err error) {
	var valErr *domain.ValidationError
	var preErr *domain.PreconditionError

	var field string
	switch {
	case errors.As(err, &valErr):
		message = fmt.Sprintf("%s: %s", message, valErr.Error())
		field = valErr.Field
	case errors.As(err, &preErr):
		message = fmt.Sprintf("%s: %s", message, preErr.Error())
	}

	pubErr := c.AbortWithError(serviceErrorStatus(err), errors.New(message)).SetType(gin.ErrorTypePublic)
	if field != "" {
		_ = pubErr.SetMeta(field)
	}
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
}

// bindJSON разбирает тело запроса в params. Ошибки тегов binding дают 422, остальные 400.
// Возвращает false, если запрос уже прерван.
func bindJSON(c *gin.Context, params any) bool {
	bindErr := c.ShouldBindJSON(params)
	if bindErr == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
	return false
}

// uuidParam читает uuid из параметра пути name. При ошибке запрос прерывается с 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s: must be a uuid", name)).
			SetType(gin.ErrorTypePublic)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery читает необязательный uuid из query параметра name.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s: must be a uuid", name)).
			SetType(gin.ErrorTypePublic)
		return nil, false
	}
	return &id, true
}
