package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable, try again"
	default:
		return "internal server error"
	}
}

// Errors отдаёт клиенту первую ошибку запроса в виде {"error": "..."}. Текст публичной ошибки передаётся
// как есть, для остальных используется текст по статусу ответа. Если ошибка публичная и в Meta лежит имя
// поля, оно добавляется в ответ как "field".
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// тело уже отдано обработчиком
		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		body := gin.H{"error": statusErrorText(c.Writer.Status())}
		if firstErr.IsType(gin.ErrorTypePublic) {
			body["error"] = firstErr.Error()
			if field, ok := firstErr.Meta.(string); ok && field != "" {
				body["field"] = field
			}
		}

		c.JSON(c.Writer.Status(), body)
		c.Abort()
	}
}
