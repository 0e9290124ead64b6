package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет строку лога на каждый запрос. Приватные ошибки запроса попадают только в лог.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithFields(logrus.Fields{
		"component": "transport",
		"module":    "api",
	})
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}
		if s := CurrentSession(c); s != nil {
			fields["user_id"] = s.UserID
		}
		e := entry.WithFields(fields)

		if private := c.Errors.ByType(gin.ErrorTypePrivate); len(private) > 0 {
			e.WithField("errors", private.Errors()).Error("request failed")
			return
		}
		e.Info("request")
	}
}
