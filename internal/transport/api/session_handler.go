package api

import (
	"net/http"

	"github.com/fsdevblog/lynx-sales/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Show GET RouteGroup + SessionRoute. Отдаёт сессию, подтверждённую в middlewares.AuthRequired.
func (h *SessionHandler) Show(c *gin.Context) {
	s := middlewares.CurrentSession(c)
	if s == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	resp := SessionResponse{
		UserID:      s.UserID,
		Email:       s.Email,
		Role:        s.Role,
		Permissions: s.Role.Permissions(),
	}
	if !s.ExpiresAt.IsZero() {
		resp.ExpiresAt = &s.ExpiresAt
	}
	c.JSON(http.StatusOK, resp)
}
