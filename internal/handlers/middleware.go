package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "sessionId"

// sessionIDMiddleware validates the :id path parameter and stores the
// canonical form in the gin context.
func (h *Handler) sessionIDMiddleware(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "missing session id",
		})
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "invalid session id",
		})
		return
	}

	c.Set(sessionIDKey, id.String())
	c.Next()
}

// sessionID returns the id stored by sessionIDMiddleware.
func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// requestLogger logs one line per request at debug level.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
