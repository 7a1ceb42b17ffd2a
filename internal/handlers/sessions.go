package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"antarctica_live/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK     = "ok"
	statusClosed = "closed"

	errOpenSession    = "failed to open session"
	errCloseSession   = "failed to close session"
	errLoadSession    = "failed to load session"
	errListSessions   = "failed to list sessions"
	errLoadViews      = "failed to load views"
	errSessionUnknown = "session not found"
	errInvalidActive  = "invalid 'active'; use true or false"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// sessionError maps service errors of a single-session call to a response.
func (h *Handler) sessionError(c *gin.Context, userMsg, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusNotFound, gin.H{"error": errSessionUnknown})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logAndJSONError(c, http.StatusServiceUnavailable, userMsg, logKey, err, "session_id", sessionID(c))
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, "session_id", sessionID(c))
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Open a session
// @Description  Creates a private rolling store and starts its timer. The first reading is taken immediately.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  models.SessionInfo
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions [post]
func (h *Handler) openSession(c *gin.Context) {
	info, err := h.services.Sessions.Open(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errOpenSession, "session_open_failed", err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Param        active  query  bool  false  "Only running sessions"
// @Success      200  {object}  map[string]interface{}  "count, sessions"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions [get]
func (h *Handler) listSessions(c *gin.Context) {
	activeOnly := false
	if qs := c.Query("active"); qs != "" {
		v, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidActive})
			return
		}
		activeOnly = v
	}
	list, err := h.services.Monitoring.ListSessions(c.Request.Context(), activeOnly)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListSessions, "sessions_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(list),
		"sessions": list,
	})
}

// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "Session id (UUID)"
// @Success      200  {object}  models.SessionInfo
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [get]
func (h *Handler) getSession(c *gin.Context) {
	info, err := h.services.Monitoring.GetSession(c.Request.Context(), sessionID(c))
	if err != nil {
		h.sessionError(c, errLoadSession, "session_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// @Summary      Close session
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "Session id (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [delete]
func (h *Handler) closeSession(c *gin.Context) {
	id := sessionID(c)
	if err := h.services.Sessions.Close(c.Request.Context(), id); err != nil {
		h.sessionError(c, errCloseSession, "session_close_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusClosed, "id": id})
}

// @Summary      Current views
// @Description  Snapshot, table and latest reading, recomputed on every call.
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "Session id (UUID)"
// @Success      200  {object}  models.Views
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/views [get]
func (h *Handler) getViews(c *gin.Context) {
	views, err := h.services.Sessions.Views(c.Request.Context(), sessionID(c))
	if err != nil {
		h.sessionError(c, errLoadViews, "session_views_failed", err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary      Table projection
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "Session id (UUID)"
// @Success      200  {object}  models.Table
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/table [get]
func (h *Handler) getTable(c *gin.Context) {
	views, err := h.services.Sessions.Views(c.Request.Context(), sessionID(c))
	if err != nil {
		h.sessionError(c, errLoadViews, "session_views_failed", err)
		return
	}
	c.JSON(http.StatusOK, views.Table)
}

// @Summary      Latest reading
// @Description  204 until the session has produced its first reading.
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "Session id (UUID)"
// @Success      200  {object}  models.Reading
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id}/latest [get]
func (h *Handler) getLatest(c *gin.Context) {
	views, err := h.services.Sessions.Views(c.Request.Context(), sessionID(c))
	if err != nil {
		h.sessionError(c, errLoadViews, "session_views_failed", err)
		return
	}
	if views.Latest == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, views.Latest)
}
