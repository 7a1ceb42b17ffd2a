package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"antarctica_live/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// journalFilter reads the query string of /api/v1/logs. Only time syntax is
// checked here; the service owns the rest of the validation.
func journalFilter(c *gin.Context) (service.LogFilter, error) {
	f := service.LogFilter{
		Type:      c.Query("type"),
		SessionID: c.Query("session_id"),
	}
	if qs := c.Query("from"); qs != "" {
		from, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, fmt.Errorf("from: %w", err)
		}
		f.From = from
	}
	if qs := c.Query("to"); qs != "" {
		to, err := parseQueryTime(qs)
		if err != nil {
			return service.LogFilter{}, fmt.Errorf("to: %w", err)
		}
		// A bare date covers the whole day.
		if !strings.ContainsAny(qs, "T ") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = to
	}
	return f, nil
}

// @Summary      List session journal
// @Description  Session lifecycle and tick failures, oldest first; readings are never journalled. A date-only 'to' covers that whole day.
// @Tags         logs
// @Produce      json
// @Param        from        query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to          query   string  false  "End of range, same formats"  example(2025-08-31)
// @Param        type        query   string  false  "Event type"  Enums(SESSION_OPEN,SESSION_CLOSE,TICK_ERROR)
// @Param        session_id  query   string  false  "Only events of this session (UUID)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, err := journalFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load logs", "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type, "session_id", f.SessionID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD' and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
