package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxMsgSize   = 1 << 12 // 4 KB
	closeTimeout = 5 * time.Second
)

// Envelope types pushed to the browser.
const (
	msgSession = "session"
	msgViews   = "views"
	msgError   = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live views stream
// @Description  Upgrades to a WebSocket, opens a private session and pushes its views after every tick. The session is closed on disconnect.
// @Tags         dashboard
// @Success      101
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := c.Request.Context()
	info, err := h.services.Sessions.Open(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_session_open_failed", "err", err)
		}
		_ = h.write(conn, wsEnvelope{Type: msgError, Error: errOpenSession})
		return
	}
	defer h.closeSessionQuietly(info.ID)

	updates, unsubscribe, err := h.services.Sessions.Subscribe(ctx, info.ID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_subscribe_failed", "session_id", info.ID, "err", err)
		}
		_ = h.write(conn, wsEnvelope{Type: msgError, Error: errLoadViews})
		return
	}
	defer unsubscribe()

	if err := h.write(conn, wsEnvelope{Type: msgSession, Data: info}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "session_id", info.ID, "err", err)
		}
		return
	}

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Writer/select loop. The subscription delivers the current views first.
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "session_id", info.ID, "err", err)
				}
				return
			}
		case views, ok := <-updates:
			if !ok {
				return
			}
			if err := h.sendViews(conn, views); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "session_id", info.ID, "err", err)
				}
				return
			}
		}
	}
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) sendViews(conn *websocket.Conn, views models.Views) error {
	return h.write(conn, wsEnvelope{Type: msgViews, Data: views})
}

// write sends one envelope with a write deadline.
func (h *Handler) write(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

// closeSessionQuietly ends a stream's session; the request context is
// already done at this point.
func (h *Handler) closeSessionQuietly(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	err := h.services.Sessions.Close(ctx, id)
	if err != nil && !errors.Is(err, service.ErrSessionNotFound) && h.log != nil {
		h.log.Warnw("ws_session_close_failed", "session_id", id, "err", err)
	}
}
