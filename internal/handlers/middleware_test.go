package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"antarctica_live/internal/logger"
	"antarctica_live/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + an endpoint echoing the id
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/sessions/:id", h.sessionIDMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "sessionId": sessionID(c)})
	})
	return r
}

func TestSessionIDMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		errMsg string
	}{
		{name: "blank id", path: "/sessions/%20", errMsg: "missing session id"},
		{name: "not a uuid", path: "/sessions/abc", errMsg: "invalid session id"},
		{name: "truncated uuid", path: "/sessions/6f1c2b8e-1d2a-4b7e-9c3f", errMsg: "invalid session id"},
	}

	r := newMiddlewareOnlyRouter(&service.Service{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d; want 400", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["error"] != tc.errMsg {
				t.Fatalf("error=%q; want %q", body["error"], tc.errMsg)
			}
		})
	}
}

func TestSessionIDMiddleware_Success(t *testing.T) {
	r := newMiddlewareOnlyRouter(&service.Service{})

	const id = "6F1C2B8E-1D2A-4B7E-9C3F-0A1B2C3D4E5F"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		OK        bool   `json:"ok"`
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.OK || body.SessionID != strings.ToLower(id) {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{}, logger.Nop())
	r := gin.New()
	r.Use(h.requestLogger)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "pong" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Body.String())
	}
}
