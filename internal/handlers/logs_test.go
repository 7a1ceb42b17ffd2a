package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/service"
)

func TestLogsHandler_PassesFilter(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.Event{
		{EventID: "e1", OccurredAt: now, SessionID: testSessionID, Type: "SESSION_OPEN", Description: "session opened"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), SessionID: testSessionID, Type: "TICK_ERROR", Description: "reading generation failed"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) +
		"&to=" + now.Add(2*time.Second).Format(time.RFC3339) +
		"&type=tick_error&session_id=" + testSessionID
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int            `json:"count"`
		Events []models.Event `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if !logs.last.From.Equal(now) || !logs.last.To.Equal(now.Add(2*time.Second)) {
		t.Fatalf("range = [%v, %v]", logs.last.From, logs.last.To)
	}
	if logs.last.Type != "tick_error" || logs.last.SessionID != testSessionID {
		t.Fatalf("filter = %+v", logs.last)
	}
}

func TestLogsHandler_BadRequests(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		svcErr    error
		wantCalls int
	}{
		{name: "bad from", query: "?from=notatime"},
		{name: "bad to", query: "?to=31/12/2025"},
		{
			name:      "filter refused by service",
			query:     "?session_id=s-1",
			svcErr:    fmt.Errorf("%w: session id %q is not a uuid", service.ErrInvalidFilter, "s-1"),
			wantCalls: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &mockEventLog{err: tc.svcErr}
			r := newTestRouter(&service.Service{EventLog: logs})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs"+tc.query, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d; want 400, body=%s", w.Code, w.Body.String())
			}
			if logs.calls != tc.wantCalls {
				t.Fatalf("service calls = %d; want %d", logs.calls, tc.wantCalls)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Fatalf("want an error body, got %s", w.Body.String())
			}
		})
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?to=2025-03-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 3, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.last.To.Equal(want) {
		t.Fatalf("to = %v; want %v", logs.last.To, want)
	}
}

func TestLogsHandler_ServiceError(t *testing.T) {
	logs := &mockEventLog{err: errors.New("db down")}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-08-27T15:04:05Z", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27T18:04:05+03:00", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27 15:04:05", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), true},
		{"27/08/2025", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseQueryTime(%q) err=%v; ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Fatalf("parseQueryTime(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
