package handlers

import (
	"context"
	"sync"

	"antarctica_live/internal/models"
	"antarctica_live/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSessions struct {
	mu sync.Mutex

	openInfo models.SessionInfo
	openErr  error
	closeErr error
	views    models.Views
	viewsErr error
	subErr   error

	// updates is handed out by Subscribe; nil means a fresh channel
	// pre-loaded with views.
	updates chan models.Views

	openCalls    int
	closedIDs    []string
	lastViewsID  string
	unsubscribed bool
}

func (m *mockSessions) Open(ctx context.Context) (models.SessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openCalls++
	return m.openInfo, m.openErr
}

func (m *mockSessions) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closedIDs = append(m.closedIDs, id)
	return m.closeErr
}

func (m *mockSessions) CloseAll(ctx context.Context) {}

func (m *mockSessions) Views(ctx context.Context, id string) (models.Views, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastViewsID = id
	return m.views, m.viewsErr
}

func (m *mockSessions) Subscribe(ctx context.Context, id string) (<-chan models.Views, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subErr != nil {
		return nil, nil, m.subErr
	}
	ch := m.updates
	if ch == nil {
		ch = make(chan models.Views, 1)
		ch <- m.views
	}
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.unsubscribed = true
	}, nil
}

func (m *mockSessions) closed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.closedIDs...)
}

type mockMonitoring struct {
	session    models.SessionInfo
	sessions   []models.SessionInfo
	err        error
	lastID     string
	lastActive bool
}

func (m *mockMonitoring) GetSession(ctx context.Context, id string) (models.SessionInfo, error) {
	m.lastID = id
	return m.session, m.err
}

func (m *mockMonitoring) ListSessions(ctx context.Context, activeOnly bool) ([]models.SessionInfo, error) {
	m.lastActive = activeOnly
	return m.sessions, m.err
}

type mockEventLog struct {
	resp  []models.Event
	err   error
	last  service.LogFilter
	calls int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.calls++
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

const testSessionID = "6f1c2b8e-1d2a-4b7e-9c3f-0a1b2c3d4e5f"

func sampleViews() models.Views {
	a := models.Reading{TemperatureC: -17.3, Timestamp: "2025-01-01 00:00:00"}
	b := models.Reading{TemperatureC: -16.2, Timestamp: "2025-01-01 00:00:03"}
	return models.Views{
		Snapshot: []models.Reading{a, b},
		Table: models.Table{
			Columns: []string{models.ColumnTemp, models.ColumnTimestamp},
			Rows: []models.TableRow{
				{TemperatureC: a.TemperatureC, Timestamp: a.Timestamp},
				{TemperatureC: b.TemperatureC, Timestamp: b.Timestamp},
			},
		},
		Latest: &b,
	}
}
