package service

import (
	"context"

	"antarctica_live/internal/logger"
	"antarctica_live/internal/models"
	"antarctica_live/internal/repository"
)

// Sessions owns the live display sessions. Every session has a private
// rolling store driven by its own timer.
type Sessions interface {
	Open(ctx context.Context) (models.SessionInfo, error)
	Close(ctx context.Context, id string) error
	CloseAll(ctx context.Context)
	Views(ctx context.Context, id string) (models.Views, error)
	Subscribe(ctx context.Context, id string) (<-chan models.Views, func(), error)
}

// Monitoring exposes read-only session bookkeeping.
type Monitoring interface {
	GetSession(ctx context.Context, id string) (models.SessionInfo, error)
	ListSessions(ctx context.Context, activeOnly bool) ([]models.SessionInfo, error)
}

// EventLog exposes the session journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Service aggregates all sub-services.
type Service struct {
	Sessions
	Monitoring
	EventLog
}

// NewService wires the repositories into concrete services.
func NewService(repos *repository.Repository, cfg SessionConfig, log *logger.Logger, observers ...Observer) *Service {
	return &Service{
		Sessions:   NewSessionService(repos.SessionRepo, repos.EventRepo, cfg, log, observers...),
		Monitoring: NewMonitoringService(repos.SessionRepo),
		EventLog:   NewEventLogService(repos.EventRepo),
	}
}
