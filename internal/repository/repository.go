package repository

import (
	"context"
	"database/sql"
	"time"

	"antarctica_live/internal/models"
)

// SessionRepo keeps one row per display session. It never stores readings.
type SessionRepo interface {
	Save(ctx context.Context, s models.SessionInfo) error
	Load(ctx context.Context, id string) (models.SessionInfo, error)
	List(ctx context.Context, activeOnly bool) ([]models.SessionInfo, error)
}

// EventQuery selects journal entries. Zero fields do not filter.
type EventQuery struct {
	From      time.Time // inclusive
	To        time.Time // inclusive
	Type      string
	SessionID string
}

// EventRepo is the append-only session journal.
type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, q EventQuery) ([]models.Event, error)
}

type Repository struct {
	SessionRepo SessionRepo
	EventRepo   EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SessionRepo: NewSessionSQLite(db),
		EventRepo:   NewEventSQLite(db),
	}
}
