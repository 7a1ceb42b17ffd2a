package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"antarctica_live/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite {
	return &SessionSQLite{db: db}
}

var _ SessionRepo = (*SessionSQLite)(nil)

const (
	upsertSessionSQL = `
		INSERT INTO sessions (id, opened_at, closed_at, capacity, interval_ms, ticks, last_tick_at, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			closed_at=excluded.closed_at,
			ticks=excluded.ticks,
			last_tick_at=excluded.last_tick_at,
			active=excluded.active
	`

	selectSessionColumns = `SELECT id, opened_at, closed_at, capacity, interval_ms, ticks, last_tick_at, active FROM sessions`

	selectSessionByIDSQL = selectSessionColumns + ` WHERE id = ?`
)

// Save inserts the session row or updates its mutable columns.
func (r *SessionSQLite) Save(ctx context.Context, s models.SessionInfo) error {
	if s.ID == "" {
		return errors.New("save session: empty id")
	}
	opened := s.OpenedAt
	if opened.IsZero() {
		opened = time.Now()
	}

	var closed, lastTick sql.NullTime
	if s.ClosedAt != nil {
		closed = sql.NullTime{Time: s.ClosedAt.UTC(), Valid: true}
	}
	if !s.LastTickAt.IsZero() {
		lastTick = sql.NullTime{Time: s.LastTickAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, upsertSessionSQL,
		s.ID,
		opened.UTC(),
		closed,
		s.Capacity,
		s.IntervalMs,
		s.Ticks,
		lastTick,
		s.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert session %q: %w", s.ID, err)
	}
	return nil
}

// Load fetches one session. A missing row yields the zero value and no error.
func (r *SessionSQLite) Load(ctx context.Context, id string) (models.SessionInfo, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, selectSessionByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SessionInfo{}, nil
		}
		return models.SessionInfo{}, fmt.Errorf("select session %q: %w", id, err)
	}
	return s, nil
}

// List returns sessions ordered by opening time.
func (r *SessionSQLite) List(ctx context.Context, activeOnly bool) ([]models.SessionInfo, error) {
	q := selectSessionColumns
	var args []any
	if activeOnly {
		q += " WHERE active = ?"
		args = append(args, true)
	}
	q += " ORDER BY opened_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]models.SessionInfo, 0, 8)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.SessionInfo, error) {
	var (
		s        models.SessionInfo
		closed   sql.NullTime
		lastTick sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&s.OpenedAt,
		&closed,
		&s.Capacity,
		&s.IntervalMs,
		&s.Ticks,
		&lastTick,
		&s.Active,
	); err != nil {
		return models.SessionInfo{}, err
	}
	s.OpenedAt = s.OpenedAt.UTC()
	if closed.Valid {
		c := closed.Time.UTC()
		s.ClosedAt = &c
	}
	if lastTick.Valid {
		s.LastTickAt = lastTick.Time.UTC()
	}
	return s, nil
}
