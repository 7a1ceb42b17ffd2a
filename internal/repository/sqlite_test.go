package repository_test

import (
	"context"
	"testing"
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/repository"
	"antarctica_live/internal/repository/db"
)

// Round trips through a real in-memory SQLite database.
func TestSQLite_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn)
	ctx := context.Background()
	opened := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	s := models.SessionInfo{ID: "s-1", OpenedAt: opened, Capacity: 5, IntervalMs: 3000, Active: true}
	if err := repos.SessionRepo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Ticks = 2
	s.LastTickAt = opened.Add(3 * time.Second)
	if err := repos.SessionRepo.Save(ctx, s); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := repos.SessionRepo.Load(ctx, "s-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Ticks != 2 || !got.LastTickAt.Equal(s.LastTickAt) || !got.OpenedAt.Equal(opened) || !got.Active {
		t.Fatalf("unexpected session: %+v", got)
	}

	closed := opened.Add(time.Minute)
	s.ClosedAt = &closed
	s.Active = false
	if err := repos.SessionRepo.Save(ctx, s); err != nil {
		t.Fatalf("Save close: %v", err)
	}
	active, err := repos.SessionRepo.List(ctx, true)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active sessions, got %+v", active)
	}
	all, err := repos.SessionRepo.List(ctx, false)
	if err != nil || len(all) != 1 || all[0].ClosedAt == nil {
		t.Fatalf("List all = %+v, %v", all, err)
	}

	if err := repos.EventRepo.Append(ctx, models.Event{
		OccurredAt:  opened,
		SessionID:   "s-2",
		Type:        "SESSION_OPEN",
		Description: "other session",
	}); err != nil {
		t.Fatalf("Append other session: %v", err)
	}
	for i, typ := range []string{"SESSION_OPEN", "TICK_ERROR", "SESSION_CLOSE"} {
		err := repos.EventRepo.Append(ctx, models.Event{
			OccurredAt:  opened.Add(time.Duration(i) * time.Second),
			SessionID:   "s-1",
			Type:        typ,
			Description: typ,
			Metadata:    map[string]any{"i": i},
		})
		if err != nil {
			t.Fatalf("Append %s: %v", typ, err)
		}
	}

	allEvents, err := repos.EventRepo.List(ctx, repository.EventQuery{})
	if err != nil {
		t.Fatalf("List all events: %v", err)
	}
	if len(allEvents) != 4 {
		t.Fatalf("want 4 events, got %d", len(allEvents))
	}

	events, err := repos.EventRepo.List(ctx, repository.EventQuery{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("List events: %v", err)
	}
	if len(events) != 3 || events[0].Type != "SESSION_OPEN" || events[2].Type != "SESSION_CLOSE" {
		t.Fatalf("unexpected events: %+v", events)
	}

	errorsOnly, err := repos.EventRepo.List(ctx, repository.EventQuery{From: opened, To: opened.Add(time.Hour), Type: "tick_error"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(errorsOnly) != 1 || errorsOnly[0].SessionID != "s-1" {
		t.Fatalf("unexpected filtered events: %+v", errorsOnly)
	}
}
