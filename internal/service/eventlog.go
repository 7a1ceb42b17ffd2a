package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	antarctica "antarctica_live"
	"antarctica_live/internal/models"
	"antarctica_live/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidFilter wraps every journal filter the service refuses to run.
var ErrInvalidFilter = errors.New("invalid journal filter")

var journalTypes = map[string]struct{}{
	antarctica.EventSessionOpen:  {},
	antarctica.EventSessionClose: {},
	antarctica.EventTickError:    {},
}

// EventLogService answers journal queries for sessions, live or closed.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns the journal entries matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	q, err := journalQuery(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}

// journalQuery normalises f into a repository query: times in UTC, the
// type upper-cased and known, the session id a canonical UUID.
func journalQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		From: toUTC(f.From),
		To:   toUTC(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, fmt.Errorf("%w: from must not be after to", ErrInvalidFilter)
	}
	if q.Type != "" {
		if _, ok := journalTypes[q.Type]; !ok {
			return repository.EventQuery{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidFilter, q.Type)
		}
	}
	if id := strings.TrimSpace(f.SessionID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return repository.EventQuery{}, fmt.Errorf("%w: session id %q is not a uuid", ErrInvalidFilter, id)
		}
		q.SessionID = parsed.String()
	}
	return q, nil
}
