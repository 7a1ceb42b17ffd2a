package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/repository"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

type MonitoringService struct {
	sessionRepo repository.SessionRepo
}

func NewMonitoringService(sessionRepo repository.SessionRepo) *MonitoringService {
	return &MonitoringService{sessionRepo: sessionRepo}
}

// GetSession returns the bookkeeping row of one session.
func (s *MonitoringService) GetSession(ctx context.Context, id string) (models.SessionInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.SessionInfo{}, ErrSessionNotFound
	}
	info, err := s.sessionRepo.Load(ctx, id)
	if err != nil {
		return models.SessionInfo{}, err
	}
	if info.ID == "" {
		return models.SessionInfo{}, ErrSessionNotFound
	}
	return normalizeSession(info), nil
}

// ListSessions returns known sessions, optionally only the live ones.
func (s *MonitoringService) ListSessions(ctx context.Context, activeOnly bool) ([]models.SessionInfo, error) {
	list, err := s.sessionRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = normalizeSession(list[i])
	}
	return list, nil
}

func normalizeSession(info models.SessionInfo) models.SessionInfo {
	info.OpenedAt = toUTC(info.OpenedAt)
	info.LastTickAt = toUTC(info.LastTickAt)
	if info.ClosedAt != nil {
		c := toUTC(*info.ClosedAt)
		info.ClosedAt = &c
	}
	return info
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
