package models

import "time"

// SessionInfo describes one display session and its private store.
type SessionInfo struct {
	ID         string     `json:"id"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Capacity   int        `json:"capacity"`
	IntervalMs int64      `json:"interval_ms"`
	Ticks      int        `json:"ticks"`
	LastTickAt time.Time  `json:"last_tick_at,omitempty"`
	Active     bool       `json:"active"`
}
