package service

import (
	"time"

	"antarctica_live/internal/readings"
)

// LogFilter narrows journal queries. Zero fields do not filter.
type LogFilter struct {
	From      time.Time // inclusive
	To        time.Time // inclusive
	Type      string    // SESSION_OPEN, SESSION_CLOSE or TICK_ERROR, any case
	SessionID string
}

// SessionConfig is what every new session is built from.
type SessionConfig struct {
	Interval time.Duration
	// IdleTimeout closes a session that has had no subscriber and no view
	// request for this long. Zero disables reaping.
	IdleTimeout time.Duration
	Readings    readings.Config
}
