package models

import "time"

// Event is a single journal entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	SessionID   string    `json:"session_id,omitempty"`
	Type        string    `json:"type"`        // SESSION_OPEN | SESSION_CLOSE | TICK_ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
