package models

import (
	"fmt"
	"time"
)

// Reading is a single synthetic temperature observation.
type Reading struct {
	TemperatureC float64   `json:"temp"`        // °C, one decimal place
	Timestamp    string    `json:"timestamp"`   // YYYY-MM-DD HH:MM:SS
	CapturedAt   time.Time `json:"captured_at"` // same instant, machine readable
}

// Display renders the temperature the way the value box shows it.
func (r Reading) Display() string {
	return fmt.Sprintf("%.1f C", r.TemperatureC)
}

// TableRow is one row of the table projection.
type TableRow struct {
	TemperatureC float64 `json:"temp"`
	Timestamp    string  `json:"timestamp"`
}

// Table column names, in order.
const (
	ColumnTemp      = "temp"
	ColumnTimestamp = "timestamp"
)

// Table is the two-column tabular projection of the rolling history.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// Views bundles the three projections handed to display consumers.
// Latest is nil until the first successful tick.
type Views struct {
	Snapshot []Reading `json:"snapshot"`
	Table    Table     `json:"table"`
	Latest   *Reading  `json:"latest"`
}
