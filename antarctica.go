package antarctica_live

import "time"

// Reference configuration of the live dashboard. These are the values the
// service runs with when configs/config.yml and the environment say nothing.
const (
	DefaultUpdateInterval  = 3 * time.Second
	DefaultDequeSize       = 5
	DefaultLowC            = -18.0 // °C
	DefaultHighC           = -16.0 // °C
	DefaultTimestampLayout = "2006-01-02 15:04:05"
	DefaultTitle           = "Live Data Example using Antarctica data"
	DefaultSourceURL       = "https://github.com/Mahesh1416/cintel-05-cintel"
	DefaultIdleTimeout     = time.Minute // sessions nobody reads are reaped after this
	DefaultPort            = "8080"
)

// Journal event types.
const (
	EventSessionOpen  = "SESSION_OPEN"
	EventSessionClose = "SESSION_CLOSE"
	EventTickError    = "TICK_ERROR"
)
