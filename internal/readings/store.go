// Package readings holds the rolling history of synthetic temperature
// readings and the views derived from it.
package readings

import (
	"errors"
	"fmt"

	"antarctica_live/internal/models"
)

var (
	// ErrGeneration wraps any failure to produce a reading. The history is
	// left untouched when it is returned.
	ErrGeneration = errors.New("reading generation failed")
	// ErrInvalidConfig is returned for unusable store or generator settings.
	ErrInvalidConfig = errors.New("invalid readings config")
)

// Generator produces one new reading per call.
type Generator interface {
	Generate() (models.Reading, error)
}

// Store is a fixed-capacity, FIFO-evicting history of readings.
// It is not safe for concurrent use; each display session owns its own.
type Store struct {
	capacity int
	gen      Generator
	history  []models.Reading
}

// NewStore returns an empty store holding at most capacity readings.
func NewStore(capacity int, gen Generator) (*Store, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, capacity)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: generator is required", ErrInvalidConfig)
	}
	return &Store{
		capacity: capacity,
		gen:      gen,
		history:  make([]models.Reading, 0, capacity),
	}, nil
}

// OnTick generates one reading and appends it, evicting the oldest reading
// when the store is full. It returns the appended reading.
func (s *Store) OnTick() (models.Reading, error) {
	r, err := s.gen.Generate()
	if err != nil {
		return models.Reading{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	s.push(r)
	return r, nil
}

func (s *Store) push(r models.Reading) {
	if len(s.history) >= s.capacity {
		copy(s.history, s.history[1:])
		s.history[len(s.history)-1] = r
		return
	}
	s.history = append(s.history, r)
}

// CurrentViews projects the history into a snapshot, a table and the latest
// reading. It never mutates the store.
func (s *Store) CurrentViews() models.Views {
	snapshot := make([]models.Reading, len(s.history))
	copy(snapshot, s.history)

	rows := make([]models.TableRow, 0, len(snapshot))
	for _, r := range snapshot {
		rows = append(rows, models.TableRow{TemperatureC: r.TemperatureC, Timestamp: r.Timestamp})
	}

	views := models.Views{
		Snapshot: snapshot,
		Table: models.Table{
			Columns: []string{models.ColumnTemp, models.ColumnTimestamp},
			Rows:    rows,
		},
	}
	if n := len(snapshot); n > 0 {
		latest := snapshot[n-1]
		views.Latest = &latest
	}
	return views
}

// Len reports how many readings are retained.
func (s *Store) Len() int { return len(s.history) }

// Capacity reports the maximum number of retained readings.
func (s *Store) Capacity() int { return s.capacity }
