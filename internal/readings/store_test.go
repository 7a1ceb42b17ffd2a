package readings

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"antarctica_live/internal/models"
)

// seqGenerator replays a fixed list of temperatures, one second apart.
type seqGenerator struct {
	temps []float64
	base  time.Time
	calls int
	err   error
}

func (g *seqGenerator) Generate() (models.Reading, error) {
	if g.err != nil {
		return models.Reading{}, g.err
	}
	i := g.calls
	g.calls++
	at := g.base.Add(time.Duration(i) * time.Second)
	return models.Reading{
		TemperatureC: g.temps[i%len(g.temps)],
		Timestamp:    at.Format("2006-01-02 15:04:05"),
		CapturedAt:   at,
	}, nil
}

func newSeqStore(t *testing.T, capacity int, temps ...float64) (*Store, *seqGenerator) {
	t.Helper()
	gen := &seqGenerator{temps: temps, base: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}
	s, err := NewStore(capacity, gen)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, gen
}

func TestNewStore_Validation(t *testing.T) {
	if _, err := NewStore(0, &seqGenerator{}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("capacity 0: want ErrInvalidConfig, got %v", err)
	}
	if _, err := NewStore(5, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("nil generator: want ErrInvalidConfig, got %v", err)
	}
}

func TestStore_EmptyViews(t *testing.T) {
	s, _ := newSeqStore(t, 5, -17)

	v := s.CurrentViews()
	if len(v.Snapshot) != 0 || len(v.Table.Rows) != 0 {
		t.Fatalf("expected empty views, got %+v", v)
	}
	if v.Latest != nil {
		t.Fatalf("expected absent latest, got %+v", v.Latest)
	}
	if !reflect.DeepEqual(v.Table.Columns, []string{"temp", "timestamp"}) {
		t.Fatalf("unexpected columns: %v", v.Table.Columns)
	}
}

func TestStore_CapacityInvariant(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("ticks_%d", n), func(t *testing.T) {
			s, _ := newSeqStore(t, 5, -17.1, -16.5)
			for i := 0; i < n; i++ {
				if _, err := s.OnTick(); err != nil {
					t.Fatalf("OnTick: %v", err)
				}
			}
			want := n
			if want > 5 {
				want = 5
			}
			if got := len(s.CurrentViews().Snapshot); got != want {
				t.Fatalf("snapshot len: got %d, want %d", got, want)
			}
			if s.Len() != want {
				t.Fatalf("Len: got %d, want %d", s.Len(), want)
			}
		})
	}
}

func TestStore_ThreeTickScenario(t *testing.T) {
	s, gen := newSeqStore(t, 5, -17.2, -16.8, -17.9)
	for i := 0; i < 3; i++ {
		if _, err := s.OnTick(); err != nil {
			t.Fatalf("OnTick: %v", err)
		}
	}

	v := s.CurrentViews()
	wantTemps := []float64{-17.2, -16.8, -17.9}
	if len(v.Snapshot) != 3 || len(v.Table.Rows) != 3 {
		t.Fatalf("expected 3 readings and rows, got %d/%d", len(v.Snapshot), len(v.Table.Rows))
	}
	for i, r := range v.Snapshot {
		ts := gen.base.Add(time.Duration(i) * time.Second).Format("2006-01-02 15:04:05")
		if r.TemperatureC != wantTemps[i] || r.Timestamp != ts {
			t.Fatalf("snapshot[%d] = %+v, want (%v, %s)", i, r, wantTemps[i], ts)
		}
		row := v.Table.Rows[i]
		if row.TemperatureC != r.TemperatureC || row.Timestamp != r.Timestamp {
			t.Fatalf("row[%d] = %+v does not match reading %+v", i, row, r)
		}
	}
	if v.Latest == nil || *v.Latest != v.Snapshot[2] {
		t.Fatalf("latest = %+v, want %+v", v.Latest, v.Snapshot[2])
	}
}

func TestStore_SevenTicksKeepsTicksThreeThroughSeven(t *testing.T) {
	s, gen := newSeqStore(t, 5, -18, -17.9, -17.8, -17.7, -17.6, -17.5, -17.4)
	for i := 0; i < 7; i++ {
		if _, err := s.OnTick(); err != nil {
			t.Fatalf("OnTick: %v", err)
		}
	}

	v := s.CurrentViews()
	if len(v.Snapshot) != 5 {
		t.Fatalf("snapshot len: got %d, want 5", len(v.Snapshot))
	}
	for i, r := range v.Snapshot {
		tick := i + 2 // zero-based index of ticks 3..7
		if r.TemperatureC != gen.temps[tick] {
			t.Fatalf("snapshot[%d] temp = %v, want %v", i, r.TemperatureC, gen.temps[tick])
		}
		if !r.CapturedAt.Equal(gen.base.Add(time.Duration(tick) * time.Second)) {
			t.Fatalf("snapshot[%d] captured at %v, out of order", i, r.CapturedAt)
		}
	}
}

func TestStore_FIFOEviction(t *testing.T) {
	s, _ := newSeqStore(t, 5, -17, -16.9, -16.8, -16.7, -16.6, -16.5)

	first, _ := s.OnTick()
	second, _ := s.OnTick()
	for i := 0; i < 4; i++ {
		if _, err := s.OnTick(); err != nil {
			t.Fatalf("OnTick: %v", err)
		}
	}

	snap := s.CurrentViews().Snapshot
	for _, r := range snap {
		if r == first {
			t.Fatalf("first reading still retained: %+v", snap)
		}
	}
	if snap[0] != second {
		t.Fatalf("head = %+v, want second reading %+v", snap[0], second)
	}
}

func TestStore_LatestMatchesLastSnapshotElement(t *testing.T) {
	s, _ := newSeqStore(t, 3, -17.3, -16.1, -17.7, -16.4)
	for i := 0; i < 8; i++ {
		r, err := s.OnTick()
		if err != nil {
			t.Fatalf("OnTick: %v", err)
		}
		v := s.CurrentViews()
		if v.Latest == nil || *v.Latest != r {
			t.Fatalf("tick %d: latest %+v, want %+v", i, v.Latest, r)
		}
		if *v.Latest != v.Snapshot[len(v.Snapshot)-1] {
			t.Fatalf("tick %d: latest is not the last snapshot element", i)
		}
	}
}

func TestStore_GenerationFailureLeavesHistoryUntouched(t *testing.T) {
	s, gen := newSeqStore(t, 5, -17.5)
	if _, err := s.OnTick(); err != nil {
		t.Fatalf("OnTick: %v", err)
	}
	before := s.CurrentViews()

	gen.err = errors.New("entropy exhausted")
	if _, err := s.OnTick(); !errors.Is(err, ErrGeneration) {
		t.Fatalf("want ErrGeneration, got %v", err)
	}
	if after := s.CurrentViews(); !reflect.DeepEqual(before, after) {
		t.Fatalf("history changed after failed tick: before %+v, after %+v", before, after)
	}
}

func TestStore_ViewsAreIdempotentAndDetached(t *testing.T) {
	s, _ := newSeqStore(t, 5, -17.2, -16.8)
	_, _ = s.OnTick()
	_, _ = s.OnTick()

	a := s.CurrentViews()
	b := s.CurrentViews()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated views differ: %+v vs %+v", a, b)
	}

	a.Snapshot[0].TemperatureC = 99
	a.Table.Rows[0].TemperatureC = 99
	if c := s.CurrentViews(); c.Snapshot[0].TemperatureC == 99 || c.Table.Rows[0].TemperatureC == 99 {
		t.Fatalf("mutating a view leaked into the store")
	}
}
