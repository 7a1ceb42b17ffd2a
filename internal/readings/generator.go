package readings

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"antarctica_live/internal/models"

	"github.com/shopspring/decimal"
)

const temperaturePlaces = 1

var (
	errRandomOutOfRange = errors.New("random source returned a value outside [0, 1)")
	errClockUnavailable = errors.New("clock returned the zero time")
)

// SyntheticGenerator draws temperatures uniformly from [low, high] and
// stamps them with the current wall-clock time.
type SyntheticGenerator struct {
	lowC   float64
	highC  float64
	layout string
	random func() float64
	now    func() time.Time
}

// GeneratorOption customises a SyntheticGenerator.
type GeneratorOption func(*SyntheticGenerator)

// WithRandom replaces the uniform [0, 1) source.
func WithRandom(f func() float64) GeneratorOption {
	return func(g *SyntheticGenerator) { g.random = f }
}

// WithClock replaces the wall clock.
func WithClock(f func() time.Time) GeneratorOption {
	return func(g *SyntheticGenerator) { g.now = f }
}

// NewSyntheticGenerator validates the bounds and layout. Both bounds must sit
// on the 0.1 grid so a rounded draw can never fall outside them.
func NewSyntheticGenerator(lowC, highC float64, layout string, opts ...GeneratorOption) (*SyntheticGenerator, error) {
	for _, v := range []float64{lowC, highC} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: bound %v is not a finite number", ErrInvalidConfig, v)
		}
		if !onGrid(v) {
			return nil, fmt.Errorf("%w: bound %v has more than %d decimal place", ErrInvalidConfig, v, temperaturePlaces)
		}
	}
	if lowC > highC {
		return nil, fmt.Errorf("%w: low %.1f is above high %.1f", ErrInvalidConfig, lowC, highC)
	}
	if layout == "" {
		return nil, fmt.Errorf("%w: timestamp layout is empty", ErrInvalidConfig)
	}

	g := &SyntheticGenerator{
		lowC:   lowC,
		highC:  highC,
		layout: layout,
		random: rand.Float64,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate implements Generator.
func (g *SyntheticGenerator) Generate() (models.Reading, error) {
	f := g.random()
	if f < 0 || f >= 1 || math.IsNaN(f) {
		return models.Reading{}, errRandomOutOfRange
	}
	now := g.now()
	if now.IsZero() {
		return models.Reading{}, errClockUnavailable
	}

	temp := RoundTemperature(g.lowC + f*(g.highC-g.lowC))
	temp = math.Max(g.lowC, math.Min(g.highC, temp))

	return models.Reading{
		TemperatureC: temp,
		Timestamp:    now.Format(g.layout),
		CapturedAt:   now,
	}, nil
}

// RoundTemperature rounds half away from zero to one decimal place.
func RoundTemperature(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(temperaturePlaces).Float64()
	return out
}

func onGrid(v float64) bool {
	d := decimal.NewFromFloat(v)
	return d.Round(temperaturePlaces).Equal(d)
}

// Config gathers the settings needed to build a store with a synthetic
// generator.
type Config struct {
	Capacity        int
	LowC            float64
	HighC           float64
	TimestampLayout string
}

// New builds an empty store backed by a SyntheticGenerator.
func New(cfg Config, opts ...GeneratorOption) (*Store, error) {
	gen, err := NewSyntheticGenerator(cfg.LowC, cfg.HighC, cfg.TimestampLayout, opts...)
	if err != nil {
		return nil, err
	}
	return NewStore(cfg.Capacity, gen)
}
