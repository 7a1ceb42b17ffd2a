package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"antarctica_live/internal/models"
	"antarctica_live/internal/readings"
)

// ErrSessionClosed is returned when a session stopped while a request was in flight.
var ErrSessionClosed = errors.New("session closed")

// session owns one store. Only the run goroutine touches the store, so
// requests from handlers travel over channels.
type session struct {
	info     models.SessionInfo // mutated by run only; safe to read after done
	store    *readings.Store
	interval time.Duration
	onTick   func(*session, models.Reading, error)

	// idleTimeout > 0 makes run call onIdle once when nobody has subscribed
	// or asked for views for that long.
	idleTimeout time.Duration
	onIdle      func(*session)

	viewsReq chan chan models.Views
	subReq   chan chan models.Views
	unsubReq chan chan models.Views

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(info models.SessionInfo, store *readings.Store, interval time.Duration, onTick func(*session, models.Reading, error)) *session {
	return &session{
		info:     info,
		store:    store,
		interval: interval,
		onTick:   onTick,
		viewsReq: make(chan chan models.Views),
		subReq:   make(chan chan models.Views),
		unsubReq: make(chan chan models.Views),
		done:     make(chan struct{}),
	}
}

// start launches the owner goroutine. The first tick runs before any
// request is served.
func (s *session) start(wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.run(ctx)
	}()
}

func (s *session) stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *session) run(ctx context.Context) {
	defer close(s.done)

	subs := make(map[chan models.Views]struct{})
	defer func() {
		for ch := range subs {
			close(ch)
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	lastSeen := time.Now()
	idleReported := false

	s.tick(subs)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(subs)
			if !idleReported && s.idle(len(subs), lastSeen) {
				idleReported = true
				s.onIdle(s)
			}
		case reply := <-s.viewsReq:
			lastSeen = time.Now()
			reply <- s.store.CurrentViews()
		case ch := <-s.subReq:
			lastSeen = time.Now()
			subs[ch] = struct{}{}
			offer(ch, s.store.CurrentViews())
		case ch := <-s.unsubReq:
			lastSeen = time.Now()
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
		}
	}
}

func (s *session) idle(subscribers int, lastSeen time.Time) bool {
	return s.idleTimeout > 0 && s.onIdle != nil &&
		subscribers == 0 && time.Since(lastSeen) >= s.idleTimeout
}

func (s *session) tick(subs map[chan models.Views]struct{}) {
	r, err := s.store.OnTick()
	if err == nil {
		s.info.Ticks++
		s.info.LastTickAt = r.CapturedAt
		views := s.store.CurrentViews()
		for ch := range subs {
			offer(ch, views)
		}
	}
	if s.onTick != nil {
		s.onTick(s, r, err)
	}
}

// offer replaces whatever the subscriber has not read yet with v.
func offer(ch chan models.Views, v models.Views) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

func (s *session) views(ctx context.Context) (models.Views, error) {
	reply := make(chan models.Views, 1)
	select {
	case s.viewsReq <- reply:
	case <-s.done:
		return models.Views{}, ErrSessionClosed
	case <-ctx.Done():
		return models.Views{}, ctx.Err()
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return models.Views{}, ctx.Err()
	}
}

// subscribe registers a one-slot channel that receives the current views
// right away and fresh views after every successful tick. The channel is
// closed by cancel or when the session ends.
func (s *session) subscribe(ctx context.Context) (<-chan models.Views, func(), error) {
	ch := make(chan models.Views, 1)
	select {
	case s.subReq <- ch:
	case <-s.done:
		return nil, nil, ErrSessionClosed
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			select {
			case s.unsubReq <- ch:
			case <-s.done:
			}
		})
	}
	return ch, cancel, nil
}
