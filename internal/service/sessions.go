package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	antarctica "antarctica_live"
	"antarctica_live/internal/logger"
	"antarctica_live/internal/models"
	"antarctica_live/internal/readings"
	"antarctica_live/internal/repository"

	"github.com/google/uuid"
)

// Observer is notified about session lifecycle and every tick outcome.
// Callbacks run on the session goroutine and must not block for long.
type Observer interface {
	SessionOpened(id string)
	SessionClosed(id string)
	TickObserved(id string, r models.Reading, err error)
}

const persistTimeout = 2 * time.Second

// Reasons recorded on SESSION_CLOSE events.
const (
	closeRequested = "requested"
	closeIdle      = "idle"
)

type SessionService struct {
	cfg         SessionConfig
	sessionRepo repository.SessionRepo
	eventRepo   repository.EventRepo
	observers   []Observer
	log         *logger.Logger

	newStore func() (*readings.Store, error)
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	wg       sync.WaitGroup
}

var _ Sessions = (*SessionService)(nil)

func NewSessionService(sessionRepo repository.SessionRepo, eventRepo repository.EventRepo, cfg SessionConfig, log *logger.Logger, observers ...Observer) *SessionService {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = antarctica.DefaultUpdateInterval
	}
	return &SessionService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		observers:   observers,
		log:         log,
		newStore:    func() (*readings.Store, error) { return readings.New(cfg.Readings) },
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Open creates a session with its own empty store and starts its timer.
func (s *SessionService) Open(ctx context.Context) (models.SessionInfo, error) {
	store, err := s.newStore()
	if err != nil {
		return models.SessionInfo{}, fmt.Errorf("open session: %w", err)
	}

	info := models.SessionInfo{
		ID:         uuid.NewString(),
		OpenedAt:   s.now().UTC(),
		Capacity:   store.Capacity(),
		IntervalMs: s.cfg.Interval.Milliseconds(),
		Active:     true,
	}
	if err := s.sessionRepo.Save(ctx, info); err != nil {
		return models.SessionInfo{}, fmt.Errorf("open session: %w", err)
	}
	s.journal(ctx, info.ID, antarctica.EventSessionOpen, "session opened", map[string]any{
		"capacity":    info.Capacity,
		"interval_ms": info.IntervalMs,
	})

	for _, o := range s.observers {
		o.SessionOpened(info.ID)
	}

	sess := newSession(info, store, s.cfg.Interval, s.observeTick)
	sess.idleTimeout = s.cfg.IdleTimeout
	sess.onIdle = s.reapIdle
	sess.start(&s.wg)
	s.mu.Lock()
	s.sessions[info.ID] = sess
	s.mu.Unlock()

	s.log.Infow("session_opened", "session_id", info.ID, "capacity", info.Capacity, "interval", s.cfg.Interval)
	return info, nil
}

// observeTick runs on the session goroutine after every tick.
func (s *SessionService) observeTick(sess *session, r models.Reading, tickErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	id := sess.info.ID
	if tickErr != nil {
		s.log.Errorw("tick_failed", "session_id", id, "err", tickErr)
		s.journal(ctx, id, antarctica.EventTickError, "reading generation failed", map[string]any{
			"error": tickErr.Error(),
		})
	} else if err := s.sessionRepo.Save(ctx, sess.info); err != nil {
		s.log.Warnw("session_save_failed", "session_id", id, "err", err)
	}

	for _, o := range s.observers {
		o.TickObserved(id, r, tickErr)
	}
}

// Close stops a session and marks its row inactive.
func (s *SessionService) Close(ctx context.Context, id string) error {
	return s.close(ctx, strings.TrimSpace(id), closeRequested)
}

// reapIdle runs on the session goroutine, which holds a wg slot, so the
// Add below never races with CloseAll's Wait.
func (s *SessionService) reapIdle(sess *session) {
	id := sess.info.ID
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*persistTimeout)
		defer cancel()
		s.log.Infow("session_idle", "session_id", id, "idle_timeout", s.cfg.IdleTimeout)
		if err := s.close(ctx, id, closeIdle); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.log.Warnw("session_reap_failed", "session_id", id, "err", err)
		}
	}()
}

func (s *SessionService) close(ctx context.Context, id, reason string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.stop()
	select {
	case <-sess.done:
		s.finishClose(ctx, sess, reason)
		return nil
	case <-ctx.Done():
		// The session is already out of the registry; its row, journal entry
		// and observers are settled once the goroutine actually exits.
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			<-sess.done
			s.finishClose(ctx, sess, reason)
		}()
		return ctx.Err()
	}
}

// finishClose records a stopped session. It ignores the caller's
// cancellation so the row never stays active.
func (s *SessionService) finishClose(parent context.Context, sess *session, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), persistTimeout)
	defer cancel()

	info := sess.info
	id := info.ID
	closed := s.now().UTC()
	info.ClosedAt = &closed
	info.Active = false
	if err := s.sessionRepo.Save(ctx, info); err != nil {
		s.log.Warnw("session_save_failed", "session_id", id, "err", err)
	}
	s.journal(ctx, id, antarctica.EventSessionClose, "session closed", map[string]any{
		"ticks":  info.Ticks,
		"reason": reason,
	})

	for _, o := range s.observers {
		o.SessionClosed(id)
	}
	s.log.Infow("session_closed", "session_id", id, "ticks", info.Ticks, "reason", reason)
}

// CloseAll stops every live session and waits for their goroutines.
func (s *SessionService) CloseAll(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.Close(ctx, id); err != nil {
			s.log.Warnw("session_close_failed", "session_id", id, "err", err)
		}
	}
	s.wg.Wait()
}

// Views returns freshly computed projections of one session's store.
func (s *SessionService) Views(ctx context.Context, id string) (models.Views, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.Views{}, err
	}
	return sess.views(ctx)
}

// Subscribe returns a channel of views pushed after every tick and a
// function that ends the subscription.
func (s *SessionService) Subscribe(ctx context.Context, id string) (<-chan models.Views, func(), error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	return sess.subscribe(ctx)
}

func (s *SessionService) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) journal(ctx context.Context, sessionID, typ, desc string, meta map[string]any) {
	err := s.eventRepo.Append(ctx, models.Event{
		OccurredAt:  s.now().UTC(),
		SessionID:   sessionID,
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("journal_append_failed", "session_id", sessionID, "type", typ, "err", err)
	}
}
