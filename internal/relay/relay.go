// Package relay forwards every new reading to external brokers.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"antarctica_live/internal/logger"
	"antarctica_live/internal/models"
)

// SinkQueue is the error label used when a reading is dropped because the
// delivery queue is full.
const SinkQueue = "queue"

const (
	defaultTimeout   = 2 * time.Second
	defaultQueueSize = 64
)

// Publisher delivers one payload to a sink. key identifies the session.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

// ErrorCounter is told about every failed or dropped delivery.
type ErrorCounter interface {
	RelayError(sink string)
}

// Message is the JSON document sent to every sink.
type Message struct {
	SessionID string         `json:"session_id"`
	Reading   models.Reading `json:"reading"`
}

type delivery struct {
	key     string
	payload []byte
}

// Relay observes sessions and fans new readings out to its publishers.
// TickObserved only enqueues; a single worker does the publishing, so a
// slow broker never holds up the session that produced the reading.
type Relay struct {
	pubs    []Publisher
	timeout time.Duration
	log     *logger.Logger
	errs    ErrorCounter

	queue     chan delivery
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the delivery worker when at least one publisher is given.
func New(timeout time.Duration, log *logger.Logger, errs ErrorCounter, pubs ...Publisher) *Relay {
	return NewWithQueue(timeout, defaultQueueSize, log, errs, pubs...)
}

// NewWithQueue is New with an explicit queue capacity.
func NewWithQueue(timeout time.Duration, queueSize int, log *logger.Logger, errs ErrorCounter, pubs ...Publisher) *Relay {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	r := &Relay{
		pubs:    pubs,
		timeout: timeout,
		log:     log,
		errs:    errs,
		queue:   make(chan delivery, queueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if len(pubs) > 0 {
		go r.work()
	} else {
		close(r.done)
	}
	return r
}

// Enabled reports whether any sink is configured.
func (r *Relay) Enabled() bool { return len(r.pubs) > 0 }

func (r *Relay) SessionOpened(string) {}

func (r *Relay) SessionClosed(string) {}

// TickObserved queues the reading for delivery and returns at once.
// When the queue is full the reading is dropped and counted.
func (r *Relay) TickObserved(id string, reading models.Reading, err error) {
	if err != nil || len(r.pubs) == 0 {
		return
	}
	payload, mErr := json.Marshal(Message{SessionID: id, Reading: reading})
	if mErr != nil {
		r.log.Errorw("relay_marshal_failed", "session_id", id, "err", mErr)
		return
	}

	select {
	case <-r.quit:
		return
	default:
	}
	select {
	case r.queue <- delivery{key: id, payload: payload}:
	default:
		r.log.Warnw("relay_queue_full", "session_id", id, "capacity", cap(r.queue))
		r.countError(SinkQueue)
	}
}

func (r *Relay) work() {
	defer close(r.done)
	for {
		select {
		case d := <-r.queue:
			r.deliver(d)
		case <-r.quit:
			// Flush what was queued before Close.
			for {
				select {
				case d := <-r.queue:
					r.deliver(d)
				default:
					return
				}
			}
		}
	}
}

func (r *Relay) deliver(d delivery) {
	for _, p := range r.pubs {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := p.Publish(ctx, d.key, d.payload)
		cancel()
		if err != nil {
			r.log.Warnw("relay_publish_failed", "sink", p.Name(), "session_id", d.key, "err", err)
			r.countError(p.Name())
		}
	}
}

func (r *Relay) countError(sink string) {
	if r.errs != nil {
		r.errs.RelayError(sink)
	}
}

// Close delivers the queued readings, stops the worker and releases every
// publisher. It is safe to call more than once.
func (r *Relay) Close() error {
	var errs []error
	r.closeOnce.Do(func() {
		close(r.quit)
		<-r.done
		for _, p := range r.pubs {
			if err := p.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
