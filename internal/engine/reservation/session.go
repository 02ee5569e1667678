// Package reservation drives the confirmation countdown of a reservation hold.
//
// A Session starts ACTIVE with a fixed number of seconds, is ticked once per second and ends in
// exactly one terminal state: CONFIRMED, CANCELLED or EXPIRED. Exactly one of the matching
// callbacks fires per session.
package reservation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

var (
	// ErrEmptyID is returned when a session is created without a reservation id
	ErrEmptyID = errors.New("reservation: session id is required")

	// ErrInvalidDuration is returned for a non-positive countdown
	ErrInvalidDuration = errors.New("reservation: initial time must be positive")
)

// Callbacks are invoked after the matching terminal transition, outside the session lock
type Callbacks struct {
	OnConfirm func(Snapshot)
	OnCancel  func(Snapshot)
	OnExpire  func(Snapshot)
}

// Snapshot is a consistent view of the session
type Snapshot struct {
	ID         string
	State      domain.SessionState
	Remaining  int
	Countdown  Countdown
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Session is the countdown state machine of one hold.
// Tick, Confirm and Cancel are serialized; the state guard resolves races between them.
type Session struct {
	mu sync.Mutex

	id        string
	state     domain.SessionState
	remaining int
	startedAt time.Time
	finished  *time.Time

	callbacks Callbacks
	newTicker TickerFactory
	interval  time.Duration
	now       func() time.Time

	started bool
	stopped bool
	done    chan struct{}
}

// Option configures a Session
type Option func(*Session)

// WithInitialSeconds sets the countdown length; 0 keeps the default
func WithInitialSeconds(seconds int) Option {
	return func(s *Session) {
		if seconds != 0 {
			s.remaining = seconds
		}
	}
}

// WithCallbacks sets the terminal transition callbacks
func WithCallbacks(cb Callbacks) Option {
	return func(s *Session) {
		s.callbacks = cb
	}
}

// WithTickerFactory replaces the one-second real ticker
func WithTickerFactory(f TickerFactory) Option {
	return func(s *Session) {
		s.newTicker = f
	}
}

// WithClock replaces time.Now for StartedAt/FinishedAt
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates an ACTIVE session. Ticking begins with Start.
func NewSession(id string, opts ...Option) (*Session, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	s := &Session{
		id:        id,
		state:     domain.SessionActive,
		remaining: domain.DefaultReservationTTLSeconds,
		newTicker: NewRealTicker,
		interval:  domain.TickIntervalSeconds * time.Second,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.remaining <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, s.remaining)
	}
	s.startedAt = s.now()

	return s, nil
}

// ID returns the reservation id the session belongs to
func (s *Session) ID() string {
	return s.id
}

// Start begins ticking once per interval. It is a no-op if the session was already started,
// stopped or is terminal.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started || s.stopped || s.state.IsTerminal() {
		s.mu.Unlock()
		return
	}
	s.started = true

	ticker := s.newTicker(s.interval)
	done := s.done
	s.mu.Unlock()

	go s.run(ticker, done)
}

func (s *Session) run(ticker Ticker, done <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			if s.Tick().IsTerminal() {
				return
			}
		}
	}
}

// Tick decrements the remaining time by one second. Reaching zero while ACTIVE expires the
// session and fires OnExpire. Ticks after a terminal state are ignored.
func (s *Session) Tick() domain.SessionState {
	s.mu.Lock()
	if s.state != domain.SessionActive {
		state := s.state
		s.mu.Unlock()
		return state
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		s.mu.Unlock()
		return domain.SessionActive
	}

	snap, cb := s.finishLocked(domain.SessionExpired)
	s.mu.Unlock()

	invoke(cb, snap)
	return domain.SessionExpired
}

// Confirm moves an ACTIVE session to CONFIRMED and fires OnConfirm.
// Returns false (and does nothing) from any other state.
func (s *Session) Confirm() bool {
	return s.transition(domain.SessionConfirmed)
}

// Cancel moves an ACTIVE session to CANCELLED and fires OnCancel.
// Returns false (and does nothing) from any other state.
func (s *Session) Cancel() bool {
	return s.transition(domain.SessionCancelled)
}

func (s *Session) transition(target domain.SessionState) bool {
	s.mu.Lock()
	if s.state != domain.SessionActive {
		s.mu.Unlock()
		return false
	}

	snap, cb := s.finishLocked(target)
	s.mu.Unlock()

	invoke(cb, snap)
	return true
}

// Stop stops ticking without changing the state. The owner must call it on teardown if the
// session may still be ACTIVE. Safe to call several times.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.haltLocked()
}

// State returns the current state
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsActive returns true while the session awaits confirmation
func (s *Session) IsActive() bool {
	return s.State() == domain.SessionActive
}

// Remaining returns the remaining seconds, frozen once terminal
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Countdown returns the display form of the remaining time
func (s *Session) Countdown() Countdown {
	return NewCountdown(s.Remaining())
}

// Snapshot returns a consistent view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		State:     s.state,
		Remaining: s.remaining,
		Countdown: NewCountdown(s.remaining),
		StartedAt: s.startedAt,
	}
	if s.finished != nil {
		finished := *s.finished
		snap.FinishedAt = &finished
	}
	return snap
}

// finishLocked performs the terminal transition and returns what to invoke after unlocking
func (s *Session) finishLocked(target domain.SessionState) (Snapshot, func(Snapshot)) {
	s.state = target
	finished := s.now()
	s.finished = &finished
	s.haltLocked()

	var cb func(Snapshot)
	switch target {
	case domain.SessionConfirmed:
		cb = s.callbacks.OnConfirm
	case domain.SessionCancelled:
		cb = s.callbacks.OnCancel
	case domain.SessionExpired:
		cb = s.callbacks.OnExpire
	}

	return s.snapshotLocked(), cb
}

func (s *Session) haltLocked() {
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.done)
}

func invoke(cb func(Snapshot), snap Snapshot) {
	if cb != nil {
		cb(snap)
	}
}
