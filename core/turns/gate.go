// Package turns gates user input on server-granted turns.
//
// The gate is a two-state machine: the user may currently send input, or may
// not. The server grants and revokes the turn; the gate only tracks what was
// announced and notifies subscribers on actual flips.
package turns

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 100

// EventType labels a recorded turn flip.
type EventType string

const (
	EventUserTurnStart EventType = "user_turn_start"
	EventUserTurnEnd   EventType = "user_turn_end"
)

// StateEvent is one recorded gate state, newest last.
type StateEvent struct {
	CanSendInput bool
	Timestamp    time.Time
	Type         EventType
}

func newStateEvent(canSendInput bool) StateEvent {
	eventType := EventUserTurnEnd
	if canSendInput {
		eventType = EventUserTurnStart
	}
	return StateEvent{CanSendInput: canSendInput, Timestamp: time.Now(), Type: eventType}
}

// Gate tracks whether the local user currently holds the turn.
type Gate struct {
	mu           sync.RWMutex
	canSendInput bool

	trackHistory bool
	historyLimit int
	history      []StateEvent

	subscribers map[string]func(canSendInput bool)
	closed      bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithInitialState sets the state the gate starts in. The default is open:
// absence of turn control must never block input. A gate wired to a
// turn-aware transport should start closed and wait for the server's grant.
func WithInitialState(canSendInput bool) Option {
	return func(g *Gate) { g.canSendInput = canSendInput }
}

// WithHistory enables bounded state-history recording. A non-positive limit
// falls back to the default of 100 entries.
func WithHistory(limit int) Option {
	return func(g *Gate) {
		g.trackHistory = true
		if limit > 0 {
			g.historyLimit = limit
		}
	}
}

// NewGate creates a gate, open by default. When history is enabled it is
// seeded with one entry reflecting the initial state.
func NewGate(opts ...Option) *Gate {
	gate := &Gate{
		canSendInput: true,
		historyLimit: defaultHistoryLimit,
		subscribers:  make(map[string]func(bool)),
	}
	for _, opt := range opts {
		opt(gate)
	}

	if gate.trackHistory {
		gate.history = append(gate.history, newStateEvent(gate.canSendInput))
	}
	return gate
}

// Set transitions the gate and reports whether the state actually changed.
// Setting the current state again is a no-op that notifies nobody;
// subscribers rely on that to avoid redundant work on duplicated signals.
func (g *Gate) Set(canSendInput bool) bool {
	g.mu.Lock()
	if g.closed || g.canSendInput == canSendInput {
		g.mu.Unlock()
		return false
	}

	g.canSendInput = canSendInput
	if g.trackHistory {
		g.history = append(g.history, newStateEvent(canSendInput))
		if overflow := len(g.history) - g.historyLimit; overflow > 0 {
			g.history = g.history[overflow:]
		}
	}

	subscribers := make([]func(bool), 0, len(g.subscribers))
	for _, subscriber := range g.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	g.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(canSendInput)
	}
	return true
}

// CanSendInput reports whether the user currently holds the turn.
func (g *Gate) CanSendInput() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.canSendInput
}

// History returns a copy of the recorded state events, oldest first. It is
// empty unless history tracking was enabled at construction.
func (g *Gate) History() []StateEvent {
	g.mu.RLock()
	defer g.mu.RUnlock()

	history := make([]StateEvent, len(g.history))
	copy(history, g.history)
	return history
}

// Subscribe registers a callback invoked on every actual flip and returns
// its unsubscribe function. Subscribing to a closed gate returns a no-op
// unsubscribe and the callback is never invoked.
func (g *Gate) Subscribe(subscriber func(canSendInput bool)) (unsubscribe func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return func() {}
	}

	token := uuid.NewString()
	g.subscribers[token] = subscriber
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, token)
	}
}

// Close detaches every subscriber and freezes the gate. Safe to call
// multiple times.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.subscribers = make(map[string]func(bool))
}
