// Package tracking derives client-side session state from the typed event
// stream of a realtime chat protocol.
//
// The Router is the single entry point: the transport hands it every
// inbound event, it dispatches to the tool call tracker and the turn gate,
// and it fans derived events out to subscribers. It never reaches into the
// managers' internals; all state flows through their public operations.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sable-chat/sable-core/core/events"
	"github.com/sable-chat/sable-core/core/toolcalls"
	"github.com/sable-chat/sable-core/core/turns"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnroutableEvent is returned when Process receives an event type with
// no dispatch entry.
var ErrUnroutableEvent = errors.New("unroutable event")

// Router dispatches inbound protocol events to the session state machines
// and emits derived events to subscribers.
type Router struct {
	tracker *toolcalls.Tracker
	gate    *turns.Gate

	turnAware        bool
	trackTurnHistory bool
	turnHistoryLimit int

	mu          sync.RWMutex
	subscribers map[string]func(events.Event)
	closed      bool

	unsubscribeGate func()
	closeOnce       sync.Once
}

// NewRouter creates a router and its managers. Both the tracker and the
// gate can be injected through options; by default every router owns
// isolated instances.
func NewRouter(opts ...Option) *Router {
	router := &Router{subscribers: make(map[string]func(events.Event))}
	for _, opt := range opts {
		opt(router)
	}

	if router.tracker == nil {
		router.tracker = toolcalls.NewTracker()
	}
	if router.gate == nil {
		gateOpts := []turns.Option{turns.WithInitialState(!router.turnAware)}
		if router.trackTurnHistory {
			gateOpts = append(gateOpts, turns.WithHistory(router.turnHistoryLimit))
		}
		router.gate = turns.NewGate(gateOpts...)
	}

	router.unsubscribeGate = router.gate.Subscribe(func(canSendInput bool) {
		router.publish(events.NewTurnStateChanged(canSendInput))
	})

	return router
}

// Process routes one inbound event to the state machines it concerns and
// emits whatever derived events the dispatch produces. Events are expected
// in arrival order and each call runs to completion before the next; the
// managers themselves serialize access for multithreaded hosts.
//
// A malformed event (a selection with no tool calls) propagates to the
// caller: swallowing it would hide a protocol bug upstream.
func (r *Router) Process(ctx context.Context, event events.Event) error {
	_, span := tracer.Start(ctx, "process event",
		trace.WithAttributes(attribute.String("event.kind", string(event.Kind()))))
	defer span.End()

	switch typedEvent := event.(type) {
	case events.ToolSelectDelta:
		if _, err := r.tracker.RecordSelection(typedEvent.SessionID, typedEvent.ToolCalls); err != nil {
			err = fmt.Errorf("failed to record tool selection: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

	case events.ToolCallUpdate:
		if typedEvent.Active {
			r.tracker.RecordActivity(typedEvent.SessionID, typedEvent.ToolCalls, typedEvent.Active)
		} else {
			r.tracker.RecordCompletion(typedEvent.SessionID, typedEvent.ToolCalls, typedEvent.ToolResults, typedEvent.Active)
		}

	case events.Interaction:
		if !typedEvent.Started {
			cleared := r.tracker.ClearSession(typedEvent.SessionID)
			span.SetAttributes(attribute.Int("notifications.cleared", cleared))
			r.publish(events.NewSessionNotificationsCleared(typedEvent.SessionID, cleared))
		}

	case events.UserTurnStarted:
		r.gate.Set(true)
		cleared := r.tracker.ClearAll()
		span.SetAttributes(attribute.Int("notifications.cleared", cleared))
		r.publish(events.NewAllNotificationsCleared(cleared))

	case events.UserTurnEnded:
		r.gate.Set(false)

	default:
		err := fmt.Errorf("%w: %T", ErrUnroutableEvent, event)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Subscribe registers a callback for derived events and returns its
// unsubscribe function. Subscribing to a closed router returns a no-op
// unsubscribe.
func (r *Router) Subscribe(subscriber func(events.Event)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return func() {}
	}

	token := uuid.NewString()
	r.subscribers[token] = subscriber
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, token)
	}
}

func (r *Router) publish(event events.Event) {
	r.mu.RLock()
	subscribers := make([]func(events.Event), 0, len(r.subscribers))
	for _, subscriber := range r.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	r.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber(event)
	}
}

// Tracker returns the router's tool call tracker for queries.
func (r *Router) Tracker() *toolcalls.Tracker {
	return r.tracker
}

// Gate returns the router's turn gate for queries.
func (r *Router) Gate() *turns.Gate {
	return r.gate
}

// CanSendInput reports whether the local user currently holds the turn.
func (r *Router) CanSendInput() bool {
	return r.gate.CanSendInput()
}

// Close detaches the router from its gate and drops all subscribers. Safe
// to call multiple times; the managers keep answering queries afterwards.
func (r *Router) Close() {
	r.closeOnce.Do(func() {
		r.unsubscribeGate()

		r.mu.Lock()
		r.closed = true
		r.subscribers = make(map[string]func(events.Event))
		r.mu.Unlock()

		logger.Debug("router closed")
	})
}
