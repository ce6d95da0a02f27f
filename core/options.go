package tracking

import (
	"github.com/sable-chat/sable-core/core/toolcalls"
	"github.com/sable-chat/sable-core/core/turns"
)

// Option configures a Router at construction.
type Option func(*Router)

// WithTracker injects the tool call tracker the router dispatches to.
// Primarily for tests and hosts that share a tracker across routers; the
// default is a fresh tracker per router.
func WithTracker(tracker *toolcalls.Tracker) Option {
	return func(r *Router) { r.tracker = tracker }
}

// WithGate injects the turn gate the router dispatches to. An injected gate
// wins over WithTurnAwareTransport and WithTurnHistory.
func WithGate(gate *turns.Gate) Option {
	return func(r *Router) { r.gate = gate }
}

// WithTurnAwareTransport declares that the attached transport delivers turn
// control events. The gate then starts closed and waits for the server's
// first grant. Without it the gate starts open, so absence of turn control
// never blocks input.
func WithTurnAwareTransport() Option {
	return func(r *Router) { r.turnAware = true }
}

// WithTurnHistory enables bounded turn state history on the router's gate.
// A non-positive limit uses the gate's default cap.
func WithTurnHistory(limit int) Option {
	return func(r *Router) {
		r.trackTurnHistory = true
		r.turnHistoryLimit = limit
	}
}
