package toolcalls

import (
	"errors"
	"sync"
	"time"

	"github.com/jinzhu/copier"
)

// ErrNoToolCalls is returned when a selection event carries no tool calls.
// An empty selection can only mean a malformed upstream event, so it is
// surfaced rather than swallowed. Activity and completion envelopes with
// empty lists are valid shapes and are handled silently instead.
var ErrNoToolCalls = errors.New("tool selection contained no tool calls")

// Tracker owns the per-identity tool invocation state machines. All state is
// mutated only through its methods; a mutex keeps every operation atomic so
// multithreaded hosts observe no partial updates.
type Tracker struct {
	mu        sync.RWMutex
	active    map[CallIdentity]*Notification
	completed []CompletedCall
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[CallIdentity]*Notification)}
}

// RecordSelection creates a preparing notification for every selected tool
// call and returns the created notifications. Selecting an already-tracked
// identity restarts it fresh in preparing.
func (t *Tracker) RecordSelection(sessionID string, calls []ToolCall) ([]Notification, error) {
	if len(calls) == 0 {
		return nil, ErrNoToolCalls
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	created := make([]Notification, 0, len(calls))
	for _, call := range calls {
		notification := &Notification{
			ID:        call.ID,
			SessionID: sessionID,
			ToolName:  call.Name,
			Status:    StatusPreparing,
			Timestamp: time.Now(),
			Arguments: call.Arguments,
		}
		t.active[notification.Identity()] = notification
		created = append(created, *notification)
	}
	return created, nil
}

// RecordActivity transitions the given tool calls to executing. Calls never
// seen before are synthesized directly in executing, covering activity that
// arrives without a preceding selection. An inactive flag or an empty list
// is a benign signal and returns nothing with no side effects.
func (t *Tracker) RecordActivity(sessionID string, calls []ToolCall, active bool) []Notification {
	if !active || len(calls) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	updated := make([]Notification, 0, len(calls))
	for _, call := range calls {
		identity := CallIdentity{SessionID: sessionID, CallID: call.ID}
		notification, tracked := t.active[identity]
		if !tracked {
			notification = &Notification{
				ID:        call.ID,
				SessionID: sessionID,
				ToolName:  call.Name,
				Timestamp: time.Now(),
				Arguments: call.Arguments,
			}
			t.active[identity] = notification
		}
		notification.Status = StatusExecuting
		updated = append(updated, *notification)
	}
	return updated
}

// RecordCompletion evicts the active notification for each tool call,
// matches a result by call id when one is present, and appends the pair to
// the completed log. Completion only fires on envelopes no longer flagged
// active; stillActive envelopes and empty lists return nothing.
func (t *Tracker) RecordCompletion(sessionID string, calls []ToolCall, results []ToolResult, stillActive bool) []CompletedCall {
	if stillActive || len(calls) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	completed := make([]CompletedCall, 0, len(calls))
	for _, call := range calls {
		delete(t.active, CallIdentity{SessionID: sessionID, CallID: call.ID})

		record := CompletedCall{
			Call:        call,
			SessionID:   sessionID,
			CompletedAt: time.Now(),
		}
		for _, result := range results {
			if result.CallID == call.ID {
				matched := result
				record.Result = &matched
				break
			}
		}
		t.completed = append(t.completed, record)
		completed = append(completed, record)
	}
	return completed
}

// ClearSession removes every active notification belonging to the session
// and reports how many were removed. Clearing a session with no entries is
// a successful no-op. Other sessions are never touched, even when call ids
// collide.
func (t *Tracker) ClearSession(sessionID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleared := 0
	for identity := range t.active {
		if identity.SessionID == sessionID {
			delete(t.active, identity)
			cleared++
		}
	}
	if cleared > 0 {
		logger.Debug("cleared session tool notifications", "session_id", sessionID, "cleared", cleared)
	}
	return cleared
}

// ClearAll removes every active notification across all sessions and
// reports how many were removed. The completed log is untouched.
func (t *Tracker) ClearAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleared := len(t.active)
	t.active = make(map[CallIdentity]*Notification)
	if cleared > 0 {
		logger.Debug("cleared all tool notifications", "cleared", cleared)
	}
	return cleared
}

// ClearCompleted empties the completed log without touching active
// notifications.
func (t *Tracker) ClearCompleted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed = nil
}

// Reset drops both active and completed state unconditionally.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = make(map[CallIdentity]*Notification)
	t.completed = nil
}

// ActiveNotifications returns a copy of every active notification across
// all sessions.
func (t *Tracker) ActiveNotifications() []Notification {
	t.mu.RLock()
	defer t.mu.RUnlock()

	notifications := make([]Notification, 0, len(t.active))
	for _, notification := range t.active {
		notifications = append(notifications, *notification)
	}
	return notifications
}

// SessionNotifications returns a copy of the session's active notifications.
func (t *Tracker) SessionNotifications(sessionID string) []Notification {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var notifications []Notification
	for identity, notification := range t.active {
		if identity.SessionID == sessionID {
			notifications = append(notifications, *notification)
		}
	}
	return notifications
}

// Notification returns the active notification for the identity, if any.
func (t *Tracker) Notification(sessionID, callID string) (Notification, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	notification, tracked := t.active[CallIdentity{SessionID: sessionID, CallID: callID}]
	if !tracked {
		return Notification{}, false
	}
	return *notification, true
}

// IsActive reports whether the identity has an active notification.
func (t *Tracker) IsActive(sessionID, callID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, tracked := t.active[CallIdentity{SessionID: sessionID, CallID: callID}]
	return tracked
}

// ActiveCount returns the number of active notifications across sessions.
func (t *Tracker) ActiveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.active)
}

// CompletedCalls returns a copy of the completed log in completion order.
func (t *Tracker) CompletedCalls() []CompletedCall {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var completed []CompletedCall
	copier.Copy(&completed, t.completed)
	return completed
}

// Stats returns current active and completed counts.
func (t *Tracker) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := Stats{Active: len(t.active), Completed: len(t.completed)}
	stats.Total = stats.Active + stats.Completed
	return stats
}
