// Package toolcalls tracks the lifecycle of server-announced tool
// invocations across chat sessions.
//
// Each invocation is identified by its (session id, call id) pair and moves
// through preparing -> executing -> complete. Completion evicts the
// notification from the active index and appends a record to the completed
// log, which is retained until explicitly cleared.
package toolcalls

import "time"

// Status describes where a tool invocation currently is in its lifecycle.
type Status string

const (
	// StatusPreparing means the tool was selected but has not started running.
	StatusPreparing Status = "preparing"
	// StatusExecuting means the tool is currently running.
	StatusExecuting Status = "executing"
	// StatusComplete means the tool finished; complete notifications are
	// evicted from the active index rather than kept around.
	StatusComplete Status = "complete"
)

// ToolCall is a server-announced invocation of a named capability. The ID is
// unique only within the originating session.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the output of a tool call, matched back to it by call id.
type ToolResult struct {
	CallID string
	Output string
}

// CallIdentity is the compound key a tool invocation is tracked under.
// Uniqueness is scoped to the pair: the same call id may appear in two
// sessions and must be tracked independently.
type CallIdentity struct {
	SessionID string
	CallID    string
}

// Notification is the trackable state of one in-flight tool invocation.
type Notification struct {
	ID        string
	SessionID string
	ToolName  string
	Status    Status
	Timestamp time.Time
	Arguments string
}

// Identity returns the compound key the notification is indexed under.
func (n Notification) Identity() CallIdentity {
	return CallIdentity{SessionID: n.SessionID, CallID: n.ID}
}

// CompletedCall is the original tool call plus its matched result, recorded
// on completion independently of the active-notification lifecycle.
type CompletedCall struct {
	Call        ToolCall
	SessionID   string
	Result      *ToolResult
	CompletedAt time.Time
}

// Stats is a point-in-time count of tracked invocations.
type Stats struct {
	Active    int
	Completed int
	Total     int
}
