package events

import "github.com/sable-chat/sable-core/core/toolcalls"

// KindToolSelectDelta identifies a server-side tool selection.
const KindToolSelectDelta Kind = "tool_select_delta"

// ToolSelectDelta announces tools the server selected for a session. A
// well-formed selection always carries at least one tool call.
type ToolSelectDelta struct {
	Base
	SessionID string
	ToolCalls []toolcalls.ToolCall
}

// NewToolSelectDelta creates a tool selection event.
func NewToolSelectDelta(sessionID string, calls []toolcalls.ToolCall) ToolSelectDelta {
	return ToolSelectDelta{Base: NewBase(KindToolSelectDelta), SessionID: sessionID, ToolCalls: calls}
}
