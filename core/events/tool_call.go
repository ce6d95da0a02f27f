package events

import "github.com/sable-chat/sable-core/core/toolcalls"

// KindToolCallUpdate identifies a tool call progress envelope.
const KindToolCallUpdate Kind = "tool_call"

// ToolCallUpdate carries tool call progress. Active envelopes mean the
// calls are running; inactive envelopes mean they finished, with results
// matched to calls by id when the server supplied any.
type ToolCallUpdate struct {
	Base
	SessionID   string
	Active      bool
	ToolCalls   []toolcalls.ToolCall
	ToolResults []toolcalls.ToolResult
}

// NewToolCallUpdate creates a tool call progress event.
func NewToolCallUpdate(sessionID string, active bool, calls []toolcalls.ToolCall, results []toolcalls.ToolResult) ToolCallUpdate {
	return ToolCallUpdate{
		Base:        NewBase(KindToolCallUpdate),
		SessionID:   sessionID,
		Active:      active,
		ToolCalls:   calls,
		ToolResults: results,
	}
}
