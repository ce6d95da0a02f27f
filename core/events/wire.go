package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sable-chat/sable-core/core/toolcalls"
)

// ErrUnknownEventKind is returned when a wire envelope carries a `type`
// with no corresponding event.
var ErrUnknownEventKind = errors.New("unknown event kind")

// envelope is the superset wire shape every inbound event is carried in,
// discriminated by Type. Optional booleans are pointers so an absent field
// is distinguishable from an explicit false.
type envelope struct {
	Type        string           `json:"type"`
	SessionID   string           `json:"session_id"`
	Active      *bool            `json:"active,omitempty"`
	Started     *bool            `json:"started,omitempty"`
	ToolCalls   []wireToolCall   `json:"tool_calls,omitempty"`
	ToolResults []wireToolResult `json:"tool_results,omitempty"`
}

// wireToolCall accepts both argument field aliases the protocol uses.
type wireToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

func (c wireToolCall) toolCall() toolcalls.ToolCall {
	arguments := c.Input
	if len(arguments) == 0 {
		arguments = c.Arguments
	}
	return toolcalls.ToolCall{ID: c.ID, Name: c.Name, Arguments: rawText(arguments)}
}

// wireToolResult accepts both id and output field aliases.
type wireToolResult struct {
	CallID    string          `json:"call_id,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Output    json.RawMessage `json:"output,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
}

func (r wireToolResult) toolResult() toolcalls.ToolResult {
	callID := r.CallID
	if callID == "" {
		callID = r.ToolUseID
	}
	output := r.Output
	if len(output) == 0 {
		output = r.Content
	}
	return toolcalls.ToolResult{CallID: callID, Output: rawText(output)}
}

// rawText unquotes plain JSON strings and passes every other value through
// verbatim, so structured outputs stay inspectable as JSON.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

// Decode parses one wire frame into its typed event. The envelope's arrival
// is timestamped here, at the channel edge.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode event envelope: %w", err)
	}

	switch Kind(env.Type) {
	case KindToolSelectDelta:
		return NewToolSelectDelta(env.SessionID, env.toolCalls()), nil
	case KindToolCallUpdate:
		active := env.Active != nil && *env.Active
		return NewToolCallUpdate(env.SessionID, active, env.toolCalls(), env.toolResults()), nil
	case KindInteraction:
		started := env.Started != nil && *env.Started
		return NewInteraction(env.SessionID, started), nil
	case KindUserTurnStarted:
		return NewUserTurnStarted(env.SessionID), nil
	case KindUserTurnEnded:
		return NewUserTurnEnded(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, env.Type)
	}
}

func (env envelope) toolCalls() []toolcalls.ToolCall {
	if len(env.ToolCalls) == 0 {
		return nil
	}
	calls := make([]toolcalls.ToolCall, 0, len(env.ToolCalls))
	for _, call := range env.ToolCalls {
		calls = append(calls, call.toolCall())
	}
	return calls
}

func (env envelope) toolResults() []toolcalls.ToolResult {
	if len(env.ToolResults) == 0 {
		return nil
	}
	results := make([]toolcalls.ToolResult, 0, len(env.ToolResults))
	for _, result := range env.ToolResults {
		results = append(results, result.toolResult())
	}
	return results
}
