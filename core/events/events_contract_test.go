package events

import (
	"testing"

	"github.com/sable-chat/sable-core/core/toolcalls"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	calls := []toolcalls.ToolCall{{ID: "t1", Name: "workspace_read"}}

	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "tool select delta", event: NewToolSelectDelta("s1", calls), expected: KindToolSelectDelta},
		{name: "tool call update", event: NewToolCallUpdate("s1", true, calls, nil), expected: KindToolCallUpdate},
		{name: "interaction", event: NewInteraction("s1", true), expected: KindInteraction},
		{name: "user turn started", event: NewUserTurnStarted("s1"), expected: KindUserTurnStarted},
		{name: "user turn ended", event: NewUserTurnEnded(), expected: KindUserTurnEnded},
		{name: "session notifications cleared", event: NewSessionNotificationsCleared("s1", 0), expected: KindSessionNotificationsCleared},
		{name: "all notifications cleared", event: NewAllNotificationsCleared(0), expected: KindAllNotificationsCleared},
		{name: "turn state changed", event: NewTurnStateChanged(true), expected: KindTurnStateChanged},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatal("expected constructor to stamp the event")
			}
		})
	}
}

func TestInboundKindsMatchWireTypeStrings(t *testing.T) {
	testCases := []struct {
		kind     Kind
		wireType string
	}{
		{kind: KindToolSelectDelta, wireType: "tool_select_delta"},
		{kind: KindToolCallUpdate, wireType: "tool_call"},
		{kind: KindInteraction, wireType: "interaction"},
		{kind: KindUserTurnStarted, wireType: "user_turn_start"},
		{kind: KindUserTurnEnded, wireType: "user_turn_end"},
	}

	for _, testCase := range testCases {
		if string(testCase.kind) != testCase.wireType {
			t.Fatalf("expected kind %q to match wire type %q", testCase.kind, testCase.wireType)
		}
	}
}
