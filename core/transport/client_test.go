package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sable-chat/sable-core/core/events"
)

func newEventServer(t *testing.T, serve func(conn *websocket.Conn)) (*httptest.Server, string) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		serve(conn)
	}))
	t.Cleanup(server.Close)

	return server, "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientDecodesAndDeliversEvents(t *testing.T) {
	frames := []string{
		`{"type": "tool_select_delta", "session_id": "s1", "tool_calls": [{"id": "t1", "name": "fetch"}]}`,
		`{"type": "unheard_of_event"}`, // must be skipped, not fatal
		`{"type": "user_turn_start", "session_id": "s1"}`,
	}

	_, url := newEventServer(t, func(conn *websocket.Conn) {
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				t.Errorf("server write failed: %v", err)
				return
			}
		}
		// Keep the connection up until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	received := make(chan events.Event, len(frames))
	client, err := Dial(context.Background(), url, WithHandler(func(_ context.Context, event events.Event) error {
		received <- event
		return nil
	}))
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	expectEvent := func() events.Event {
		select {
		case event := <-received:
			return event
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return nil
		}
	}

	if event := expectEvent(); event.Kind() != events.KindToolSelectDelta {
		t.Fatalf("expected tool selection first, got %q", event.Kind())
	}
	if event := expectEvent(); event.Kind() != events.KindUserTurnStarted {
		t.Fatalf("expected turn start after skipping unknown frame, got %q", event.Kind())
	}
}

func TestClientSendsJSONMessages(t *testing.T) {
	type userInput struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	receivedText := make(chan string, 1)
	_, url := newEventServer(t, func(conn *websocket.Conn) {
		var message userInput
		if err := conn.ReadJSON(&message); err != nil {
			t.Errorf("server read failed: %v", err)
			return
		}
		receivedText <- message.Text
	})

	client, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	if err := client.Send(userInput{Type: "user_input", Text: "hello"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case text := <-receivedText:
		if text != "hello" {
			t.Fatalf("expected %q delivered, got %q", "hello", text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server to receive the message")
	}
}

func TestCloseIsIdempotentAndStopsTheReadLoop(t *testing.T) {
	_, url := newEventServer(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	client, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for read loop to exit")
	}
}
