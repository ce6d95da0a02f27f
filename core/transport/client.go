// Package transport maintains the duplex channel that delivers protocol
// events to the state-tracking core.
//
// The client decodes each inbound frame through core/events and hands the
// typed event to a configured handler, normally Router.Process.
// Reconnection and authentication belong to the embedding application, not
// here.
package transport

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sable-chat/sable-core/core/events"
)

// Handler consumes one decoded inbound event. Router.Process satisfies it.
type Handler func(ctx context.Context, event events.Event) error

// Client is a websocket client for the server's event stream.
type Client struct {
	conn    *websocket.Conn
	handler Handler

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

type dialOptions struct {
	dialer  *websocket.Dialer
	header  http.Header
	handler Handler
}

// Option configures Dial.
type Option func(*dialOptions)

// WithHandler sets the consumer of decoded inbound events. Without it
// inbound events are dropped.
func WithHandler(handler Handler) Option {
	return func(o *dialOptions) { o.handler = handler }
}

// WithHeader sets HTTP headers sent with the websocket handshake.
func WithHeader(header http.Header) Option {
	return func(o *dialOptions) { o.header = header }
}

// WithDialer overrides the websocket dialer.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(o *dialOptions) { o.dialer = dialer }
}

// Dial opens the duplex channel and starts the read loop. ctx bounds the
// handshake and is passed through to the handler for every event.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	options := dialOptions{
		dialer:  websocket.DefaultDialer,
		handler: func(context.Context, events.Event) error { return nil },
	}
	for _, opt := range opts {
		opt(&options)
	}

	conn, _, err := options.dialer.DialContext(ctx, url, options.header)
	if err != nil {
		return nil, err
	}

	client := &Client{
		conn:    conn,
		handler: options.handler,
		done:    make(chan struct{}),
	}
	go client.readLoop(ctx)

	return client, nil
}

func (c *Client) readLoop(ctx context.Context) {
	defer close(c.done)

	ctx, span := tracer.Start(ctx, "read event stream")
	defer span.End()

	for {
		msgType, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("event stream read failed", "error", err)
				span.RecordError(err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		event, err := events.Decode(msg)
		if err != nil {
			// Unknown kinds are skipped so newer servers can add events
			// without breaking older clients.
			logger.Warn("dropping undecodable frame", "error", err)
			continue
		}

		if err := c.handler(ctx, event); err != nil {
			logger.Error("handler rejected event", "kind", string(event.Kind()), "error", err)
			span.RecordError(err)
		}
	}
}

// Send writes one outbound message as JSON. Safe for concurrent use.
func (c *Client) Send(message any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(message)
}

// Done is closed once the read loop has exited.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close sends a close frame and tears the connection down. Safe to call
// multiple times.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}
