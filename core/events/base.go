package events

import "time"

// Kind discriminates event types. Inbound kinds use the wire `type` strings
// verbatim; derived kinds use the subscriber-facing names.
type Kind string

// Event is implemented by every protocol and derived event.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the fields shared by all events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase stamps a base with the kind and the current time.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
