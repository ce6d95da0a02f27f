package events

const (
	// KindSessionNotificationsCleared identifies session-scoped tool
	// notification cleanup.
	KindSessionNotificationsCleared Kind = "session-notifications-cleared"
	// KindAllNotificationsCleared identifies global tool notification
	// cleanup.
	KindAllNotificationsCleared Kind = "all-notifications-cleared"
	// KindTurnStateChanged identifies an actual turn gate flip.
	KindTurnStateChanged Kind = "turn-state-changed"
)

// SessionNotificationsCleared tells subscribers one session's in-flight
// tool notifications were invalidated. It is emitted even when the session
// had none, or does not exist: the emission is a protocol contract, not a
// reflection of internal change. Cleared carries the removed count for
// observability only.
type SessionNotificationsCleared struct {
	Base
	SessionID string
	Cleared   int
}

// NewSessionNotificationsCleared creates a session cleanup event.
func NewSessionNotificationsCleared(sessionID string, cleared int) SessionNotificationsCleared {
	return SessionNotificationsCleared{Base: NewBase(KindSessionNotificationsCleared), SessionID: sessionID, Cleared: cleared}
}

// AllNotificationsCleared tells subscribers every session's in-flight tool
// notifications were invalidated. Emitted even when nothing was tracked.
type AllNotificationsCleared struct {
	Base
	Cleared int
}

// NewAllNotificationsCleared creates a global cleanup event.
func NewAllNotificationsCleared(cleared int) AllNotificationsCleared {
	return AllNotificationsCleared{Base: NewBase(KindAllNotificationsCleared), Cleared: cleared}
}

// TurnStateChanged tells subscribers the turn gate actually flipped.
type TurnStateChanged struct {
	Base
	CanSendInput bool
}

// NewTurnStateChanged creates a turn flip event.
func NewTurnStateChanged(canSendInput bool) TurnStateChanged {
	return TurnStateChanged{Base: NewBase(KindTurnStateChanged), CanSendInput: canSendInput}
}
