package events

const (
	// KindUserTurnStarted identifies a server-granted user turn.
	KindUserTurnStarted Kind = "user_turn_start"
	// KindUserTurnEnded identifies a server-revoked user turn.
	KindUserTurnEnded Kind = "user_turn_end"
)

// UserTurnStarted announces that the user may speak. It also invalidates
// all in-flight tool notifications everywhere: no spinner survives a turn
// that has unambiguously ended.
type UserTurnStarted struct {
	Base
	SessionID string
}

// NewUserTurnStarted creates a user turn grant event.
func NewUserTurnStarted(sessionID string) UserTurnStarted {
	return UserTurnStarted{Base: NewBase(KindUserTurnStarted), SessionID: sessionID}
}

// UserTurnEnded announces that the user may no longer speak.
type UserTurnEnded struct{ Base }

// NewUserTurnEnded creates a user turn revocation event.
func NewUserTurnEnded() UserTurnEnded {
	return UserTurnEnded{Base: NewBase(KindUserTurnEnded)}
}
