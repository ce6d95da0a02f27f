package events

// KindInteraction identifies an interaction lifecycle boundary.
const KindInteraction Kind = "interaction"

// Interaction marks the start or end of a bounded unit of agent activity
// within a session. Only the end carries cleanup semantics.
type Interaction struct {
	Base
	SessionID string
	Started   bool
}

// NewInteraction creates an interaction boundary event.
func NewInteraction(sessionID string, started bool) Interaction {
	return Interaction{Base: NewBase(KindInteraction), SessionID: sessionID, Started: started}
}
