package turns

import "testing"

func TestGateDefaultsOpen(t *testing.T) {
	gate := NewGate()
	if !gate.CanSendInput() {
		t.Fatal("expected gate without turn control to start open")
	}
}

func TestGateInitialStateOption(t *testing.T) {
	gate := NewGate(WithInitialState(false))
	if gate.CanSendInput() {
		t.Fatal("expected turn-aware gate to start closed")
	}
}

func TestTransitionsAreIdempotent(t *testing.T) {
	gate := NewGate(WithInitialState(false))

	var flips []bool
	gate.Subscribe(func(canSendInput bool) { flips = append(flips, canSendInput) })

	if !gate.Set(true) {
		t.Fatal("expected first grant to flip the gate")
	}
	if gate.Set(true) {
		t.Fatal("expected duplicated grant to be a no-op")
	}
	if !gate.Set(false) {
		t.Fatal("expected revocation to flip the gate")
	}

	if len(flips) != 2 {
		t.Fatalf("expected exactly 2 notifications across 3 transitions, got %d", len(flips))
	}
	if !flips[0] || flips[1] {
		t.Fatalf("expected notifications [true false], got %v", flips)
	}
}

func TestHistorySeedsWithInitialState(t *testing.T) {
	gate := NewGate(WithInitialState(false), WithHistory(10))

	history := gate.History()
	if len(history) != 1 {
		t.Fatalf("expected seeded history of 1, got %d", len(history))
	}
	if history[0].CanSendInput {
		t.Fatal("expected seed entry to reflect the closed initial state")
	}
	if history[0].Type != EventUserTurnEnd {
		t.Fatalf("expected seed type %q, got %q", EventUserTurnEnd, history[0].Type)
	}
}

func TestHistoryRecordsOnlyActualFlips(t *testing.T) {
	gate := NewGate(WithInitialState(false), WithHistory(10))

	gate.Set(true)
	gate.Set(true)
	gate.Set(false)

	history := gate.History()
	if len(history) != 3 {
		t.Fatalf("expected seed plus 2 flips, got %d entries", len(history))
	}
	if history[1].Type != EventUserTurnStart || history[2].Type != EventUserTurnEnd {
		t.Fatalf("expected [start end] after seed, got [%s %s]", history[1].Type, history[2].Type)
	}
}

func TestHistoryTruncatesFromTheFront(t *testing.T) {
	gate := NewGate(WithInitialState(false), WithHistory(3))

	for i := 0; i < 5; i++ {
		gate.Set(i%2 == 0)
	}

	history := gate.History()
	if len(history) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(history))
	}
	// Newest entries survive: the last flip was Set(true) with i=4.
	if !history[len(history)-1].CanSendInput {
		t.Fatal("expected most recent entry to be kept")
	}
}

func TestHistoryDisabledByDefault(t *testing.T) {
	gate := NewGate()
	gate.Set(false)
	gate.Set(true)
	if history := gate.History(); len(history) != 0 {
		t.Fatalf("expected no history without WithHistory, got %d entries", len(history))
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	gate := NewGate(WithInitialState(false))

	notified := 0
	unsubscribe := gate.Subscribe(func(bool) { notified++ })

	gate.Set(true)
	unsubscribe()
	gate.Set(false)

	if notified != 1 {
		t.Fatalf("expected 1 notification before unsubscribe, got %d", notified)
	}
}

func TestCloseDetachesAndFreezes(t *testing.T) {
	gate := NewGate(WithInitialState(false))

	notified := 0
	gate.Subscribe(func(bool) { notified++ })

	gate.Close()
	gate.Close() // safe to repeat

	if gate.Set(true) {
		t.Fatal("expected closed gate to refuse transitions")
	}
	if notified != 0 {
		t.Fatalf("expected no notifications after close, got %d", notified)
	}
	if gate.CanSendInput() {
		t.Fatal("expected closed gate to keep its last state")
	}
}
