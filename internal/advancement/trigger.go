package advancement

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/event"
)

// SessionID identifies the player session that owns a set of listeners.
type SessionID = uuid.UUID

// Instance is the decoded conditions of one criterion of some trigger.
type Instance interface {
	Player() *ContextAwarePredicate
	Validate(v *CriterionValidator)
}

// Listener waits for one criterion of one advancement.
type Listener[I Instance] struct {
	Instance    I
	Advancement string
	Criterion   string
}

func (l Listener[I]) same(o Listener[I]) bool {
	return l.Advancement == o.Advancement && l.Criterion == o.Criterion
}

// Trigger holds the listeners of one trigger kind for every session. A
// listener fires at most once: it is removed when granted.
type Trigger[I Instance] struct {
	name    string
	bus     *event.Bus
	mu      sync.Mutex
	players map[SessionID][]Listener[I]
}

func NewTrigger[I Instance](name string, bus *event.Bus) *Trigger[I] {
	return &Trigger[I]{
		name:    name,
		bus:     bus,
		players: make(map[SessionID][]Listener[I]),
	}
}

func (t *Trigger[I]) Name() string {
	return t.name
}

// AddListener registers l for session. Adding the same advancement
// criterion twice keeps one listener.
func (t *Trigger[I]) AddListener(session SessionID, l Listener[I]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.players[session] {
		if existing.same(l) {
			return
		}
	}
	t.players[session] = append(t.players[session], l)
}

func (t *Trigger[I]) RemoveListener(session SessionID, l Listener[I]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ls := t.players[session]
	for i, existing := range ls {
		if existing.same(l) {
			ls = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(t.players, session)
	} else {
		t.players[session] = ls
	}
}

// RemoveAll drops every listener of session, e.g. on disconnect.
func (t *Trigger[I]) RemoveAll(session SessionID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.players, session)
}

func (t *Trigger[I]) Listeners(session SessionID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.players[session])
}

// Fire grants every listener of session whose player predicate matches
// player and whose instance satisfies match. Granted listeners are removed
// and announced on the bus as event.AdvancementGranted.
func (t *Trigger[I]) Fire(session SessionID, player *LootContext, match func(I) bool) []Listener[I] {
	t.mu.Lock()
	var granted, kept []Listener[I]
	for _, l := range t.players[session] {
		if l.Instance.Player().Matches(player) && match(l.Instance) {
			granted = append(granted, l)
		} else {
			kept = append(kept, l)
		}
	}
	if len(granted) > 0 {
		if len(kept) == 0 {
			delete(t.players, session)
		} else {
			t.players[session] = kept
		}
	}
	t.mu.Unlock()

	if t.bus != nil {
		for _, l := range granted {
			t.bus.Publish(event.EventAdvancementGrant, event.AdvancementGranted{
				Session:     session,
				Advancement: l.Advancement,
				Criterion:   l.Criterion,
				Trigger:     t.name,
			})
		}
	}
	return granted
}
