// Package domain holds the shared job-listing types: the candidate record
// produced from one scraped posting, the observation lifecycle state machine,
// and the triage vocabulary owned by the external review UI.
//
// Lifecycle state graph:
//
//	ACTIVE ◄──── observed ────► ACTIVE
//	ACTIVE ───── swept ───────► INACTIVE
//	INACTIVE ─── observed ────► ACTIVE
//
// Records are never deleted; inactivation is a soft state.
package domain

import "fmt"

type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
)

// Event is what drives a lifecycle transition: either the posting was
// observed again in a scrape batch, or the sweeper aged it out.
type Event string

const (
	EventObserved Event = "observed"
	EventSwept    Event = "swept"
)

// transitions lists every allowed (state, event) → state pair. Keeping the
// rule here, rather than as boolean flips at call sites, makes the lifecycle
// auditable in one place.
var transitions = map[State]map[Event]State{
	StateActive: {
		EventObserved: StateActive,
		EventSwept:    StateInactive,
	},
	StateInactive: {
		EventObserved: StateActive,
		// a swept record stays inactive until observed again
	},
}

// Next returns the state that follows applying ev to from.
func Next(from State, ev Event) (State, error) {
	to, ok := transitions[from][ev]
	if !ok {
		return "", fmt.Errorf("lifecycle: no transition from %s on %s", from, ev)
	}
	return to, nil
}

// StateFor maps the stored is_active flag onto a State.
func StateFor(active bool) State {
	if active {
		return StateActive
	}
	return StateInactive
}

func (s State) Active() bool { return s == StateActive }
