package model

// Run lifecycle states. A run moves strictly forward: the source fires once
// (Activated), both compute paths are launched (Dispatched), the join pairs
// their completion tokens (Joined), and the coordinator declares the graph
// drained only after the outstanding-work counter reaches zero (Drained).
// Failed is terminal and reachable from any in-flight state.
const (
	StateIdle       = "idle"
	StateActivated  = "activated"
	StateDispatched = "dispatched"
	StateJoined     = "joined"
	StateDrained    = "drained"
	StateFailed     = "failed"
)

// validTransitions maps each state to the set of states it may transition to.
var validTransitions = map[string]map[string]bool{
	StateIdle: {
		StateActivated: true,
		StateFailed:    true,
	},
	StateActivated: {
		StateDispatched: true,
		StateFailed:     true,
	},
	StateDispatched: {
		StateJoined: true,
		StateFailed: true,
	},
	StateJoined: {
		StateDrained: true,
		StateFailed:  true,
	},
}

// ValidTransition reports whether moving from one run state to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}
