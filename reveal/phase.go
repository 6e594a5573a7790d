package reveal

import "fmt"

// Phase is the lifecycle state of the reveal overlay
type Phase int

const (
	// PhaseClosed: detail view hidden, strips parked off screen
	PhaseClosed Phase = iota
	// PhaseOpening: entrance cascade running after a show trigger
	PhaseOpening
	// PhaseOpen: detail view visible, strips resting over it
	PhaseOpen
	// PhasePeeling: a drag gesture is in progress
	PhasePeeling
	// PhaseClosing: commit animation running, then its cascade drains
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhasePeeling:
		return "peeling"
	case PhaseClosing:
		return "closing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var validTransitions = map[Phase][]Phase{
	PhaseClosed:  {PhaseOpening},
	PhaseOpening: {PhaseOpen, PhasePeeling},
	PhaseOpen:    {PhasePeeling},
	PhasePeeling: {PhaseOpen, PhaseClosing},
	PhaseClosing: {PhasePeeling, PhaseClosed, PhaseOpening},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
