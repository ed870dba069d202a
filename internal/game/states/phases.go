package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - board and agent construction
	PhaseInitializing GamePhase = iota

	// PhaseRunning - agent actively playing moves
	PhaseRunning

	// PhaseWon - all mines flagged or all safe cells played
	PhaseWon

	// PhaseLost - agent uncovered a mine
	PhaseLost

	// PhaseEnded - final state after cleanup
	PhaseEnded
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	case PhaseEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if no further moves can be played in this phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost || p == PhaseEnded
}

// CanReceiveMoves returns true if the game accepts moves in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseWon, PhaseLost, PhaseEnded}
	case PhaseWon:
		return []GamePhase{PhaseEnded}
	case PhaseLost:
		return []GamePhase{PhaseEnded}
	case PhaseEnded:
		return []GamePhase{}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Initializing":
		return PhaseInitializing, nil
	case "Running":
		return PhaseRunning, nil
	case "Won":
		return PhaseWon, nil
	case "Lost":
		return PhaseLost, nil
	case "Ended":
		return PhaseEnded, nil
	default:
		return PhaseInitializing, fmt.Errorf("unknown phase: %q", s)
	}
}
