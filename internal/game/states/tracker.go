package states

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game/events"
)

// Tracker guards a game's lifecycle phase and publishes a state.transition
// event for every accepted change. Safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	gameID  string
	current GamePhase
	bus     events.Publisher
	logger  zerolog.Logger
}

// NewTracker creates a tracker starting in PhaseInitializing. The bus may be
// nil, in which case transitions are only logged.
func NewTracker(gameID string, bus events.Publisher, logger zerolog.Logger) *Tracker {
	return &Tracker{
		gameID:  gameID,
		current: PhaseInitializing,
		bus:     bus,
		logger:  logger.With().Str("component", "phase_tracker").Str("game_id", gameID).Logger(),
	}
}

// Current returns the phase the game is in.
func (t *Tracker) Current() GamePhase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// TransitionTo moves the game to the target phase, rejecting transitions the
// phase table does not allow.
func (t *Tracker) TransitionTo(target GamePhase, reason string) error {
	t.mu.Lock()
	from := t.current
	if !from.CanTransitionTo(target) {
		t.mu.Unlock()
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	t.current = target
	t.mu.Unlock()

	t.logger.Debug().
		Str("from", from.String()).
		Str("to", target.String()).
		Str("reason", reason).
		Msg("Phase transition")

	if t.bus != nil {
		t.bus.Publish(events.NewStateTransitionEvent(t.gameID, from.String(), target.String(), reason))
	}
	return nil
}
