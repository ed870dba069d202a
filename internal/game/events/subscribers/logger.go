package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game/events"
)

// LoggerSubscriber logs game events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent = logEvent.
			Int("width", e.Width).
			Int("height", e.Height).
			Int("mines", e.Mines)

	case *events.GameEndedEvent:
		logEvent = logEvent.
			Str("outcome", e.Outcome).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.MovePlayedEvent:
		logEvent = logEvent.
			Stringer("cell", e.Cell).
			Str("strategy", e.Strategy).
			Int("move", e.Move)

	case *events.CellRevealedEvent:
		logEvent = logEvent.
			Stringer("cell", e.Cell).
			Int("adjacent_mines", e.AdjacentMines)

	case *events.MineDeducedEvent:
		logEvent = logEvent.Stringer("cell", e.Cell)

	case *events.SafeDeducedEvent:
		logEvent = logEvent.Stringer("cell", e.Cell)

	case *events.SentenceAddedEvent:
		logEvent = logEvent.
			Str("sentence", e.Sentence).
			Int("size", e.Size).
			Int("count", e.Count)

	case *events.SentenceDerivedEvent:
		logEvent = logEvent.
			Str("sentence", e.Sentence).
			Int("size", e.Size).
			Int("count", e.Count)

	case *events.StateTransitionEvent:
		logEvent = logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	logEvent.Msg("Game event")
}
