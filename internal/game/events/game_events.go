package events

import (
	"time"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeMovePlayed      = "move.played"
	TypeCellRevealed    = "cell.revealed"
	TypeMineDeduced     = "mine.deduced"
	TypeSafeDeduced     = "safe.deduced"
	TypeSentenceAdded   = "sentence.added"
	TypeSentenceDerived = "sentence.derived"
	TypeStateTransition = "state.transition"
)

// Move strategies reported on MovePlayedEvent
const (
	StrategySafe   = "safe"
	StrategyRandom = "random"
	StrategyManual = "manual"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Width  int
	Height int
	Mines  int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, width, height, mines int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameStarted,
			Time:      time.Now(),
			Game:      gameID,
		},
		Width:  width,
		Height: height,
		Mines:  mines,
	}
}

// GameEndedEvent is published when a game reaches a terminal phase
type GameEndedEvent struct {
	BaseEvent
	Outcome  string
	Moves    int
	Duration time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID, outcome string, moves int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeGameEnded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Outcome:  outcome,
		Moves:    moves,
		Duration: duration,
	}
}

// MovePlayedEvent is published when the agent picks a cell to play
type MovePlayedEvent struct {
	BaseEvent
	Cell     core.Cell
	Strategy string
	Move     int
}

// NewMovePlayedEvent creates a new MovePlayedEvent
func NewMovePlayedEvent(gameID string, cell core.Cell, strategy string, move int) *MovePlayedEvent {
	return &MovePlayedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeMovePlayed,
			Time:      time.Now(),
			Game:      gameID,
		},
		Cell:     cell,
		Strategy: strategy,
		Move:     move,
	}
}

// CellRevealedEvent is published when the board reports a safe cell's adjacent mine count
type CellRevealedEvent struct {
	BaseEvent
	Cell          core.Cell
	AdjacentMines int
}

// NewCellRevealedEvent creates a new CellRevealedEvent
func NewCellRevealedEvent(gameID string, cell core.Cell, adjacentMines int) *CellRevealedEvent {
	return &CellRevealedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeCellRevealed,
			Time:      time.Now(),
			Game:      gameID,
		},
		Cell:          cell,
		AdjacentMines: adjacentMines,
	}
}

// MineDeducedEvent is published when the agent proves a cell is a mine
type MineDeducedEvent struct {
	BaseEvent
	Cell core.Cell
}

// NewMineDeducedEvent creates a new MineDeducedEvent
func NewMineDeducedEvent(gameID string, cell core.Cell) *MineDeducedEvent {
	return &MineDeducedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeMineDeduced,
			Time:      time.Now(),
			Game:      gameID,
		},
		Cell: cell,
	}
}

// SafeDeducedEvent is published when the agent proves a cell is safe
type SafeDeducedEvent struct {
	BaseEvent
	Cell core.Cell
}

// NewSafeDeducedEvent creates a new SafeDeducedEvent
func NewSafeDeducedEvent(gameID string, cell core.Cell) *SafeDeducedEvent {
	return &SafeDeducedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeSafeDeduced,
			Time:      time.Now(),
			Game:      gameID,
		},
		Cell: cell,
	}
}

// SentenceAddedEvent is published when an observation produces a new sentence
type SentenceAddedEvent struct {
	BaseEvent
	Sentence string
	Size     int
	Count    int
}

// NewSentenceAddedEvent creates a new SentenceAddedEvent
func NewSentenceAddedEvent(gameID, sentence string, size, count int) *SentenceAddedEvent {
	return &SentenceAddedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeSentenceAdded,
			Time:      time.Now(),
			Game:      gameID,
		},
		Sentence: sentence,
		Size:     size,
		Count:    count,
	}
}

// SentenceDerivedEvent is published when subset inference derives a new sentence
type SentenceDerivedEvent struct {
	BaseEvent
	Sentence string
	Size     int
	Count    int
}

// NewSentenceDerivedEvent creates a new SentenceDerivedEvent
func NewSentenceDerivedEvent(gameID, sentence string, size, count int) *SentenceDerivedEvent {
	return &SentenceDerivedEvent{
		BaseEvent: BaseEvent{
			EventType: TypeSentenceDerived,
			Time:      time.Now(),
			Game:      gameID,
		},
		Sentence: sentence,
		Size:     size,
		Count:    count,
	}
}

// StateTransitionEvent is published when a game moves between lifecycle phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: BaseEvent{
			EventType: TypeStateTransition,
			Time:      time.Now(),
			Game:      gameID,
		},
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
