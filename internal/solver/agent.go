package solver

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
)

// Config holds everything needed to construct an Agent
type Config struct {
	Width  int
	Height int
	GameID string
	Rng    *rand.Rand
	Logger zerolog.Logger
	Bus    events.Publisher // optional; nil disables event publishing
}

// Agent is a knowledge-based Minesweeper player. It owns its knowledge base
// exclusively; the board is only ever consulted by the surrounding game loop,
// never by the agent itself. An Agent is not safe for concurrent use - each
// game gets its own instance.
type Agent struct {
	width  int
	height int
	gameID string

	movesMade core.CellSet
	safes     core.CellSet
	mines     core.CellSet
	knowledge []*Sentence

	rng    *rand.Rand
	logger zerolog.Logger
	bus    events.Publisher
}

// NewAgent creates an agent for a board of the given dimensions
func NewAgent(cfg Config) *Agent {
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Agent{
		width:     cfg.Width,
		height:    cfg.Height,
		gameID:    cfg.GameID,
		movesMade: core.NewCellSet(),
		safes:     core.NewCellSet(),
		mines:     core.NewCellSet(),
		knowledge: make([]*Sentence, 0),
		rng:       rng,
		logger:    cfg.Logger.With().Str("component", "agent").Logger(),
		bus:       cfg.Bus,
	}
}

func (a *Agent) publish(event events.Event) {
	if a.bus != nil {
		a.bus.Publish(event)
	}
}

// MarkMine records that cell is a mine and propagates the fact into every
// sentence. Marking an already-known mine repeats the propagation harmlessly.
func (a *Agent) MarkMine(cell core.Cell) {
	if !a.mines.Contains(cell) {
		a.mines.Add(cell)
		a.logger.Debug().Stringer("cell", cell).Msg("Deduced mine")
		a.publish(events.NewMineDeducedEvent(a.gameID, cell))
	}
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
}

// MarkSafe records that cell is safe and propagates the fact into every sentence
func (a *Agent) MarkSafe(cell core.Cell) {
	if !a.safes.Contains(cell) {
		a.safes.Add(cell)
		a.logger.Debug().Stringer("cell", cell).Msg("Deduced safe cell")
		a.publish(events.NewSafeDeducedEvent(a.gameID, cell))
	}
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

// AddKnowledge feeds one observation into the knowledge base: cell was just
// revealed safe by the board, with count mines among its neighbors. It records
// the move, derives every fact the current knowledge supports, and runs one
// round of subset inference. Inference is intentionally not iterated to a
// fixed point within a single call; subsequent observations keep refining.
func (a *Agent) AddKnowledge(cell core.Cell, count int) {
	a.movesMade.Add(cell)
	a.MarkSafe(cell)

	// Build the observation sentence from unresolved neighbors only: cells
	// already known safe contribute nothing, and each known mine accounts
	// for one of the reported adjacent mines.
	unresolved := core.NewCellSet()
	working := count
	for _, n := range cell.ValidNeighbors(a.width, a.height) {
		switch {
		case a.safes.Contains(n):
		case a.mines.Contains(n):
			working--
		default:
			unresolved.Add(n)
		}
	}

	observed := NewSentence(unresolved, working)
	a.knowledge = append(a.knowledge, observed)
	a.logger.Debug().
		Stringer("move", cell).
		Str("sentence", observed.String()).
		Msg("Added observation sentence")
	a.publish(events.NewSentenceAddedEvent(a.gameID, observed.String(), observed.Cells.Len(), observed.Count))

	// Work on a snapshot so the collection being iterated is never mutated.
	// The sentences themselves are shared, so marks propagate into every
	// sentence including ones not yet visited in this pass.
	snapshot := make([]*Sentence, len(a.knowledge))
	copy(snapshot, a.knowledge)

	for _, s := range snapshot {
		for _, mine := range s.KnownMines().Cells() {
			a.MarkMine(mine)
		}
		for _, safe := range s.KnownSafes().Cells() {
			a.MarkSafe(safe)
		}
	}

	// Subset inference over ordered pairs: if s1's cells are wholly contained
	// in s2's, their difference is itself a valid constraint with the count
	// difference. Equal sentences must not be re-added.
	seen := make(map[string]struct{}, len(a.knowledge))
	for _, s := range a.knowledge {
		seen[s.Key()] = struct{}{}
	}

	for _, s1 := range snapshot {
		for _, s2 := range snapshot {
			if s1 == s2 || s1.Equal(s2) {
				continue
			}
			if !s1.Cells.SubsetOf(s2.Cells) {
				continue
			}

			derived := NewSentence(s2.Cells.Difference(s1.Cells), s2.Count-s1.Count)
			if _, dup := seen[derived.Key()]; dup {
				continue
			}
			seen[derived.Key()] = struct{}{}
			a.knowledge = append(a.knowledge, derived)

			a.logger.Debug().Str("sentence", derived.String()).Msg("Derived sentence by subset inference")
			a.publish(events.NewSentenceDerivedEvent(a.gameID, derived.String(), derived.Cells.Len(), derived.Count))
		}
	}

	a.pruneInert()
}

// pruneInert drops sentences whose cell set has been emptied and collapses
// duplicates. Mark propagation can shrink a superset sentence until it equals
// one already in the knowledge base, so dedup must run after mutation, not
// only at insert time. The first occurrence wins.
func (a *Agent) pruneInert() {
	kept := a.knowledge[:0]
	seen := make(map[string]struct{}, len(a.knowledge))
	for _, s := range a.knowledge {
		if s.IsInert() {
			continue
		}
		if _, dup := seen[s.Key()]; dup {
			continue
		}
		seen[s.Key()] = struct{}{}
		kept = append(kept, s)
	}
	a.knowledge = kept
}

// SafeMove returns a cell known to be safe that has not been played yet.
// The second return value is false when no such cell exists; that is a
// legitimate terminal signal, not an error.
func (a *Agent) SafeMove() (core.Cell, bool) {
	for cell := range a.safes {
		if !a.movesMade.Contains(cell) {
			return cell, true
		}
	}
	return core.Cell{}, false
}

// RandomMove returns a uniformly random cell among all board cells that have
// not been played and are not known mines. The second return value is false
// when the board is exhausted.
func (a *Agent) RandomMove() (core.Cell, bool) {
	candidates := make([]core.Cell, 0, a.width*a.height)
	for row := 0; row < a.height; row++ {
		for col := 0; col < a.width; col++ {
			cell := core.NewCell(row, col)
			if !a.movesMade.Contains(cell) && !a.mines.Contains(cell) {
				candidates = append(candidates, cell)
			}
		}
	}

	if len(candidates) == 0 {
		return core.Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// Safes returns a copy of the cells known to be safe
func (a *Agent) Safes() core.CellSet {
	return a.safes.Clone()
}

// Mines returns a copy of the cells known to be mines
func (a *Agent) Mines() core.CellSet {
	return a.mines.Clone()
}

// MovesMade returns a copy of the cells already played
func (a *Agent) MovesMade() core.CellSet {
	return a.movesMade.Clone()
}

// KnownSafe reports whether cell has been proven safe
func (a *Agent) KnownSafe(cell core.Cell) bool {
	return a.safes.Contains(cell)
}

// KnownMine reports whether cell has been proven to be a mine
func (a *Agent) KnownMine(cell core.Cell) bool {
	return a.mines.Contains(cell)
}

// KnowledgeSize returns the number of active sentences
func (a *Agent) KnowledgeSize() int {
	return len(a.knowledge)
}
