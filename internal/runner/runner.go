// Package runner drives a game to completion: it asks the agent for moves,
// feeds observations back, flags deduced mines and decides win or loss.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/game/states"
	"github.com/gridmind/minesweeper-agent/internal/solver"
)

// Game outcomes reported in Result and game.ended events.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Config wires a runner to its board, agent and ambient services.
type Config struct {
	GameID string
	Board  *game.Board
	Agent  *solver.Agent
	Bus    events.Publisher
	Logger zerolog.Logger
}

// Move describes a single move the runner played.
type Move struct {
	Cell     core.Cell `json:"cell"`
	Strategy string    `json:"strategy"`
	Number   int       `json:"number"`
	Mine     bool      `json:"mine"`
}

// Result summarizes a finished game.
type Result struct {
	Outcome     string        `json:"outcome"`
	Moves       int           `json:"moves"`
	SafeMoves   int           `json:"safe_moves"`
	RandomMoves int           `json:"random_moves"`
	MinesFound  int           `json:"mines_found"`
	Duration    time.Duration `json:"duration"`
}

// Runner plays one game. It is not safe for concurrent use; callers that
// share a runner (the HTTP server does) serialize access themselves.
type Runner struct {
	gameID  string
	board   *game.Board
	agent   *solver.Agent
	bus     events.Publisher
	logger  zerolog.Logger
	tracker *states.Tracker

	moves       int
	safeMoves   int
	randomMoves int
	started     time.Time
	finished    time.Time
}

// New creates a runner for the given board and agent.
func New(cfg Config) (*Runner, error) {
	if cfg.Board == nil || cfg.Agent == nil {
		return nil, fmt.Errorf("runner requires a board and an agent")
	}
	return &Runner{
		gameID:  cfg.GameID,
		board:   cfg.Board,
		agent:   cfg.Agent,
		bus:     cfg.Bus,
		logger:  cfg.Logger.With().Str("component", "runner").Str("game_id", cfg.GameID).Logger(),
		tracker: states.NewTracker(cfg.GameID, cfg.Bus, cfg.Logger),
	}, nil
}

// Phase returns the game's current lifecycle phase.
func (r *Runner) Phase() states.GamePhase { return r.tracker.Current() }

// Board returns the board the runner plays on.
func (r *Runner) Board() *game.Board { return r.board }

// Agent returns the agent playing the game.
func (r *Runner) Agent() *solver.Agent { return r.agent }

// Moves returns the number of moves played so far.
func (r *Runner) Moves() int { return r.moves }

// Start transitions the game into the running phase and announces it.
func (r *Runner) Start() error {
	if err := r.tracker.TransitionTo(states.PhaseRunning, "game started"); err != nil {
		return err
	}
	r.started = time.Now()
	r.publish(events.NewGameStartedEvent(r.gameID, r.board.Width(), r.board.Height(), r.board.MineCount()))
	r.logger.Info().
		Int("width", r.board.Width()).
		Int("height", r.board.Height()).
		Int("mines", r.board.MineCount()).
		Msg("Game started")
	return nil
}

// Step plays one move: a safe move when the agent knows one, otherwise a
// random move. It feeds the observation back to the agent, flags newly
// deduced mines and updates the phase on win or loss.
func (r *Runner) Step() (Move, error) {
	if !r.tracker.Current().CanReceiveMoves() {
		return Move{}, fmt.Errorf("game is %s: %w", r.tracker.Current(), core.ErrGameOver)
	}

	cell, strategy, ok := r.pickMove()
	if !ok {
		// Every unplayed cell is a known mine, so all safe cells have
		// been played. Flag what remains and finish as a win.
		r.flagDeducedMines()
		r.finish(OutcomeWon, "no unplayed safe cells remain")
		return Move{}, nil
	}

	return r.play(cell, strategy)
}

// PlayCell plays a caller-chosen cell instead of asking the agent, for
// interactive play. The observation still feeds the agent's knowledge base,
// so manual moves and agent moves share one body of knowledge.
func (r *Runner) PlayCell(cell core.Cell) (Move, error) {
	if !r.tracker.Current().CanReceiveMoves() {
		return Move{}, fmt.Errorf("game is %s: %w", r.tracker.Current(), core.ErrGameOver)
	}
	if !cell.IsValid(r.board.Width(), r.board.Height()) {
		return Move{}, fmt.Errorf("cell %s: %w", cell, core.ErrInvalidCell)
	}
	if r.board.Revealed(cell) {
		return Move{}, fmt.Errorf("cell %s is already revealed", cell)
	}
	return r.play(cell, events.StrategyManual)
}

func (r *Runner) play(cell core.Cell, strategy string) (Move, error) {
	r.moves++
	move := Move{Cell: cell, Strategy: strategy, Number: r.moves}
	r.publish(events.NewMovePlayedEvent(r.gameID, cell, strategy, r.moves))
	r.logger.Debug().
		Stringer("cell", cell).
		Str("strategy", strategy).
		Int("move", r.moves).
		Msg("Playing move")

	if r.board.IsMine(cell) {
		move.Mine = true
		r.board.Reveal(cell)
		r.finish(OutcomeLost, "uncovered a mine")
		return move, nil
	}

	count, err := r.board.AdjacentMines(cell)
	if err != nil {
		return Move{}, err
	}
	if strategy == events.StrategyManual && count == 0 {
		// Manual zero reveals flood out like the classic game. The agent
		// still receives a single observation for the clicked cell.
		if err := r.board.FloodReveal(cell); err != nil {
			return Move{}, err
		}
	} else {
		r.board.Reveal(cell)
	}
	r.publish(events.NewCellRevealedEvent(r.gameID, cell, count))
	r.agent.AddKnowledge(cell, count)
	r.flagDeducedMines()

	if r.board.Won() || r.board.AllSafeRevealed() {
		r.finish(OutcomeWon, "all mines accounted for")
	}
	return move, nil
}

// Run plays moves until the game reaches a terminal phase or the context is
// canceled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.tracker.Current() == states.PhaseInitializing {
		if err := r.Start(); err != nil {
			return Result{}, err
		}
	}
	for !r.tracker.Current().IsTerminal() {
		if err := ctx.Err(); err != nil {
			return r.result(), err
		}
		if _, err := r.Step(); err != nil {
			return r.result(), err
		}
	}
	return r.result(), nil
}

// Result returns the game summary so far. The outcome is empty until the
// game reaches a terminal phase.
func (r *Runner) Result() Result { return r.result() }

func (r *Runner) pickMove() (core.Cell, string, bool) {
	if cell, ok := r.agent.SafeMove(); ok {
		r.safeMoves++
		return cell, events.StrategySafe, true
	}
	if cell, ok := r.agent.RandomMove(); ok {
		r.randomMoves++
		return cell, events.StrategyRandom, true
	}
	return core.Cell{}, "", false
}

func (r *Runner) flagDeducedMines() {
	for _, c := range r.agent.Mines().Cells() {
		if !r.board.Flagged(c) {
			r.board.Flag(c)
			r.logger.Info().Stringer("cell", c).Msg("Flagged deduced mine")
		}
	}
}

func (r *Runner) finish(outcome, reason string) {
	phase := states.PhaseWon
	if outcome == OutcomeLost {
		phase = states.PhaseLost
	}
	if err := r.tracker.TransitionTo(phase, reason); err != nil {
		r.logger.Error().Err(err).Msg("Failed to finish game")
		return
	}
	r.finished = time.Now()
	res := r.result()
	r.publish(events.NewGameEndedEvent(r.gameID, outcome, res.Moves, res.Duration))
	r.logger.Info().
		Str("outcome", outcome).
		Int("moves", res.Moves).
		Int("safe_moves", res.SafeMoves).
		Int("random_moves", res.RandomMoves).
		Dur("duration", res.Duration).
		Msg("Game ended")
}

func (r *Runner) result() Result {
	outcome := ""
	switch r.tracker.Current() {
	case states.PhaseWon:
		outcome = OutcomeWon
	case states.PhaseLost:
		outcome = OutcomeLost
	}
	// Duration stops accruing once the game finishes.
	var dur time.Duration
	switch {
	case !r.finished.IsZero():
		dur = r.finished.Sub(r.started)
	case !r.started.IsZero():
		dur = time.Since(r.started)
	}
	return Result{
		Outcome:     outcome,
		Moves:       r.moves,
		SafeMoves:   r.safeMoves,
		RandomMoves: r.randomMoves,
		MinesFound:  r.agent.Mines().Len(),
		Duration:    dur,
	}
}

func (r *Runner) publish(event events.Event) {
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
