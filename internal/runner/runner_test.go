package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/game/states"
	"github.com/gridmind/minesweeper-agent/internal/solver"
	"github.com/gridmind/minesweeper-agent/internal/testutil"
)

func newTestRunner(t *testing.T, board *game.Board, bus events.Publisher) *Runner {
	t.Helper()
	agent := solver.NewAgent(solver.Config{
		Width:  board.Width(),
		Height: board.Height(),
		GameID: "test-game",
		Rng:    testutil.NewTestRNG(1),
		Logger: testutil.NopLogger(),
		Bus:    bus,
	})
	r, err := New(Config{
		GameID: "test-game",
		Board:  board,
		Agent:  agent,
		Bus:    bus,
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)
	return r
}

func TestNew_RequiresBoardAndAgent(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestRunner_WinsMinelessBoard(t *testing.T) {
	// With no mines, the flag set matches the mine set from the start, so
	// the first revealed move already satisfies the win condition.
	board := testutil.MinelessBoard(t, 3, 3)
	r := newTestRunner(t, board, nil)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, states.PhaseWon, r.Phase())
	assert.Equal(t, 0, res.MinesFound)
}

func TestRunner_WinsCornerMineBoard(t *testing.T) {
	// Seeding the far corner makes the opening deterministic; from there
	// every remaining cell is deduced safe, so the agent never has to
	// guess.
	board := testutil.CornerMineBoard(t)
	r := newTestRunner(t, board, nil)
	r.Agent().MarkSafe(core.NewCell(2, 2))

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.Equal(t, states.PhaseWon, r.Phase())
	assert.Equal(t, 0, res.RandomMoves)
	assert.False(t, board.Revealed(core.NewCell(0, 0)))
}

func TestRunner_WinsByDeducingTheMine(t *testing.T) {
	// 2x1 board, mine at (0,1). Seeding the safe cell makes the first move
	// deterministic; its observation {(0,1)} = 1 proves the mine, which the
	// runner flags, ending the game.
	board := testutil.CreateTestBoard(t, 2, 1, core.NewCell(0, 1))
	r := newTestRunner(t, board, nil)
	r.Agent().MarkSafe(core.NewCell(0, 0))

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeWon, res.Outcome)
	assert.True(t, board.Flagged(core.NewCell(0, 1)))
	assert.Equal(t, 1, res.MinesFound)
	assert.Equal(t, 1, res.SafeMoves)
	assert.Equal(t, 0, res.RandomMoves)
}

func TestRunner_LosesOnMine(t *testing.T) {
	// Misinform the agent so its "safe" move uncovers the mine.
	board := testutil.CreateTestBoard(t, 2, 1, core.NewCell(0, 0))
	r := newTestRunner(t, board, nil)
	r.Agent().MarkSafe(core.NewCell(0, 0))

	require.NoError(t, r.Start())
	move, err := r.Step()
	require.NoError(t, err)

	assert.True(t, move.Mine)
	assert.Equal(t, states.PhaseLost, r.Phase())
	assert.Equal(t, OutcomeLost, r.Result().Outcome)
}

func TestRunner_PlayCell(t *testing.T) {
	board := testutil.CornerMineBoard(t)
	r := newTestRunner(t, board, nil)
	require.NoError(t, r.Start())

	move, err := r.PlayCell(core.NewCell(1, 1))
	require.NoError(t, err)
	assert.Equal(t, events.StrategyManual, move.Strategy)
	assert.True(t, board.Revealed(core.NewCell(1, 1)))
	assert.True(t, r.Agent().KnownSafe(core.NewCell(1, 1)))

	_, err = r.PlayCell(core.NewCell(1, 1))
	assert.Error(t, err, "revealing the same cell twice is rejected")

	_, err = r.PlayCell(core.NewCell(5, 5))
	assert.True(t, errors.Is(err, core.ErrInvalidCell))
}

func TestRunner_PlayCellZeroFloods(t *testing.T) {
	// Clicking a zero cell floods the whole safe region, which on this
	// board clears every safe cell and wins immediately.
	board := testutil.CornerMineBoard(t)
	r := newTestRunner(t, board, nil)
	require.NoError(t, r.Start())

	_, err := r.PlayCell(core.NewCell(2, 2))
	require.NoError(t, err)

	assert.True(t, board.AllSafeRevealed())
	assert.Equal(t, states.PhaseWon, r.Phase())
}

func TestRunner_PlayCellMineLoses(t *testing.T) {
	board := testutil.CreateTestBoard(t, 2, 2, core.NewCell(0, 0))
	r := newTestRunner(t, board, nil)
	require.NoError(t, r.Start())

	move, err := r.PlayCell(core.NewCell(0, 0))
	require.NoError(t, err)
	assert.True(t, move.Mine)
	assert.Equal(t, states.PhaseLost, r.Phase())
}

func TestRunner_StepAfterTerminalFails(t *testing.T) {
	board := testutil.CreateTestBoard(t, 2, 1, core.NewCell(0, 0))
	r := newTestRunner(t, board, nil)
	r.Agent().MarkSafe(core.NewCell(0, 0))

	require.NoError(t, r.Start())
	_, err := r.Step()
	require.NoError(t, err)

	_, err = r.Step()
	assert.True(t, errors.Is(err, core.ErrGameOver))
}

func TestRunner_StepBeforeStartFails(t *testing.T) {
	board := testutil.MinelessBoard(t, 2, 2)
	r := newTestRunner(t, board, nil)

	_, err := r.Step()
	assert.True(t, errors.Is(err, core.ErrGameOver))
}

func TestRunner_ResultDurationFrozenAfterFinish(t *testing.T) {
	board := testutil.MinelessBoard(t, 2, 2)
	r := newTestRunner(t, board, nil)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, res.Duration, r.Result().Duration,
		"duration must stop accruing once the game ends")
}

func TestRunner_PublishesLifecycleEvents(t *testing.T) {
	bus := events.NewEventBus()
	counts := make(map[string]int)
	for _, et := range []string{
		events.TypeGameStarted, events.TypeMovePlayed,
		events.TypeCellRevealed, events.TypeGameEnded,
	} {
		et := et
		bus.SubscribeFunc(et, func(events.Event) { counts[et]++ })
	}

	board := testutil.CreateTestBoard(t, 2, 1, core.NewCell(0, 1))
	r := newTestRunner(t, board, bus)
	r.Agent().MarkSafe(core.NewCell(0, 0))

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, counts[events.TypeGameStarted])
	assert.Equal(t, 1, counts[events.TypeMovePlayed])
	assert.Equal(t, 1, counts[events.TypeCellRevealed])
	assert.Equal(t, 1, counts[events.TypeGameEnded])
}

func TestRunner_RunHonorsContext(t *testing.T) {
	board := testutil.CreateTestBoard(t, 8, 8, core.NewCell(0, 0))
	r := newTestRunner(t, board, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
