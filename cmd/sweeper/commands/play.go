package commands

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gridmind/minesweeper-agent/internal/config"
	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/printer"
	"github.com/gridmind/minesweeper-agent/internal/runner"
	"github.com/gridmind/minesweeper-agent/internal/solver"
)

var (
	playWidth  int
	playHeight int
	playMines  int
	playSeed   int64
	showBoard  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a single game in the terminal",
	Long: `Play one game and print the result. The agent reveals cells, reports
its deductions and flags mines as it proves them. Use --show-board to render
the board after every move.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playWidth, "width", 0, "Board width (0 to use config default)")
	playCmd.Flags().IntVar(&playHeight, "height", 0, "Board height (0 to use config default)")
	playCmd.Flags().IntVar(&playMines, "mines", 0, "Mine count (0 to use config default)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Random seed (0 for time-based)")
	playCmd.Flags().BoolVar(&showBoard, "show-board", false, "Render the board after every move")
	rootCmd.AddCommand(playCmd)
}

func boardConfigFromFlags(cfg *config.Config, width, height, mines int) game.Config {
	boardCfg := game.Config{
		Width:  cfg.Game.Board.Width,
		Height: cfg.Game.Board.Height,
		Mines:  cfg.Game.Board.Mines,
	}
	if width > 0 {
		boardCfg.Width = width
	}
	if height > 0 {
		boardCfg.Height = height
	}
	if mines > 0 {
		boardCfg.Mines = mines
	}
	return boardCfg
}

func newSeededRng(flagSeed, cfgSeed int64) *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = cfgSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	setupLogging(cfg.Server.LogLevel, cfg.Server.LogFormat)

	boardCfg := boardConfigFromFlags(cfg, playWidth, playHeight, playMines)
	rng := newSeededRng(playSeed, cfg.Solver.Seed)

	board, err := game.NewBoard(boardCfg, rng)
	if err != nil {
		return printer.Error("Invalid board configuration", err.Error())
	}

	gameID := uuid.NewString()
	bus := events.NewEventBus()
	bus.SubscribeFunc(events.TypeMineDeduced, func(e events.Event) {
		ev := e.(*events.MineDeducedEvent)
		printer.Step("deduced mine at %s\n", ev.Cell)
	})
	bus.SubscribeFunc(events.TypeMovePlayed, func(e events.Event) {
		ev := e.(*events.MovePlayedEvent)
		printer.Info("move %d: %s (%s)\n", ev.Move, ev.Cell, ev.Strategy)
	})
	if showBoard || cfg.Development.ShowBoard {
		bus.SubscribeFunc(events.TypeMovePlayed, func(events.Event) {
			printer.Println(board.String())
		})
	}

	agent := solver.NewAgent(solver.Config{
		Width:  boardCfg.Width,
		Height: boardCfg.Height,
		GameID: gameID,
		Rng:    rng,
		Logger: log.Logger,
		Bus:    bus,
	})

	r, err := runner.New(runner.Config{
		GameID: gameID,
		Board:  board,
		Agent:  agent,
		Bus:    bus,
		Logger: log.Logger,
	})
	if err != nil {
		return err
	}

	res, err := r.Run(context.Background())
	if err != nil {
		return err
	}

	printer.Println(board.String())
	switch res.Outcome {
	case runner.OutcomeWon:
		printer.Success("won in %d moves (%d safe, %d random), %d mines found\n",
			res.Moves, res.SafeMoves, res.RandomMoves, res.MinesFound)
	default:
		printer.Failure("lost after %d moves (%d safe, %d random)\n",
			res.Moves, res.SafeMoves, res.RandomMoves)
	}
	return nil
}
