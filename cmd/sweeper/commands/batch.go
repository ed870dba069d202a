package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gridmind/minesweeper-agent/internal/config"
	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/printer"
	"github.com/gridmind/minesweeper-agent/internal/runner"
	"github.com/gridmind/minesweeper-agent/internal/solver"
)

var (
	batchGames  int
	batchWidth  int
	batchHeight int
	batchMines  int
	batchSeed   int64
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Play many games and report aggregate statistics",
	Long: `Play a batch of games back to back and print the win rate, average
move count and deduction statistics. Useful for measuring how far pure
inference carries the agent on a given board shape.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchGames, "games", "n", 100, "Number of games to play")
	batchCmd.Flags().IntVar(&batchWidth, "width", 0, "Board width (0 to use config default)")
	batchCmd.Flags().IntVar(&batchHeight, "height", 0, "Board height (0 to use config default)")
	batchCmd.Flags().IntVar(&batchMines, "mines", 0, "Mine count (0 to use config default)")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 0, "Random seed (0 for time-based)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	setupLogging("warn", cfg.Server.LogFormat)

	boardCfg := boardConfigFromFlags(cfg, batchWidth, batchHeight, batchMines)
	rng := newSeededRng(batchSeed, cfg.Solver.Seed)

	var (
		wins        int
		totalMoves  int
		safeMoves   int
		randomMoves int
	)

	printer.Step("playing %d games on %dx%d with %d mines\n",
		batchGames, boardCfg.Width, boardCfg.Height, boardCfg.Mines)
	start := time.Now()

	for i := 0; i < batchGames; i++ {
		board, err := game.NewBoard(boardCfg, rng)
		if err != nil {
			return printer.Error("Invalid board configuration", err.Error())
		}

		gameID := uuid.NewString()
		agent := solver.NewAgent(solver.Config{
			Width:  boardCfg.Width,
			Height: boardCfg.Height,
			GameID: gameID,
			Rng:    rng,
			Logger: log.Logger,
		})

		r, err := runner.New(runner.Config{
			GameID: gameID,
			Board:  board,
			Agent:  agent,
			Logger: log.Logger,
		})
		if err != nil {
			return err
		}

		res, err := r.Run(context.Background())
		if err != nil {
			return err
		}

		if res.Outcome == runner.OutcomeWon {
			wins++
		}
		totalMoves += res.Moves
		safeMoves += res.SafeMoves
		randomMoves += res.RandomMoves
	}

	elapsed := time.Since(start)
	winRate := float64(wins) / float64(batchGames) * 100

	printer.Println()
	printer.Printf("games:        %d\n", batchGames)
	printer.Printf("wins:         %d (%.1f%%)\n", wins, winRate)
	printer.Printf("avg moves:    %.1f\n", float64(totalMoves)/float64(batchGames))
	printer.Printf("safe moves:   %d\n", safeMoves)
	printer.Printf("random moves: %d\n", randomMoves)
	printer.Printf("elapsed:      %s\n", elapsed.Round(time.Millisecond))
	return nil
}
