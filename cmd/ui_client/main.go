package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/config"
	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/game/events/subscribers"
	"github.com/gridmind/minesweeper-agent/internal/runner"
	"github.com/gridmind/minesweeper-agent/internal/solver"
	"github.com/gridmind/minesweeper-agent/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Random seed (0 for time-based)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal(err)
	}
	cfg := config.Get()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if *seed == 0 {
		*seed = cfg.Solver.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	boardCfg := game.Config{
		Width:  cfg.Game.Board.Width,
		Height: cfg.Game.Board.Height,
		Mines:  cfg.Game.Board.Mines,
	}
	board, err := game.NewBoard(boardCfg, rng)
	if err != nil {
		log.Fatal(err)
	}

	gameID := uuid.NewString()
	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("logger-"+gameID, logger, zerolog.InfoLevel))

	agent := solver.NewAgent(solver.Config{
		Width:  boardCfg.Width,
		Height: boardCfg.Height,
		GameID: gameID,
		Rng:    rng,
		Logger: logger,
		Bus:    bus,
	})

	r, err := runner.New(runner.Config{
		GameID: gameID,
		Board:  board,
		Agent:  agent,
		Bus:    bus,
		Logger: logger,
	})
	if err != nil {
		log.Fatal(err)
	}

	uiGame, err := ui.NewUIGame(r)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ui.ScreenWidth(), ui.ScreenHeight())
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(uiGame); err != nil {
		log.Fatal(err)
	}
}
