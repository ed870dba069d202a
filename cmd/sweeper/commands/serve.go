package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gridmind/minesweeper-agent/internal/config"
	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/monitoring"
	"github.com/gridmind/minesweeper-agent/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP game server",
	Long: `Serve games over a JSON HTTP API. Each created game gets its own
board and agent; clients step games move by move or autoplay them to the
end. Finished and abandoned games are cleaned up in the background.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (empty to use config default)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (0 to use config default)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	setupLogging(cfg.Server.LogLevel, cfg.Server.LogFormat)

	host := cfg.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	manager := server.NewManager(server.ManagerConfig{
		MaxGames:         cfg.Server.MaxGames,
		FinishedGameTTL:  cfg.Server.FinishedGameTTLDuration(),
		AbandonedTimeout: cfg.Server.AbandonedTimeoutDuration(),
		Seed:             cfg.Solver.Seed,
		Logger:           log.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager.StartCleanup(ctx)

	monitor := monitoring.NewGoroutineMonitor(30*time.Second, 1000, log.Logger)
	monitor.RegisterGauge("active_games", manager.GameCount)
	monitor.Start()
	defer monitor.Stop()

	defaultBoard := game.Config{
		Width:  cfg.Game.Board.Width,
		Height: cfg.Game.Board.Height,
		Mines:  cfg.Game.Board.Mines,
	}
	handler := server.NewHandler(manager, defaultBoard, log.Logger)
	srv := server.NewServer(host, port, handler, log.Logger)

	// Reload validation limits when the config file changes on disk.
	config.WatchConfig(func() {
		log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutdown signal received")
	delay := time.Duration(cfg.Server.GracefulShutdownDelay) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), delay+10*time.Second)
	defer cancel()

	time.Sleep(delay)
	return srv.Shutdown(shutdownCtx)
}
