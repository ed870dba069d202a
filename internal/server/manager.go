// Package server exposes games over a JSON HTTP API. Each game is fully
// isolated: its own board, agent, runner and event bus.
package server

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/events"
	"github.com/gridmind/minesweeper-agent/internal/game/events/subscribers"
	"github.com/gridmind/minesweeper-agent/internal/runner"
	"github.com/gridmind/minesweeper-agent/internal/solver"
)

const cleanupInterval = 30 * time.Second

// ErrGameNotFound is returned when a game ID is unknown.
var ErrGameNotFound = fmt.Errorf("game not found")

type gameInstance struct {
	id     string
	runner *runner.Runner
	mu     sync.Mutex // serializes runner access

	// Activity tracking for cleanup
	createdAt    time.Time
	lastActivity time.Time
}

// ManagerConfig holds Manager construction parameters.
type ManagerConfig struct {
	MaxGames         int
	FinishedGameTTL  time.Duration
	AbandonedTimeout time.Duration
	Seed             int64
	Logger           zerolog.Logger
}

// Manager owns all active game instances.
type Manager struct {
	mu       sync.RWMutex
	games    map[string]*gameInstance
	maxGames int

	finishedGameTTL  time.Duration
	abandonedTimeout time.Duration

	seed    int64
	gameSeq atomic.Int64
	logger  zerolog.Logger
}

// NewManager creates a game manager. Cleanup does not run until
// StartCleanup is called.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		games:            make(map[string]*gameInstance),
		maxGames:         cfg.MaxGames,
		finishedGameTTL:  cfg.FinishedGameTTL,
		abandonedTimeout: cfg.AbandonedTimeout,
		seed:             cfg.Seed,
		logger:           cfg.Logger.With().Str("component", "game_manager").Logger(),
	}
}

// CreateGame builds a new isolated game and starts it.
func (m *Manager) CreateGame(boardCfg game.Config) (GameView, error) {
	m.mu.RLock()
	currentGames := len(m.games)
	m.mu.RUnlock()

	if m.maxGames > 0 && currentGames >= m.maxGames {
		m.logger.Warn().
			Int("current_games", currentGames).
			Int("max_games", m.maxGames).
			Msg("Rejecting game creation - server at capacity")
		return GameView{}, fmt.Errorf("server at capacity: %d/%d games active", currentGames, m.maxGames)
	}

	gameID := uuid.NewString()
	rng := m.newRng()

	board, err := game.NewBoard(boardCfg, rng)
	if err != nil {
		return GameView{}, err
	}

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("logger-"+gameID, m.logger, zerolog.DebugLevel))

	agent := solver.NewAgent(solver.Config{
		Width:  boardCfg.Width,
		Height: boardCfg.Height,
		GameID: gameID,
		Rng:    rng,
		Logger: m.logger,
		Bus:    bus,
	})

	r, err := runner.New(runner.Config{
		GameID: gameID,
		Board:  board,
		Agent:  agent,
		Bus:    bus,
		Logger: m.logger,
	})
	if err != nil {
		return GameView{}, err
	}
	if err := r.Start(); err != nil {
		return GameView{}, err
	}

	now := time.Now()
	instance := &gameInstance{
		id:           gameID,
		runner:       r,
		createdAt:    now,
		lastActivity: now,
	}

	m.mu.Lock()
	m.games[gameID] = instance
	m.mu.Unlock()

	m.logger.Info().
		Str("game_id", gameID).
		Int("width", boardCfg.Width).
		Int("height", boardCfg.Height).
		Int("mines", boardCfg.Mines).
		Msg("Game created")

	instance.mu.Lock()
	defer instance.mu.Unlock()
	return newGameView(instance), nil
}

// GetGame returns the current view of a game.
func (m *Manager) GetGame(id string) (GameView, error) {
	instance, err := m.instance(id)
	if err != nil {
		return GameView{}, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	return newGameView(instance), nil
}

// StepGame plays one agent move on the game.
func (m *Manager) StepGame(id string) (GameView, error) {
	instance, err := m.instance(id)
	if err != nil {
		return GameView{}, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	if _, err := instance.runner.Step(); err != nil {
		return GameView{}, err
	}
	instance.lastActivity = time.Now()
	return newGameView(instance), nil
}

// AutoplayGame runs the game until it reaches a terminal phase.
func (m *Manager) AutoplayGame(ctx context.Context, id string) (GameView, error) {
	instance, err := m.instance(id)
	if err != nil {
		return GameView{}, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	if _, err := instance.runner.Run(ctx); err != nil {
		return GameView{}, err
	}
	instance.lastActivity = time.Now()
	return newGameView(instance), nil
}

// DeleteGame removes a game.
func (m *Manager) DeleteGame(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("game %s: %w", id, ErrGameNotFound)
	}
	delete(m.games, id)
	m.logger.Info().Str("game_id", id).Msg("Game deleted")
	return nil
}

// GameCount returns the number of active games.
func (m *Manager) GameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// StartCleanup launches the periodic cleanup loop. It stops when the
// context is canceled.
func (m *Manager) StartCleanup(ctx context.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error().
					Interface("panic", r).
					Msg("Game cleanup goroutine panicked - restarting")
				time.Sleep(5 * time.Second)
				m.StartCleanup(ctx)
			}
		}()

		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.cleanupGames()
			}
		}
	}()
}

// cleanupGames removes finished and abandoned games from memory
func (m *Manager) cleanupGames() {
	m.mu.RLock()
	refs := make([]*gameInstance, 0, len(m.games))
	for _, g := range m.games {
		refs = append(refs, g)
	}
	m.mu.RUnlock()

	now := time.Now()
	var toDelete []string

	for _, g := range refs {
		g.mu.Lock()
		idle := now.Sub(g.lastActivity)
		terminal := g.runner.Phase().IsTerminal()
		g.mu.Unlock()

		switch {
		case terminal && idle > m.finishedGameTTL:
			toDelete = append(toDelete, g.id)
			m.logger.Info().
				Str("game_id", g.id).
				Dur("idle", idle).
				Msg("Cleaning up finished game")
		case !terminal && idle > m.abandonedTimeout:
			toDelete = append(toDelete, g.id)
			m.logger.Info().
				Str("game_id", g.id).
				Dur("idle", idle).
				Msg("Cleaning up abandoned game")
		}
	}

	if len(toDelete) == 0 {
		return
	}

	m.mu.Lock()
	for _, id := range toDelete {
		delete(m.games, id)
	}
	m.mu.Unlock()
}

func (m *Manager) instance(id string) (*gameInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instance, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, ErrGameNotFound)
	}
	return instance, nil
}

// newRng derives a per-game random source. A configured seed makes the
// sequence of games reproducible while each game still gets its own
// board layout.
func (m *Manager) newRng() *rand.Rand {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + m.gameSeq.Add(1)))
}
