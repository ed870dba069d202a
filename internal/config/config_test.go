package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  board:
    width: 16
    height: 16
    mines: 40
solver:
  seed: 42
server:
  port: 9090
ui:
  window:
    width: 1024
    height: 768
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err = Init(configFile)
	require.NoError(t, err)

	// Test loaded values
	c := Get()
	assert.Equal(t, 16, c.Game.Board.Width)
	assert.Equal(t, 16, c.Game.Board.Height)
	assert.Equal(t, 40, c.Game.Board.Mines)
	assert.Equal(t, int64(42), c.Solver.Seed)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 1024, c.UI.Window.Width)
	assert.Equal(t, 768, c.UI.Window.Height)
}

func TestInitWithDefaults(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize with non-existent config (should use defaults)
	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 8, c.Game.Board.Width)
	assert.Equal(t, 8, c.Game.Board.Mines)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 100, c.Server.MaxGames)
	assert.Equal(t, 5*time.Minute, c.Server.FinishedGameTTLDuration())
	assert.Equal(t, 30*time.Minute, c.Server.AbandonedTimeoutDuration())
}

func TestEnvironmentVariables(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Set environment variables
	os.Setenv("SWEEPER_GAME_BOARD_MINES", "12")
	os.Setenv("SWEEPER_SERVER_PORT", "9191")
	defer os.Unsetenv("SWEEPER_GAME_BOARD_MINES")
	defer os.Unsetenv("SWEEPER_SERVER_PORT")

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Environment variables should override
	c := Get()
	assert.Equal(t, 12, c.Game.Board.Mines)
	assert.Equal(t, 9191, c.Server.Port)
}

func TestSet(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set values
	Set("game.board.width", 30)
	Set("ui.window.width", 1280)

	// Check updated values
	c := Get()
	assert.Equal(t, 30, c.Game.Board.Width)
	assert.Equal(t, 1280, c.UI.Window.Width)
}

func TestGetHelpers(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Initialize config
	err := Init("")
	require.NoError(t, err)

	// Set some values
	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)

	// Test getters
	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero board width", func(c *Config) { c.Game.Board.Width = 0 }, true},
		{"negative mines", func(c *Config) { c.Game.Board.Mines = -1 }, true},
		{"mines fill board", func(c *Config) { c.Game.Board.Mines = c.Game.Board.Width * c.Game.Board.Height }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero max games", func(c *Config) { c.Server.MaxGames = 0 }, true},
		{"negative ttl", func(c *Config) { c.Server.FinishedGameTTL = -1 }, true},
		{"zero tile size", func(c *Config) { c.UI.Game.TileSize = 0 }, true},
		{"zero move interval", func(c *Config) { c.UI.Game.MoveInterval = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg = nil
			v = nil
			require.NoError(t, Init(""))

			c := Get()
			tt.mutate(c)
			err := Validate(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadEnvironmentConfig(t *testing.T) {
	// Create temporary config files
	tmpDir := t.TempDir()

	// Base config
	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  board:
    width: 8
server:
  port: 8080
`
	err := os.WriteFile(baseConfig, []byte(baseContent), 0644)
	require.NoError(t, err)

	// Environment-specific config
	envConfig := filepath.Join(tmpDir, "config.prod.yaml")
	envContent := `
game:
  board:
    width: 16
server:
  port: 9090
  log_level: "error"
`
	err = os.WriteFile(envConfig, []byte(envContent), 0644)
	require.NoError(t, err)

	// Change to temp directory
	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	// Reset global state
	cfg = nil
	v = nil

	// Initialize base config
	err = Init(baseConfig)
	require.NoError(t, err)

	// Load environment config
	err = LoadEnvironmentConfig("prod")
	require.NoError(t, err)

	// Check merged values
	c := Get()
	assert.Equal(t, 16, c.Game.Board.Width)      // Overridden
	assert.Equal(t, 9090, c.Server.Port)         // Overridden
	assert.Equal(t, "error", c.Server.LogLevel)  // New value
}
