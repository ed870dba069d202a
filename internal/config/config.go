package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Solver      SolverConfig      `mapstructure:"solver"`
	Server      ServerConfig      `mapstructure:"server"`
	UI          UIConfig          `mapstructure:"ui"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Board BoardConfig `mapstructure:"board"`
}

// BoardConfig holds board dimensions and mine count
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	Mines  int `mapstructure:"mines"`
}

// SolverConfig holds agent settings
type SolverConfig struct {
	// Seed for the agent's random move source; 0 means time-based.
	Seed int64 `mapstructure:"seed"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	LogFormat             string `mapstructure:"log_format"`
	MaxGames              int    `mapstructure:"max_games"`
	FinishedGameTTL       int    `mapstructure:"finished_game_ttl"`
	AbandonedTimeout      int    `mapstructure:"abandoned_timeout"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
}

// FinishedGameTTLDuration returns the finished-game retention as a duration
func (s ServerConfig) FinishedGameTTLDuration() time.Duration {
	return time.Duration(s.FinishedGameTTL) * time.Second
}

// AbandonedTimeoutDuration returns the abandoned-game timeout as a duration
func (s ServerConfig) AbandonedTimeoutDuration() time.Duration {
	return time.Duration(s.AbandonedTimeout) * time.Second
}

// UIConfig holds UI/client configuration
type UIConfig struct {
	Window WindowConfig `mapstructure:"window"`
	Game   UIGameConfig `mapstructure:"game"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// UIGameConfig holds UI game settings
type UIGameConfig struct {
	TileSize     int `mapstructure:"tile_size"`
	MoveInterval int `mapstructure:"move_interval"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	ShowBoard      bool `mapstructure:"show_board"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults (classic beginner board)
	v.SetDefault("game.board.width", 8)
	v.SetDefault("game.board.height", 8)
	v.SetDefault("game.board.mines", 8)

	// Solver defaults
	v.SetDefault("solver.seed", 0)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
	v.SetDefault("server.max_games", 100)
	v.SetDefault("server.finished_game_ttl", 300)
	v.SetDefault("server.abandoned_timeout", 1800)
	v.SetDefault("server.graceful_shutdown_delay", 5)

	// UI defaults
	v.SetDefault("ui.window.width", 640)
	v.SetDefault("ui.window.height", 480)
	v.SetDefault("ui.window.title", "Minesweeper Agent")
	v.SetDefault("ui.game.tile_size", 48)
	v.SetDefault("ui.game.move_interval", 30)

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_board", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/minesweeper-agent")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("SWEEPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If we have a specific config path and it doesn't exist, that's ok - use defaults
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	// Try to find environment-specific config
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate board settings
	if c.Game.Board.Width <= 0 || c.Game.Board.Height <= 0 {
		return fmt.Errorf("game.board dimensions must be positive")
	}
	if c.Game.Board.Mines < 0 {
		return fmt.Errorf("game.board.mines must be non-negative")
	}
	if c.Game.Board.Mines >= c.Game.Board.Width*c.Game.Board.Height {
		return fmt.Errorf("game.board.mines must be smaller than the cell count")
	}

	// Validate server configuration
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive")
	}
	if c.Server.FinishedGameTTL < 0 {
		return fmt.Errorf("server.finished_game_ttl must be non-negative")
	}
	if c.Server.AbandonedTimeout < 0 {
		return fmt.Errorf("server.abandoned_timeout must be non-negative")
	}
	if c.Server.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.graceful_shutdown_delay must be non-negative")
	}

	// Validate UI configuration
	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.Game.TileSize <= 0 {
		return fmt.Errorf("ui.game.tile_size must be positive")
	}
	if c.UI.Game.MoveInterval <= 0 {
		return fmt.Errorf("ui.game.move_interval must be positive")
	}

	return nil
}
