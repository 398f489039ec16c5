package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wfunc/whist/whist"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddress    string        `mapstructure:"http_address"`
	RPCAddress     string        `mapstructure:"rpc_address"`
	MetricsAddress string        `mapstructure:"metrics_address"`
	SessionTimeout time.Duration `mapstructure:"session_timeout"`
}

type GameConfig struct {
	// Players is the number of seats at every table.
	Players int `mapstructure:"players"`
	// Seed fixes shuffles; 0 seeds every game from the clock.
	Seed         int64         `mapstructure:"seed"`
	TrickPause   time.Duration `mapstructure:"trick_pause"`
	RoundPause   time.Duration `mapstructure:"round_pause"`
	BotFillDelay time.Duration `mapstructure:"bot_fill_delay"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type DatabaseConfig struct {
	// Driver is one of memory, gorm or sql.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	DriverMemory = "memory"
	DriverGorm   = "gorm"
	DriverSQL    = "sql"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.rpc_address", ":8081")
	v.SetDefault("server.metrics_address", ":9090")
	v.SetDefault("server.session_timeout", "2m")
	v.SetDefault("game.players", 4)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.trick_pause", "1500ms")
	v.SetDefault("game.round_pause", "3s")
	v.SetDefault("game.bot_fill_delay", "0s")
	v.SetDefault("game.tick_interval", "100ms")
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "whist")
	v.SetDefault("database.postgres.dbname", "whist")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml from path, overlays WHIST_* environment
// variables and falls back to defaults when the file is missing.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("whist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Game.Players < whist.MinPlayers || c.Game.Players > whist.MaxPlayers {
		return fmt.Errorf("game.players must be between %d and %d, got %d", whist.MinPlayers, whist.MaxPlayers, c.Game.Players)
	}
	switch c.Database.Driver {
	case DriverMemory, DriverGorm, DriverSQL:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Game.TrickPause < 0 || c.Game.RoundPause < 0 || c.Game.BotFillDelay < 0 {
		return errors.New("game pauses must not be negative")
	}
	if c.Game.TickInterval <= 0 {
		return errors.New("game.tick_interval must be positive")
	}
	return nil
}
