package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/attack15/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Game    engine.Rules  `yaml:"game"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type SessionConfig struct {
	TickRate   int `yaml:"tick_rate"`   // ticks per second
	OutboxSize int `yaml:"outbox_size"` // snapshots buffered per client before it is dropped
	// IdleTimeout closes a session once it has had no clients for this long. Zero disables it.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// TickInterval is the period between two session ticks.
func (s SessionConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Game: engine.DefaultRules(),
		Session: SessionConfig{
			TickRate:    60,
			OutboxSize:  8,
			IdleTimeout: 5 * time.Minute,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies ATTACK15_* environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Session.TickRate <= 0 || c.Session.TickRate > 1000 {
		return fmt.Errorf("%w: session.tick_rate must be in 1..1000, got %d", ErrInvalidConfig, c.Session.TickRate)
	}
	if c.Session.OutboxSize <= 0 {
		return fmt.Errorf("%w: session.outbox_size must be positive, got %d", ErrInvalidConfig, c.Session.OutboxSize)
	}
	if c.Session.IdleTimeout < 0 {
		return fmt.Errorf("%w: session.idle_timeout must not be negative, got %s", ErrInvalidConfig, c.Session.IdleTimeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("%w: game: %w", ErrInvalidConfig, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getEnv("ATTACK15_ADDR", cfg.Server.Addr)
	cfg.Log.Level = getEnv("ATTACK15_LOG_LEVEL", cfg.Log.Level)
	if v := os.Getenv("ATTACK15_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}

	var err error
	if cfg.Log.Development, err = getEnvAsBool("ATTACK15_LOG_DEVELOPMENT", cfg.Log.Development); err != nil {
		return err
	}
	if cfg.Session.TickRate, err = getEnvAsInt("ATTACK15_TICK_RATE", cfg.Session.TickRate); err != nil {
		return err
	}
	if cfg.Session.IdleTimeout, err = getEnvAsDuration("ATTACK15_IDLE_TIMEOUT", cfg.Session.IdleTimeout); err != nil {
		return err
	}
	if cfg.Game.TargetSum, err = getEnvAsInt("ATTACK15_TARGET_SUM", cfg.Game.TargetSum); err != nil {
		return err
	}
	if cfg.Game.RoundDuration, err = getEnvAsDuration("ATTACK15_ROUND_DURATION", cfg.Game.RoundDuration); err != nil {
		return err
	}
	if cfg.Game.ResetInterval, err = getEnvAsDuration("ATTACK15_RESET_INTERVAL", cfg.Game.ResetInterval); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, value)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, value)
	}
	return d, nil
}
