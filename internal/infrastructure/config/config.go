package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/store"
)

type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Exposure store
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // sqlite, postgres or memory
	DatabaseURL    string `mapstructure:"DATABASE_URL"`    // file path for sqlite, DSN for postgres

	// Question banks
	BankDir     string `mapstructure:"BANK_DIR"`
	BankCatalog string `mapstructure:"BANK_CATALOG"` // optional YAML catalog, built-in domains when empty
	StaticDir   string `mapstructure:"STATIC_DIR"`   // frontend served under /static/ and /app/ when set

	DefaultSessionSize int `mapstructure:"DEFAULT_SESSION_SIZE"`
	MaxSessionSize     int `mapstructure:"MAX_SESSION_SIZE"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // json or text
}

// Load reads configuration from, in increasing priority: built-in defaults,
// the YAML file at path (or ./config.yaml when path is empty and the file
// exists), and environment variables. A .env file in the working directory is
// loaded into the environment first.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read config.yaml: %w", err)
			}
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DATABASE_DRIVER", store.DriverSQLite)
	v.SetDefault("DATABASE_URL", "tracker.db")
	v.SetDefault("BANK_DIR", "data")
	v.SetDefault("BANK_CATALOG", "")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("DEFAULT_SESSION_SIZE", practicesession.DefaultCount)
	v.SetDefault("MAX_SESSION_SIZE", practicesession.MaxCount)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("config: SERVER_ADDRESS must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}

	switch c.DatabaseDriver {
	case store.DriverSQLite, store.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for driver %s", c.DatabaseDriver)
		}
	case store.DriverMemory:
	default:
		return fmt.Errorf("config: %w: %q", store.ErrUnknownDriver, c.DatabaseDriver)
	}

	if c.MaxSessionSize < 1 {
		return fmt.Errorf("config: MAX_SESSION_SIZE must be at least 1, got %d", c.MaxSessionSize)
	}
	if err := c.SessionConfig().Validate(); err != nil {
		return fmt.Errorf("config: DEFAULT_SESSION_SIZE: %w", err)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// SessionConfig returns the session size limits applied to API requests.
func (c *Config) SessionConfig() practicesession.SessionConfig {
	return practicesession.SessionConfig{
		Count:    c.DefaultSessionSize,
		MaxCount: c.MaxSessionSize,
	}
}

// Level parses LOG_LEVEL (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
