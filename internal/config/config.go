package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Insight source drivers
const (
	DriverSupabase = "supabase"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Log      LogConfig      `mapstructure:"log"`
	Patterns PatternsConfig `mapstructure:"patterns"`
	Source   SourceConfig   `mapstructure:"source"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Env                string   `mapstructure:"env"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// RateLimit is requests per minute per client IP; 0 disables limiting
	RateLimit int `mapstructure:"rate_limit"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string        `mapstructure:"url"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PatternsConfig tunes the pattern analyzer
type PatternsConfig struct {
	DefaultDaysBack int `mapstructure:"default_days_back"`
	MaxDaysBack     int `mapstructure:"max_days_back"`
	// Timezone is an IANA name used to bucket messages by hour. Empty means the process zone.
	Timezone string `mapstructure:"timezone"`
}

// SourceConfig selects where conversation insights are read from
type SourceConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// Load reads and validates configuration
func Load() (*Config, error) {
	config, err := Read()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Read reads configuration from a .env file, environment variables and config
// files without validating it, so callers can apply flag overrides first.
func Read() (*Config, error) {
	// A missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("COACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for backward compatibility
	v.BindEnv("server.port", "COACH_SERVER_PORT", "PORT")
	v.BindEnv("supabase.url", "COACH_SUPABASE_URL", "SUPABASE_URL")
	v.BindEnv("supabase.service_key", "COACH_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Comma separated lists arrive from the environment as a single string
	config.Server.CORSAllowedOrigins = splitList(config.Server.CORSAllowedOrigins)

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.rate_limit", 60)

	v.SetDefault("supabase.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("patterns.default_days_back", 30)
	v.SetDefault("patterns.max_days_back", 365)
	v.SetDefault("patterns.timezone", "")

	v.SetDefault("source.driver", DriverSupabase)
	v.SetDefault("source.sqlite_path", "patterns.db")
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
		}
	case DriverSQLite:
		if c.Source.SQLitePath == "" {
			return fmt.Errorf("source.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown source driver %q", c.Source.Driver)
	}

	if c.Patterns.MaxDaysBack < 1 {
		return fmt.Errorf("patterns.max_days_back must be positive, got %d", c.Patterns.MaxDaysBack)
	}
	if c.Patterns.DefaultDaysBack < 1 || c.Patterns.DefaultDaysBack > c.Patterns.MaxDaysBack {
		return fmt.Errorf("patterns.default_days_back must be between 1 and %d, got %d",
			c.Patterns.MaxDaysBack, c.Patterns.DefaultDaysBack)
	}
	if _, err := c.Patterns.Location(); err != nil {
		return err
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}

	return nil
}

// Location resolves Timezone, falling back to time.Local when it is empty
func (p PatternsConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid patterns.timezone %q: %w", p.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
