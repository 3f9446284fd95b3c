package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for both the scrape pipeline and the
// dashboard API.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, mysql, postgres

	// SQLite
	Path string `mapstructure:"path"`

	// MySQL / PostgreSQL
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`

	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific connection string.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Name)
	default:
		return c.Path
	}
}

type GoogleConfig struct {
	APIKey string `mapstructure:"api_key"`

	// BaseURL overrides the Maps API host, used by tests.
	BaseURL string `mapstructure:"base_url"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RatePerSecond  float64       `mapstructure:"rate_per_second"`
	RateBurst      int           `mapstructure:"rate_burst"`
}

type ScrapeConfig struct {
	City             string   `mapstructure:"city"`
	Areas            []string `mapstructure:"areas"`
	ReviewsThreshold int      `mapstructure:"reviews_threshold"`
	PerAreaLimit     int      `mapstructure:"per_area_limit"`
	GridSteps        int      `mapstructure:"grid_steps"`
	MaxPages         int      `mapstructure:"max_pages"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from a yaml file (optional), environment
// variables, and defaults.
// Parameters:
//   - configPath: explicit config file path; empty falls back to ./configs and cwd.
// Returns:
//   - *Config: populated configuration.
//   - error: non-nil if reading or unmarshaling fails.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/leadscout.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("google.request_timeout", 30*time.Second)
	v.SetDefault("google.rate_per_second", 10.0)
	v.SetDefault("google.rate_burst", 5)
	v.SetDefault("scrape.reviews_threshold", 10)
	v.SetDefault("scrape.per_area_limit", 100)
	v.SetDefault("scrape.grid_steps", 4)
	v.SetDefault("scrape.max_pages", 3)
	v.SetDefault("export.dir", "./exports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("google.api_key", "GOOGLE_API_KEY")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.name", "DB_NAME")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateForScrape checks the configuration points that must stop a run
// before any work starts: a missing API key, a missing city, or an empty
// areas list.
func (c *Config) ValidateForScrape() error {
	if strings.TrimSpace(c.Google.APIKey) == "" {
		return errors.New("google.api_key is required (set GOOGLE_API_KEY)")
	}
	if strings.TrimSpace(c.Scrape.City) == "" {
		return errors.New("scrape.city is required")
	}
	if len(c.Scrape.Areas) == 0 {
		return errors.New("scrape.areas is empty; provide at least one area")
	}
	return nil
}
