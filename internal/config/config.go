package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/simulation"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Hermes     HermesConfig     `yaml:"hermes"`
	Capacity   CapacityConfig   `yaml:"capacity"`
	Simulation SimulationConfig `yaml:"simulation"`
	Watcher    WatcherConfig    `yaml:"watcher"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port            int `yaml:"port"`
	MetricsPort     int `yaml:"metrics_port"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// CapacityConfig holds the company constants the qualification scorer uses.
// When ResourceURL is set, the active project count is refreshed from it.
type CapacityConfig struct {
	ActiveProjectsLimit   int      `yaml:"active_projects_limit"`
	CurrentActiveProjects int      `yaml:"current_active_projects"`
	SalesGoalThreshold    float64  `yaml:"sales_goal_threshold"`
	Credentials           []string `yaml:"credentials"`
	ResourceURL           string   `yaml:"resource_url"`
	ResourceToken         string   `yaml:"resource_token"`
}

type SimulationConfig struct {
	DefaultLevers simulation.LeverSet `yaml:"default_levers"`
}

type WatcherConfig struct {
	Enabled        bool `yaml:"enabled"`
	TickIntervalMs int  `yaml:"tick_interval_ms"`
	Concurrency    int  `yaml:"concurrency"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Watcher.TickIntervalMs) * time.Millisecond
}

// ScoringCapacity returns the static capacity constants as a scoring value.
func (c *Config) ScoringCapacity() scoring.Capacity {
	return scoring.Capacity{
		ActiveProjectsLimit:   c.Capacity.ActiveProjectsLimit,
		CurrentActiveProjects: c.Capacity.CurrentActiveProjects,
		SalesGoalThreshold:    c.Capacity.SalesGoalThreshold,
		Credentials:           append([]string(nil), c.Capacity.Credentials...),
	}
}

func Load(path string) (*Config, error) {
	capacity := scoring.DefaultCapacity()
	cfg := &Config{
		Server: ServerConfig{
			Port:            8700,
			MetricsPort:     8701,
			RateLimitPerMin: 120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Capacity: CapacityConfig{
			ActiveProjectsLimit:   capacity.ActiveProjectsLimit,
			CurrentActiveProjects: capacity.CurrentActiveProjects,
			SalesGoalThreshold:    capacity.SalesGoalThreshold,
			Credentials:           capacity.Credentials,
		},
		Simulation: SimulationConfig{
			DefaultLevers: simulation.DefaultLevers(),
		},
		Watcher: WatcherConfig{
			Enabled:        true,
			TickIntervalMs: 3600000,
			Concurrency:    4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Simulation.DefaultLevers.Validate(); err != nil {
		return nil, fmt.Errorf("simulation.default_levers: %w", err)
	}
	if err := cfg.ScoringCapacity().Validate(); err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}
	if cfg.Watcher.Enabled && cfg.Watcher.TickIntervalMs <= 0 {
		return nil, fmt.Errorf("watcher.tick_interval_ms must be positive, got %d", cfg.Watcher.TickIntervalMs)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADVISORY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ADVISORY_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ADVISORY_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ADVISORY_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("ADVISORY_RESOURCE_URL"); v != "" {
		cfg.Capacity.ResourceURL = v
	}
	if v := os.Getenv("ADVISORY_RESOURCE_TOKEN"); v != "" {
		cfg.Capacity.ResourceToken = v
	}
	if v := os.Getenv("ADVISORY_ACTIVE_PROJECTS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capacity.ActiveProjectsLimit = n
		}
	}
	if v := os.Getenv("ADVISORY_CURRENT_ACTIVE_PROJECTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capacity.CurrentActiveProjects = n
		}
	}
	if v := os.Getenv("ADVISORY_SALES_GOAL_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Capacity.SalesGoalThreshold = f
		}
	}
	if v := os.Getenv("ADVISORY_CREDENTIALS"); v != "" {
		cfg.Capacity.Credentials = ParseCredentials(v)
	}
	if v := os.Getenv("ADVISORY_WATCHER_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Watcher.Enabled = b
		}
	}
	if v := os.Getenv("ADVISORY_WATCHER_TICK_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watcher.TickIntervalMs = n
		}
	}
	if v := os.Getenv("ADVISORY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ADVISORY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// ParseCredentials splits a comma-separated credential list. Entries keep
// their spelling since matching ignores case.
func ParseCredentials(content string) []string {
	parts := strings.Split(content, ",")
	var creds []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			creds = append(creds, p)
		}
	}
	return creds
}
