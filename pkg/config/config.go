package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP status server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:leadscout.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		CycleInterval  time.Duration `yaml:"cycle_interval" json:"cycle_interval" jsonschema:"default=30m,description=Time between poll cycles"`
		HealthFailRate float64       `yaml:"health_fail_rate" json:"health_fail_rate" jsonschema:"default=0.3,minimum=0,maximum=1,description=Per-cycle feed failure rate that triggers a health alert"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Poll cycle scheduling"`

	Source  SourceConfig  `yaml:"source" json:"source" jsonschema:"description=Feed source access settings"`
	Monitor MonitorConfig `yaml:"monitor" json:"monitor" jsonschema:"description=Matching and persistence settings"`
	LLM     LLMConfig     `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for relevance scoring"`
	SMTP    SMTPConfig    `yaml:"smtp" json:"smtp" jsonschema:"description=SMTP notification settings"`
}

// SourceConfig holds feed source access settings. The pacing knobs are the
// anti-ban protection and should be raised, not lowered, when the source
// starts blocking.
type SourceConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url" jsonschema:"required,description=Feed endpoint base URL"`
	Items         int           `yaml:"items" json:"items" jsonschema:"default=20,minimum=1,description=Maximum items requested per fetch"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-request timeout"`
	BaseDelay     time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=5s,description=Fixed pause before each feed fetch"`
	Jitter        time.Duration `yaml:"jitter" json:"jitter" jsonschema:"default=3s,description=Random addition to the pause"`
	ClientIDs     []string      `yaml:"client_ids" json:"client_ids" jsonschema:"description=Rotated client identifiers sent as User-Agent"`
	BlockCooldown time.Duration `yaml:"block_cooldown" json:"block_cooldown" jsonschema:"default=1h,description=How long a blocked client identifier rests"`
}

// MonitorConfig holds matching, scoring-threshold and failure-policy settings
type MonitorConfig struct {
	StoreThreshold   float64       `yaml:"store_threshold" json:"store_threshold" jsonschema:"default=0.7,minimum=0,maximum=1,description=Minimum relevance score to persist a lead"`
	NotifyThreshold  float64       `yaml:"notify_threshold" json:"notify_threshold" jsonschema:"default=0.9,minimum=0,maximum=1,description=Minimum relevance score to notify the consumer"`
	MaxScoredPerFeed int           `yaml:"max_scored_per_feed" json:"max_scored_per_feed" jsonschema:"default=20,minimum=1,description=Per-consumer cap of items scored per feed per cycle"`
	MaxErrorStreak   int           `yaml:"max_error_streak" json:"max_error_streak" jsonschema:"default=3,minimum=1,description=Consecutive blocking failures tolerated before suspension"`
	Suspension       time.Duration `yaml:"suspension" json:"suspension" jsonschema:"default=2h,description=How long a failing feed is suspended"`
	ScoreWorkers     int           `yaml:"score_workers" json:"score_workers" jsonschema:"default=4,minimum=1,description=Concurrent per-consumer scoring calls within one feed"`
}

// LLMConfig holds LLM configuration for relevance scoring
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKeys     []string      `yaml:"api_keys" json:"api_keys" jsonschema:"description=Rotated API keys (can use environment variables)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=200,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-batch request timeout"`
	BatchSize   int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=5,minimum=1,description=Number of items scored in one request"`
	KeyCooldown time.Duration `yaml:"key_cooldown" json:"key_cooldown" jsonschema:"default=10m,description=How long a rejected API key rests"`
}

// SMTPConfig holds notification delivery settings, empty host disables delivery
type SMTPConfig struct {
	Host     string        `yaml:"host" json:"host" jsonschema:"description=SMTP host, empty disables notifications"`
	Port     int           `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=SMTP password (can use environment variable)"`
	StartTLS bool          `yaml:"starttls" json:"starttls" jsonschema:"default=false,description=Use STARTTLS"`
	From     string        `yaml:"from" json:"from" jsonschema:"description=From address for alerts"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=SMTP connection timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:leadscout.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.CycleInterval == 0 {
		cfg.Schedule.CycleInterval = 30 * time.Minute
	}
	if cfg.Schedule.HealthFailRate == 0 {
		cfg.Schedule.HealthFailRate = 0.3
	}

	// set defaults for source
	if cfg.Source.Items == 0 {
		cfg.Source.Items = 20
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = 15 * time.Second
	}
	if cfg.Source.BaseDelay == 0 {
		cfg.Source.BaseDelay = 5 * time.Second
	}
	if cfg.Source.Jitter == 0 {
		cfg.Source.Jitter = 3 * time.Second
	}
	if cfg.Source.BlockCooldown == 0 {
		cfg.Source.BlockCooldown = time.Hour
	}

	// set defaults for monitor
	if cfg.Monitor.StoreThreshold == 0 {
		cfg.Monitor.StoreThreshold = 0.7
	}
	if cfg.Monitor.NotifyThreshold == 0 {
		cfg.Monitor.NotifyThreshold = 0.9
	}
	if cfg.Monitor.MaxScoredPerFeed == 0 {
		cfg.Monitor.MaxScoredPerFeed = 20
	}
	if cfg.Monitor.MaxErrorStreak == 0 {
		cfg.Monitor.MaxErrorStreak = 3
	}
	if cfg.Monitor.Suspension == 0 {
		cfg.Monitor.Suspension = 2 * time.Hour
	}
	if cfg.Monitor.ScoreWorkers == 0 {
		cfg.Monitor.ScoreWorkers = 4
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.2
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 200
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.BatchSize == 0 {
		cfg.LLM.BatchSize = 5
	}
	if cfg.LLM.KeyCooldown == 0 {
		cfg.LLM.KeyCooldown = 10 * time.Minute
	}

	// set defaults for SMTP
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.Timeout == 0 {
		cfg.SMTP.Timeout = 10 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {

	// validate source config
	if cfg.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if cfg.Source.BaseDelay < time.Second {
		return fmt.Errorf("source.base_delay must be at least 1 second")
	}
	if cfg.Source.Jitter < 0 {
		return fmt.Errorf("source.jitter must be non-negative")
	}

	// validate monitor config
	if cfg.Monitor.StoreThreshold < 0 || cfg.Monitor.StoreThreshold > 1 {
		return fmt.Errorf("monitor.store_threshold must be between 0 and 1")
	}
	if cfg.Monitor.NotifyThreshold < 0 || cfg.Monitor.NotifyThreshold > 1 {
		return fmt.Errorf("monitor.notify_threshold must be between 0 and 1")
	}
	if cfg.Monitor.NotifyThreshold < cfg.Monitor.StoreThreshold {
		return fmt.Errorf("monitor.notify_threshold must not be below monitor.store_threshold")
	}

	// validate schedule config
	if cfg.Schedule.CycleInterval < time.Minute {
		return fmt.Errorf("schedule.cycle_interval must be at least 1 minute")
	}
	if cfg.Schedule.HealthFailRate < 0 || cfg.Schedule.HealthFailRate > 1 {
		return fmt.Errorf("schedule.health_fail_rate must be between 0 and 1")
	}

	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.BatchSize < 1 {
		return fmt.Errorf("llm.batch_size must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}
