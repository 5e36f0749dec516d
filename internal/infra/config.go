package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Sensitive values can be
// overridden through environment variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		URL        string `yaml:"url"`
		Instrument string `yaml:"instrument"`
		User       string `yaml:"user"`
		Password   string `yaml:"password"`
		// FatalMessages are session-ending control messages. Empty means
		// the built-in default set.
		FatalMessages []string `yaml:"fatal_messages"`
	} `yaml:"feed"`

	Classify struct {
		// RLPConditionCode marks resting-liquidity fills in the trade
		// condition field.
		RLPConditionCode string `yaml:"rlp_condition_code"`
		// RLPMarker is the substring of the extended condition field that
		// also marks resting-liquidity fills.
		RLPMarker      string   `yaml:"rlp_marker"`
		FlaggedBrokers []string `yaml:"flagged_brokers"`
		HistoryCap     int      `yaml:"history_cap"`
	} `yaml:"classify"`

	Queue struct {
		Size int `yaml:"size"`
	} `yaml:"queue"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Classify.RLPConditionCode == "" {
		c.Classify.RLPConditionCode = "2"
	}
	if c.Classify.RLPMarker == "" {
		c.Classify.RLPMarker = "RL"
	}
	if c.Queue.Size == 0 {
		c.Queue.Size = 65536
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/trades.db"
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Feed.URL == "" || (!hasPrefix(c.Feed.URL, "ws://") && !hasPrefix(c.Feed.URL, "wss://")) {
		return fmt.Errorf("invalid feed WS URL: %s", c.Feed.URL)
	}
	if c.Feed.Instrument == "" {
		return fmt.Errorf("feed instrument is required")
	}
	if c.Queue.Size < 0 {
		return fmt.Errorf("queue size must be positive")
	}
	if c.Classify.HistoryCap < 0 {
		return fmt.Errorf("history cap must not be negative")
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv overrides settings from environment variables when set.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("RLPMON_FEED_URL"); url != "" {
		cfg.Feed.URL = url
	}
	if inst := os.Getenv("RLPMON_INSTRUMENT"); inst != "" {
		cfg.Feed.Instrument = inst
	}
	if user := os.Getenv("RLPMON_FEED_USER"); user != "" {
		cfg.Feed.User = user
	}
	if pass := os.Getenv("RLPMON_FEED_PASSWORD"); pass != "" {
		cfg.Feed.Password = pass
	}
	if path := os.Getenv("RLPMON_DB_PATH"); path != "" {
		cfg.Storage.Path = path
	}
}
