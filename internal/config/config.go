package config

import (
	"fmt"
	"os"
	"time"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/internal/streak"
	"go.yaml.in/yaml/v4"
)

const DefaultPath = "config.yaml"

type Config struct {
	APIBaseURL string        `yaml:"api_base_url"`
	ListenAddr string        `yaml:"listen_addr"`
	DBPath     string        `yaml:"db_path"`
	Log        LogConfig     `yaml:"log"`
	Habits     HabitsConfig  `yaml:"habits"`
	Leave      LeaveConfig   `yaml:"leave"`
	TextGen    TextGenConfig `yaml:"textgen"`
	Server     ServerConfig  `yaml:"server"`
	Nudge      NudgeConfig   `yaml:"nudge"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type HabitsConfig struct {
	// StreakPolicy is "approximate" (default) or "recompute".
	StreakPolicy string `yaml:"streak_policy"`
}

type LeaveConfig struct {
	Seed        bool          `yaml:"seed"`
	ListDelay   time.Duration `yaml:"list_delay"`
	MutateDelay time.Duration `yaml:"mutate_delay"`
	RecentLimit int           `yaml:"recent_limit"`
}

type TextGenConfig struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
	// RatePerMinute caps text-generation calls per client address.
	RatePerMinute int `yaml:"rate_per_minute"`
	Burst         int `yaml:"burst"`
}

type ServerConfig struct {
	CORSOrigins []string `yaml:"cors_origins"`
	// Cookie keys sign the leave-calendar identity cookie. Random keys are
	// generated at startup when empty, which invalidates cookies on restart.
	CookieHashKey  string `yaml:"cookie_hash_key"`
	CookieBlockKey string `yaml:"cookie_block_key"`
}

type NudgeConfig struct {
	Email        string        `yaml:"email"`
	From         string        `yaml:"from"`
	ResendAPIKey string        `yaml:"resend_api_key"`
	Window       time.Duration `yaml:"window"`
}

func Default() *Config {
	return &Config{
		APIBaseURL: "http://localhost:8080",
		ListenAddr: ":8080",
		DBPath:     "habits.db",
		Log:        LogConfig{Level: "info", Format: "text"},
		Habits:     HabitsConfig{StreakPolicy: "approximate"},
		Leave: LeaveConfig{
			ListDelay:   500 * time.Millisecond,
			MutateDelay: 300 * time.Millisecond,
			RecentLimit: 30,
		},
		TextGen: TextGenConfig{
			Model:         "gemini-2.5-flash",
			Language:      "ja",
			Timeout:       30 * time.Second,
			RatePerMinute: 10,
			Burst:         3,
		},
		Server: ServerConfig{CORSOrigins: []string{"*"}},
		Nudge: NudgeConfig{
			From:   "onboarding@resend.dev",
			Window: 4 * time.Hour,
		},
	}
}

// Load reads the file named by $HABITCAL_CONFIG, falling back to config.yaml.
func Load() (*Config, error) {
	path := os.Getenv("HABITCAL_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.APIBaseURL = getenv("HABITCAL_API_BASE", c.APIBaseURL)
	c.DBPath = getenv("HABITCAL_DB_PATH", c.DBPath)
	c.TextGen.APIKey = getenv("API_KEY", c.TextGen.APIKey)
	c.TextGen.APIKey = getenv("GEMINI_API_KEY", c.TextGen.APIKey)
	c.Nudge.ResendAPIKey = getenv("HABITCAL_RESEND_API_KEY", c.Nudge.ResendAPIKey)
	c.Nudge.Email = getenv("HABITCAL_NOTIFY_EMAIL", c.Nudge.Email)
}

func (c *Config) Validate() error {
	if _, err := streak.ParsePolicy(c.Habits.StreakPolicy); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Leave.ListDelay < 0 || c.Leave.MutateDelay < 0 {
		return fmt.Errorf("leave delays must not be negative")
	}
	if c.TextGen.RatePerMinute < 0 || c.TextGen.Burst < 0 {
		return fmt.Errorf("textgen rate limits must not be negative")
	}
	return nil
}

// StreakPolicy returns the parsed policy; Validate has already vetted it.
func (c *Config) StreakPolicy() streak.Policy {
	p, _ := streak.ParsePolicy(c.Habits.StreakPolicy)
	return p
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
