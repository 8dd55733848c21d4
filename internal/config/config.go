package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"feedback-intel-go/internal/generator"
	"feedback-intel-go/internal/types"
)

const defaultConfigPath = "config.yaml"

type LiveSource struct {
	APIBase        string `yaml:"api_base"`
	APIToken       string `yaml:"api_token"`
	AccountID      string `yaml:"account_id"`
	ZoneID         string `yaml:"zone_id"`
	FeedURL        string `yaml:"feed_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`

	CorpusSize         int    `yaml:"corpus_size"`
	AutoRefreshSeconds int    `yaml:"auto_refresh_seconds"`
	SessionTTLMinutes  int    `yaml:"session_ttl_minutes"`
	SessionSweepSpec   string `yaml:"session_sweep_spec"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	DatasetPath string `yaml:"dataset_path"`

	LiveSource LiveSource `yaml:"live_source"`
}

// Load reads .env, then the YAML file at CONFIG_PATH (default config.yaml,
// optional), then env overrides, and validates. Defaults are filled in first,
// so an explicit 0 (no auto-refresh, empty corpus, no session expiry) is kept.
func Load() (Config, error) {
	_ = godotenv.Load() // loads .env

	cfg := defaults()
	path := defaultConfigPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	fillBlank(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.Environment, "ENVIRONMENT")
	envOverride(&cfg.SessionSweepSpec, "SESSION_SWEEP_SPEC")
	envOverride(&cfg.RedisAddr, "REDIS_ADDR")
	envOverride(&cfg.RedisPassword, "REDIS_PASSWORD")
	envOverride(&cfg.DatasetPath, "DATASET_PATH")
	envOverride(&cfg.LiveSource.APIBase, "CLOUDFLARE_API_BASE")
	envOverride(&cfg.LiveSource.APIToken, "CLOUDFLARE_API_TOKEN")
	envOverride(&cfg.LiveSource.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	envOverride(&cfg.LiveSource.ZoneID, "CLOUDFLARE_ZONE_ID")
	envOverride(&cfg.LiveSource.FeedURL, "FEEDBACK_FEED_URL")

	ints := []struct {
		dst *int
		key string
	}{
		{&cfg.CorpusSize, "CORPUS_SIZE"},
		{&cfg.AutoRefreshSeconds, "AUTO_REFRESH_SECONDS"},
		{&cfg.SessionTTLMinutes, "SESSION_TTL_MINUTES"},
		{&cfg.RedisDB, "REDIS_DB"},
		{&cfg.LiveSource.TimeoutSeconds, "LIVE_SOURCE_TIMEOUT_SECONDS"},
	}
	for _, o := range ints {
		if err := envOverrideInt(o.dst, o.key); err != nil {
			return err
		}
	}
	return nil
}

func defaults() Config {
	return Config{
		Port:               "8080",
		Environment:        "local",
		CorpusSize:         generator.DefaultSize,
		AutoRefreshSeconds: 30,
		SessionTTLMinutes:  60,
		SessionSweepSpec:   "@every 1m",
		LiveSource: LiveSource{
			APIBase:        types.DefaultAPIBase,
			TimeoutSeconds: 10,
		},
	}
}

// fillBlank restores string defaults a config file set to "".
func fillBlank(cfg *Config) {
	d := defaults()
	blanks := []struct {
		dst *string
		def string
	}{
		{&cfg.Port, d.Port},
		{&cfg.Environment, d.Environment},
		{&cfg.SessionSweepSpec, d.SessionSweepSpec},
		{&cfg.LiveSource.APIBase, d.LiveSource.APIBase},
	}
	for _, b := range blanks {
		if *b.dst == "" {
			*b.dst = b.def
		}
	}
}

func (c Config) Validate() error {
	if c.CorpusSize < 0 {
		return fmt.Errorf("corpus_size must be >= 0, got %d", c.CorpusSize)
	}
	if c.AutoRefreshSeconds < 0 {
		return fmt.Errorf("auto_refresh_seconds must be >= 0, got %d", c.AutoRefreshSeconds)
	}
	if c.LiveSource.TimeoutSeconds < 0 {
		return fmt.Errorf("live_source.timeout_seconds must be >= 0, got %d", c.LiveSource.TimeoutSeconds)
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("session_ttl_minutes must be >= 0, got %d", c.SessionTTLMinutes)
	}
	if _, err := cron.ParseStandard(c.SessionSweepSpec); err != nil {
		return fmt.Errorf("session_sweep_spec %q: %w", c.SessionSweepSpec, err)
	}
	if u := c.LiveSource.FeedURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("live_source.feed_url must be an http(s) URL, got %q", u)
	}
	return nil
}

// LiveSourceConfig is the value handed to the live-source boundary.
func (c Config) LiveSourceConfig() types.LiveSourceConfig {
	return types.LiveSourceConfig{
		APIBase:   c.LiveSource.APIBase,
		APIToken:  c.LiveSource.APIToken,
		AccountID: c.LiveSource.AccountID,
		ZoneID:    c.LiveSource.ZoneID,
		FeedURL:   c.LiveSource.FeedURL,
		Timeout:   time.Duration(c.LiveSource.TimeoutSeconds) * time.Second,
	}
}

func (c Config) AutoRefresh() time.Duration {
	return time.Duration(c.AutoRefreshSeconds) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func envOverride(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
