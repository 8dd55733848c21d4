package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedback-intel-go/internal/generator"
	"feedback-intel-go/internal/types"
)

// isolate points CONFIG_PATH at a fresh dir and clears env keys Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// godotenv reads .env from the working directory
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, k := range []string{
		"PORT", "ENVIRONMENT", "SESSION_SWEEP_SPEC", "REDIS_ADDR", "REDIS_PASSWORD", "DATASET_PATH",
		"CLOUDFLARE_API_BASE", "CLOUDFLARE_API_TOKEN", "CLOUDFLARE_ACCOUNT_ID", "CLOUDFLARE_ZONE_ID",
		"FEEDBACK_FEED_URL", "CORPUS_SIZE", "AUTO_REFRESH_SECONDS", "SESSION_TTL_MINUTES", "REDIS_DB",
		"LIVE_SOURCE_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
	}
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("CONFIG_PATH", path)
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Environment != "local" {
		t.Fatalf("port/env = %q/%q", cfg.Port, cfg.Environment)
	}
	if cfg.CorpusSize != generator.DefaultSize {
		t.Fatalf("corpus size = %d", cfg.CorpusSize)
	}
	if cfg.AutoRefresh() != 30*time.Second || cfg.SessionTTL() != time.Hour {
		t.Fatalf("durations = %v/%v", cfg.AutoRefresh(), cfg.SessionTTL())
	}
	lc := cfg.LiveSourceConfig()
	if lc.APIBase != types.DefaultAPIBase || lc.Timeout != 10*time.Second {
		t.Fatalf("live source = %+v", lc)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := isolate(t)
	yml := `
port: "9000"
corpus_size: 50
session_sweep_spec: "*/5 * * * *"
live_source:
  feed_url: https://feedback.example.com/items
  account_id: acct-1
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("CLOUDFLARE_API_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("env should override yaml port, got %q", cfg.Port)
	}
	if cfg.CorpusSize != 50 || cfg.SessionSweepSpec != "*/5 * * * *" {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	lc := cfg.LiveSourceConfig()
	if lc.FeedURL != "https://feedback.example.com/items" || lc.AccountID != "acct-1" || lc.APIToken != "secret" {
		t.Fatalf("live source = %+v", lc)
	}
}

func TestLoadKeepsExplicitZero(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("auto_refresh_seconds: 0\nsession_ttl_minutes: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CORPUS_SIZE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CorpusSize != 0 || cfg.AutoRefresh() != 0 || cfg.SessionTTL() != 0 {
		t.Fatalf("explicit zeros replaced: corpus %d, refresh %v, ttl %v", cfg.CorpusSize, cfg.AutoRefresh(), cfg.SessionTTL())
	}
	if cfg.Port != "8080" || cfg.LiveSource.TimeoutSeconds != 10 {
		t.Fatalf("untouched keys lost their defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yml  string
	}{
		{"bad int", map[string]string{"CORPUS_SIZE": "many"}, ""},
		{"negative corpus", map[string]string{"CORPUS_SIZE": "-1"}, ""},
		{"bad sweep spec", map[string]string{"SESSION_SWEEP_SPEC": "every now and then"}, ""},
		{"bad feed url", map[string]string{"FEEDBACK_FEED_URL": "ftp://example.com"}, ""},
		{"bad yaml", nil, "port: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := isolate(t)
			if tt.yml != "" {
				if err := os.WriteFile(path, []byte(tt.yml), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
