// internal/types/live_models.go
package types

import "time"

const DefaultAPIBase = "https://api.cloudflare.com/client/v4"

// --------------------------------------------
// Live feedback source settings (built once at startup)
// --------------------------------------------
type LiveSourceConfig struct {
	APIBase   string        `yaml:"api_base" json:"api_base"`
	APIToken  string        `yaml:"api_token" json:"-"`
	AccountID string        `yaml:"account_id" json:"account_id,omitempty"`
	ZoneID    string        `yaml:"zone_id" json:"zone_id,omitempty"`
	FeedURL   string        `yaml:"feed_url" json:"feed_url,omitempty"`
	Timeout   time.Duration `yaml:"-" json:"-"`
}

// --------------------------------------------
// Raw feedback item before classification
// --------------------------------------------
type RawFeedback struct {
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	Region    string    `json:"region"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}
