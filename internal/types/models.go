package types

import "time"

type FrustrationLevel string

const (
	FrustrationLow    FrustrationLevel = "Low"
	FrustrationMedium FrustrationLevel = "Medium"
	FrustrationHigh   FrustrationLevel = "High"
)

// Scored is everything derived from the feedback text alone.
type Scored struct {
	ProductArea      string           `json:"product_area"`
	IssueType        string           `json:"issue_type"`
	Severity         int              `json:"severity"`    // 1–5
	Frustration      float64          `json:"frustration"` // 0–1
	FrustrationLevel FrustrationLevel `json:"frustration_level"`
	VolumeWeight     float64          `json:"volume_weight"`
	PainLevel        float64          `json:"pain_level"`
	Text             string           `json:"text"`
}

type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Region    string    `json:"region"`
	Tier      string    `json:"tier"`
	Scored
}
