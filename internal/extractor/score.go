package extractor

import (
	"math"
	"strings"

	"feedback-intel-go/internal/types"
)

const (
	highFrustration   = 0.70
	mediumFrustration = 0.40

	frustrationSaturation = 4.0
)

// Severity scans ranks from 5 down to 1 and returns the first rank with a
// matching phrase. Unknown severity is moderate (3), never trivial or critical.
func Severity(text string) int {
	t := normalize(text)
	if t == "" {
		return DefaultSeverity
	}
	for _, lvl := range severityLevels {
		if containsAny(t, lvl.Phrases) {
			return lvl.Level
		}
	}
	return DefaultSeverity
}

// Frustration estimates intensity in [0, 1]: distinct frustration phrases
// (saturating at 4) plus a bump of (severity-1)/10.
// Blank text scores 0.
func Frustration(text string) float64 {
	t := normalize(text)
	if t == "" {
		return 0
	}
	hits := 0
	for _, p := range frustrationPhrases {
		if strings.Contains(t, p) {
			hits++
		}
	}
	base := math.Min(1.0, float64(hits)/frustrationSaturation)
	bump := float64(Severity(t)-1) / 10.0
	return clamp01(base + bump)
}

// Level buckets a frustration score. Lower bounds are inclusive.
func Level(f float64) types.FrustrationLevel {
	switch {
	case f >= highFrustration:
		return types.FrustrationHigh
	case f >= mediumFrustration:
		return types.FrustrationMedium
	default:
		return types.FrustrationLow
	}
}

// VolumeWeight looks up the issue type weight; unmapped types weigh 1.0.
func VolumeWeight(issueType string) float64 {
	if w, ok := volumeWeights[issueType]; ok {
		return w
	}
	return 1.0
}

// PainLevel = severity * (1 + frustration) * volumeWeight. Not clamped.
func PainLevel(severity int, frustration, volumeWeight float64) float64 {
	return float64(severity) * (1.0 + frustration) * volumeWeight
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
