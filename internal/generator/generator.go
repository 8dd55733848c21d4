// Package generator produces synthetic, template-based feedback used when no
// live source has data. Seeded batches are reproducible end to end.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedback-intel-go/internal/extractor"
	"feedback-intel-go/internal/processor"
	"feedback-intel-go/internal/types"
)

const (
	// DefaultSize is the batch size the dashboard asks for.
	DefaultSize = 420

	Window        = 14 * 24 * time.Hour
	windowMinutes = int(Window / time.Minute)
)

var (
	Sources = []string{"Support Ticket", "Community Forum", "Discord", "GitHub Issue", "Email", "X/Twitter"}
	Regions = []string{"NA", "EMEA", "APAC", "LATAM"}
	Tiers   = []string{"Free", "Pro", "Business", "Enterprise"}
)

var templates = []string{
	"We are seeing {symptom} with {product}. It started about {time_ref} and is impacting {impact_area}.",
	"{product} is {symptom}. I tried {attempted_fix} but it's still {symptom2}. This is {emotion}.",
	"Question: how do I {howto} in {product}? The docs feel {docs_quality}.",
	"Feature request for {product}: please add {feature}. This would help with {use_case}.",
	"Billing issue: got {billing_problem} after changing my plan. Need help ASAP.",
	"The dashboard shows {metric_problem} and logs aren't matching. Please investigate.",
}

var (
	symptoms = []string{
		"down", "slow", "timing out", "returning 502 errors", "not applying rules", "failing deployment",
		"confusing to configure", "blocking users", "not working as expected",
	}
	impactAreas     = []string{"customer login", "checkout", "API traffic", "internal admin portal", "edge delivery", "security posture"}
	attemptedFixes  = []string{"clearing cache", "rolling back config", "re-deploying", "changing DNS records", "disabling a ruleset"}
	howtoActions    = []string{"set up SSO", "configure WAF rules", "deploy a Worker", "enable DNSSEC", "set caching TTLs"}
	docsQuality     = []string{"unclear", "hard to follow", "outdated", "too technical"}
	emotions        = []string{"unacceptable", "frustrating", "blocking", "really annoying", "a big problem"}
	features        = []string{"better logs export", "bulk rule editing", "more granular access controls", "improved analytics filters"}
	useCases        = []string{"debugging", "compliance", "faster onboarding", "reduced support burden"}
	billingProblems = []string{"an unexpected charge", "double billing", "a plan mismatch", "a failed refund"}
	metricProblems  = []string{"missing events", "spikes in errors", "wrong totals", "delayed metrics"}
	timeRefs        = []string{"30 minutes ago", "yesterday", "this morning", "last week"}
)

// Seed is a convenience for passing an explicit seed.
func Seed(v int64) *int64 { return &v }

// Generate returns n classified records with timestamps in [now-14d, now].
// With a seed the whole batch, ids included, is reproducible; a nil seed
// draws one from the process-wide source.
func Generate(n int, now time.Time, seed *int64) []types.Record {
	if n <= 0 {
		return []types.Record{}
	}
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Int63()
	}
	rng := rand.New(rand.NewSource(s))
	products := extractor.ProductTaxonomy().Labels()

	out := make([]types.Record, 0, n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		product := pick(rng, products)
		raw := types.RawFeedback{
			Source: pick(rng, Sources),
			Region: pick(rng, Regions),
			Tier:   pick(rng, Tiers),
		}
		raw.Text = fill(rng, pick(rng, templates), product)

		minutesBack := rng.Intn(windowMinutes + 1)
		raw.CreatedAt = now.Add(-time.Duration(minutesBack) * time.Minute)

		id := newID(rng)
		for _, dup := seen[id]; dup; _, dup = seen[id] {
			id = newID(rng)
		}
		seen[id] = struct{}{}

		out = append(out, processor.ProcessFeedback(id, raw))
	}
	return out
}

// fill draws every placeholder whether or not the template uses it, so the
// stream of draws per item has a fixed shape.
func fill(rng *rand.Rand, tmpl, product string) string {
	r := strings.NewReplacer(
		"{product}", product,
		"{symptom}", pick(rng, symptoms),
		"{symptom2}", pick(rng, symptoms),
		"{time_ref}", pick(rng, timeRefs),
		"{impact_area}", pick(rng, impactAreas),
		"{attempted_fix}", pick(rng, attemptedFixes),
		"{emotion}", pick(rng, emotions),
		"{howto}", pick(rng, howtoActions),
		"{docs_quality}", pick(rng, docsQuality),
		"{feature}", pick(rng, features),
		"{use_case}", pick(rng, useCases),
		"{billing_problem}", pick(rng, billingProblems),
		"{metric_problem}", pick(rng, metricProblems),
	)
	return r.Replace(tmpl)
}

func pick(rng *rand.Rand, xs []string) string {
	return xs[rng.Intn(len(xs))]
}

func newID(rng *rand.Rand) string {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// *rand.Rand never fails to read
		return processor.NewID()
	}
	return processor.FeedbackID(u)
}
