package extractor

const (
	FallbackProductArea = "Other / Unclassified"
	FallbackIssueType   = "General Feedback"

	// DefaultSeverity is used when no severity phrase matches.
	DefaultSeverity = 3
)

// Category is one taxonomy label and the phrases that trigger it.
// Phrases are lower-case.
type Category struct {
	Label   string
	Phrases []string
}

// Taxonomy is an ordered list of categories. Declaration order decides ties.
type Taxonomy struct {
	Fallback   string
	Categories []Category
}

// Labels returns the category labels in declared order.
func (t Taxonomy) Labels() []string {
	out := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		out = append(out, c.Label)
	}
	return out
}

// SeverityLevel maps a rank (5 = most critical) to its phrases.
type SeverityLevel struct {
	Level   int
	Phrases []string
}

var productTaxonomy = Taxonomy{
	Fallback: FallbackProductArea,
	Categories: []Category{
		{"Zero Trust", []string{"zero trust", "access", "gateway", "warp", "tunnel", "identity", "sso", "mfa", "device posture", "dns policy"}},
		{"WAF & Security", []string{"waf", "firewall", "ruleset", "managed rules", "bot", "ddos", "rate limit", "security event", "threat", "mitigation"}},
		{"CDN & Caching", []string{"cdn", "cache", "caching", "purge", "ttl", "hit ratio", "origin", "edge cache", "cache key", "stale"}},
		{"Workers & Developer Platform", []string{"worker", "workers", "durable objects", "kv", "r2", "pages", "d1", "wrangler", "deploy", "runtime", "serverless"}},
		{"DNS", []string{"dns", "resolver", "nameserver", "zone", "dnssec", "record", "propagation", "ns", "cname", "a record"}},
		{"Analytics & Observability", []string{"analytics", "logs", "logpush", "dashboard", "metrics", "observability", "trace", "error rate", "latency"}},
		{"Billing & Account", []string{"billing", "invoice", "charge", "refund", "plan", "pricing", "subscription", "trial", "seat", "credit card"}},
		{"Support Experience", []string{"support", "ticket", "sla", "response time", "agent", "case", "escalation", "help center", "documentation"}},
	},
}

var issueTypeTaxonomy = Taxonomy{
	Fallback: FallbackIssueType,
	Categories: []Category{
		{"Outage / Service Down", []string{"down", "outage", "unavailable", "503", "502", "500", "can't access", "site is down", "incident"}},
		{"Performance / Latency", []string{"slow", "latency", "timeout", "performance", "lag", "degraded", "high latency", "slow response"}},
		{"Configuration / Setup", []string{"setup", "configure", "configuration", "how do i", "onboarding", "install", "getting started", "docs unclear"}},
		{"Bug / Unexpected Behavior", []string{"bug", "broken", "doesn't work", "unexpected", "crash", "error", "regression", "failing", "glitch"}},
		{"Authentication / Access", []string{"login", "auth", "authentication", "permission", "access denied", "forbidden", "401", "403", "mfa"}},
		{"Pricing / Billing Confusion", []string{"pricing", "billed", "invoice", "charged", "refund", "cost", "expensive", "plan", "trial ended"}},
		{"UX / Usability", []string{"ui", "ux", "confusing", "hard to find", "navigation", "clunky", "needs improvement", "not intuitive"}},
		{"Feature Request", []string{"feature request", "would like", "please add", "missing", "support for", "wishlist", "enhancement"}},
	},
}

// severityLevels is kept in descending rank order; Severity relies on it.
var severityLevels = []SeverityLevel{
	{5, []string{"outage", "down", "unavailable", "incident", "data loss", "security breach", "critical"}},
	{4, []string{"can't", "cannot", "broken", "failing", "error", "regression", "blocked", "urgent"}},
	{3, []string{"slow", "timeout", "latency", "degraded", "inconsistent"}},
	{2, []string{"confusing", "unclear", "hard to", "how do i", "docs"}},
	{1, []string{"nice to have", "would like", "feature request", "wishlist"}},
}

var frustrationPhrases = []string{
	"frustrated", "annoying", "terrible", "awful", "hate", "unacceptable", "ridiculous", "angry",
	"broken", "still broken", "doesn't work", "wasted", "blocking", "stuck",
}

// Outages usually hit many users at once, so they count for more.
var volumeWeights = map[string]float64{
	"Outage / Service Down":       1.25,
	"Performance / Latency":       1.15,
	"Bug / Unexpected Behavior":   1.10,
	"Authentication / Access":     1.10,
	"Configuration / Setup":       1.00,
	"UX / Usability":              0.95,
	"Pricing / Billing Confusion": 1.05,
	"Feature Request":             0.85,
	"General Feedback":            0.90,
}

// The accessors below hand out the shared tables. Callers must treat them as read-only.

func ProductTaxonomy() Taxonomy { return productTaxonomy }

func IssueTypeTaxonomy() Taxonomy { return issueTypeTaxonomy }

func SeverityLevels() []SeverityLevel { return severityLevels }

func FrustrationPhrases() []string { return frustrationPhrases }
