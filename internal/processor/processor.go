package processor

import (
	"strings"

	"github.com/google/uuid"

	"feedback-intel-go/internal/extractor"
	"feedback-intel-go/internal/types"
)

const idPrefix = "FB"

// idNamespace scopes content-derived ids to this service.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("feedback-intel-go/feedback"))

// ClassifyAndScore derives every text-only field of a record. It is pure:
// the same text always gives the same result, and no input makes it fail.
func ClassifyAndScore(text string) types.Scored {
	issueType := extractor.IssueType(text)
	severity := extractor.Severity(text)
	frustration := extractor.Frustration(text)
	weight := extractor.VolumeWeight(issueType)
	return types.Scored{
		ProductArea:      extractor.ProductArea(text),
		IssueType:        issueType,
		Severity:         severity,
		Frustration:      frustration,
		FrustrationLevel: extractor.Level(frustration),
		VolumeWeight:     weight,
		PainLevel:        extractor.PainLevel(severity, frustration, weight),
		Text:             text,
	}
}

// ProcessFeedback builds a complete record from a raw item.
func ProcessFeedback(id string, raw types.RawFeedback) types.Record {
	return types.Record{
		ID:        id,
		CreatedAt: raw.CreatedAt,
		Source:    raw.Source,
		Region:    raw.Region,
		Tier:      raw.Tier,
		Scored:    ClassifyAndScore(raw.Text),
	}
}

// FeedbackID renders a UUID as a short ticket-style id, e.g. FB-3F2A9C01.
func FeedbackID(u uuid.UUID) string {
	hex := strings.ReplaceAll(u.String(), "-", "")
	return idPrefix + "-" + strings.ToUpper(hex[:8])
}

// NewID returns a fresh random feedback id.
func NewID() string {
	return FeedbackID(uuid.New())
}

// ContentID derives a stable id from the given parts, so the same source item
// keeps its id across fetches.
func ContentID(parts ...string) string {
	return FeedbackID(uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "\x1f"))))
}
