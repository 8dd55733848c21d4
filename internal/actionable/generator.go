package actionable

import (
	"fmt"

	"feedback-intel-go/internal/aggregator"
)

const (
	criticalRateAlert    = 0.35
	highFrustrationAlert = 0.30
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate turns rollups into a short "fix this first" list.
func Generate(ins aggregator.Insight) []ActionCard {
	if ins.KPI.TotalItems == 0 {
		return []ActionCard{{
			Insight: "No feedback matches the current filters",
			Action:  "Widen the date range or selections",
			Impact:  "None",
		}}
	}

	var cards []ActionCard
	if len(ins.PainByProduct) > 0 {
		top := ins.PainByProduct[0]
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%s carries the most customer pain (%.1f)", top.ProductArea, top.PainLevel),
			Action:  fmt.Sprintf("Assign an owner for %s and triage its highest-pain items first", top.ProductArea),
			Impact:  "Largest reduction in weighted customer pain",
		})
	}

	critRate := float64(ins.KPI.CriticalItems) / float64(ins.KPI.TotalItems)
	if critRate >= criticalRateAlert {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%.0f%% of feedback is critical (severity 4-5)", critRate*100),
			Action:  "Review open incidents and blockers with on-call before new work",
			Impact:  "Unblock customers who cannot use the product",
		})
	}

	if ins.KPI.HighFrustrationRate >= highFrustrationAlert {
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("High frustration in %.0f%% of feedback", ins.KPI.HighFrustrationRate*100),
			Action:  "Send proactive status updates on the top issue types",
			Impact:  "Lower churn risk and repeat escalations",
		})
	}

	if len(cards) == 1 && len(ins.IssueTypes) > 0 {
		it := ins.IssueTypes[0]
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("%s is the most reported issue type (%d items)", it.IssueType, it.Count),
			Action:  "Monitor and collect more data",
			Impact:  "Low immediate intervention",
		})
	}
	return cards
}
