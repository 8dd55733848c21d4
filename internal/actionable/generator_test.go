package actionable

import (
	"strings"
	"testing"

	"feedback-intel-go/internal/aggregator"
)

func TestGenerateEmpty(t *testing.T) {
	cards := Generate(aggregator.Insight{})
	if len(cards) != 1 || !strings.Contains(cards[0].Insight, "No feedback") {
		t.Fatalf("cards = %+v", cards)
	}
}

func TestGenerateAlerts(t *testing.T) {
	ins := aggregator.Insight{
		KPI: aggregator.KPI{TotalItems: 10, CriticalItems: 5, HighFrustration: 4, HighFrustrationRate: 0.4},
		PainByProduct: []aggregator.ProductPain{
			{ProductArea: "DNS", PainLevel: 42},
		},
		IssueTypes: []aggregator.IssueTypeStat{{IssueType: "Outage / Service Down", Count: 6}},
	}
	cards := Generate(ins)
	if len(cards) != 3 {
		t.Fatalf("cards = %+v, want 3", cards)
	}
	if !strings.Contains(cards[0].Insight, "DNS") {
		t.Fatalf("first card should name the top pain product: %+v", cards[0])
	}
	if !strings.Contains(cards[1].Insight, "50%") {
		t.Fatalf("critical card = %+v", cards[1])
	}
	if !strings.Contains(cards[2].Insight, "40%") {
		t.Fatalf("frustration card = %+v", cards[2])
	}
}

func TestGenerateCalmBatch(t *testing.T) {
	ins := aggregator.Insight{
		KPI:           aggregator.KPI{TotalItems: 10, CriticalItems: 1, HighFrustrationRate: 0.1},
		PainByProduct: []aggregator.ProductPain{{ProductArea: "Support Experience", PainLevel: 9}},
		IssueTypes:    []aggregator.IssueTypeStat{{IssueType: "Feature Request", Count: 7}},
	}
	cards := Generate(ins)
	if len(cards) != 2 {
		t.Fatalf("cards = %+v, want 2", cards)
	}
	if cards[1].Action != "Monitor and collect more data" {
		t.Fatalf("fallback card = %+v", cards[1])
	}
}
