package aggregator

import (
	"math"
	"sort"

	"feedback-intel-go/internal/types"
)

// CriticalSeverity is the lowest severity counted as a critical issue.
const CriticalSeverity = 4

// DefaultTopN matches the dashboard's top-10 charts.
const DefaultTopN = 10

type KPI struct {
	TotalItems          int     `json:"total_items"`
	CriticalItems       int     `json:"critical_items"`
	AvgSeverity         float64 `json:"avg_severity"`
	HighFrustration     int     `json:"high_frustration"`
	HighFrustrationRate float64 `json:"high_frustration_rate"`
}

type ProductPain struct {
	ProductArea string  `json:"product_area"`
	PainLevel   float64 `json:"pain_level"`
}

type IssueTypeStat struct {
	IssueType   string  `json:"issue_type"`
	Count       int     `json:"feedback_items"`
	AvgSeverity float64 `json:"avg_severity"`
}

type DailyPoint struct {
	Date          string  `json:"date"`
	FeedbackItems int     `json:"feedback_items"`
	CriticalItems int     `json:"critical_items"`
	CriticalRate  float64 `json:"critical_rate"`
}

type FrustrationCount struct {
	Level types.FrustrationLevel `json:"frustration_level"`
	Count int                    `json:"feedback_items"`
}

type ExplorerRow struct {
	ID               string                 `json:"id"`
	CreatedAt        string                 `json:"created_at"`
	Source           string                 `json:"source"`
	Tier             string                 `json:"tier"`
	Region           string                 `json:"region"`
	ProductArea      string                 `json:"product_area"`
	IssueType        string                 `json:"issue_type"`
	Severity         int                    `json:"severity"`
	FrustrationLevel types.FrustrationLevel `json:"frustration_level"`
	PainLevel        float64                `json:"pain_level"`
	Text             string                 `json:"text"`
}

type Insight struct {
	KPI           KPI                `json:"kpi"`
	PainByProduct []ProductPain      `json:"pain_by_product"`
	IssueTypes    []IssueTypeStat    `json:"issue_types"`
	Daily         []DailyPoint       `json:"daily"`
	Frustration   []FrustrationCount `json:"frustration"`
}

// Aggregate computes every dashboard rollup over an already-filtered batch.
func Aggregate(records []types.Record) Insight {
	return Insight{
		KPI:           KPIs(records),
		PainByProduct: PainByProduct(records, DefaultTopN),
		IssueTypes:    IssueTypeStats(records, DefaultTopN),
		Daily:         DailyTrend(records),
		Frustration:   FrustrationBreakdown(records),
	}
}

func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func KPIs(records []types.Record) KPI {
	k := KPI{TotalItems: len(records)}
	sevSum := 0
	for _, r := range records {
		sevSum += r.Severity
		if r.Severity >= CriticalSeverity {
			k.CriticalItems++
		}
		if r.FrustrationLevel == types.FrustrationHigh {
			k.HighFrustration++
		}
	}
	k.AvgSeverity = rate(sevSum, k.TotalItems)
	k.HighFrustrationRate = rate(k.HighFrustration, k.TotalItems)
	return k
}

// PainByProduct sums pain per product area, worst first. limit <= 0 keeps all.
func PainByProduct(records []types.Record, limit int) []ProductPain {
	sums := map[string]float64{}
	for _, r := range records {
		sums[r.ProductArea] += r.PainLevel
	}
	out := make([]ProductPain, 0, len(sums))
	for p, v := range sums {
		out = append(out, ProductPain{ProductArea: p, PainLevel: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PainLevel != out[j].PainLevel {
			return out[i].PainLevel > out[j].PainLevel
		}
		return out[i].ProductArea < out[j].ProductArea
	})
	return head(out, limit)
}

// IssueTypeStats counts items and averages severity per issue type, most reported first.
func IssueTypeStats(records []types.Record, limit int) []IssueTypeStat {
	counts := map[string]int{}
	sevSums := map[string]int{}
	for _, r := range records {
		counts[r.IssueType]++
		sevSums[r.IssueType] += r.Severity
	}
	out := make([]IssueTypeStat, 0, len(counts))
	for it, c := range counts {
		out = append(out, IssueTypeStat{IssueType: it, Count: c, AvgSeverity: rate(sevSums[it], c)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].IssueType < out[j].IssueType
	})
	return head(out, limit)
}

// DailyTrend buckets by calendar date, oldest first.
func DailyTrend(records []types.Record) []DailyPoint {
	byDay := map[string]*DailyPoint{}
	for _, r := range records {
		key := dayOf(r.CreatedAt).Format(DateLayout)
		p, ok := byDay[key]
		if !ok {
			p = &DailyPoint{Date: key}
			byDay[key] = p
		}
		p.FeedbackItems++
		if r.Severity >= CriticalSeverity {
			p.CriticalItems++
		}
	}
	out := make([]DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		p.CriticalRate = rate(p.CriticalItems, p.FeedbackItems)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// FrustrationBreakdown always returns High, Medium, Low in that order.
func FrustrationBreakdown(records []types.Record) []FrustrationCount {
	out := []FrustrationCount{
		{Level: types.FrustrationHigh},
		{Level: types.FrustrationMedium},
		{Level: types.FrustrationLow},
	}
	for _, r := range records {
		for i := range out {
			if out[i].Level == r.FrustrationLevel {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// Explorer returns table rows ordered by pain, then severity, both descending.
func Explorer(records []types.Record) []ExplorerRow {
	rows := make([]ExplorerRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ExplorerRow{
			ID:               r.ID,
			CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04"),
			Source:           r.Source,
			Tier:             r.Tier,
			Region:           r.Region,
			ProductArea:      r.ProductArea,
			IssueType:        r.IssueType,
			Severity:         r.Severity,
			FrustrationLevel: r.FrustrationLevel,
			PainLevel:        math.Round(r.PainLevel*100) / 100,
			Text:             r.Text,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PainLevel != rows[j].PainLevel {
			return rows[i].PainLevel > rows[j].PainLevel
		}
		return rows[i].Severity > rows[j].Severity
	})
	return rows
}

func head[T any](xs []T, limit int) []T {
	if limit > 0 && len(xs) > limit {
		return xs[:limit]
	}
	return xs
}
