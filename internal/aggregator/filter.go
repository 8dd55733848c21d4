package aggregator

import (
	"sort"
	"strings"
	"time"

	"feedback-intel-go/internal/types"
)

const DateLayout = "2006-01-02"

// Filter narrows a record batch. From/To are compared on their date component
// and are inclusive; a zero value leaves that end open. Each selection keeps a
// record only if its value is listed, so an empty selection keeps nothing.
type Filter struct {
	From         time.Time
	To           time.Time
	ProductAreas []string
	IssueTypes   []string
	Sources      []string
	Tiers        []string
	Regions      []string
	Search       string
}

// Options lists the distinct values per dimension, sorted.
type Options struct {
	ProductAreas []string `json:"product_areas"`
	IssueTypes   []string `json:"issue_types"`
	Sources      []string `json:"sources"`
	Tiers        []string `json:"tiers"`
	Regions      []string `json:"regions"`
	MinDate      string   `json:"min_date,omitempty"`
	MaxDate      string   `json:"max_date,omitempty"`
}

func OptionsFor(records []types.Record) Options {
	products, issues, sources, tiers, regions := set{}, set{}, set{}, set{}, set{}
	var minDay, maxDay time.Time
	for i, r := range records {
		products.add(r.ProductArea)
		issues.add(r.IssueType)
		sources.add(r.Source)
		tiers.add(r.Tier)
		regions.add(r.Region)
		d := dayOf(r.CreatedAt)
		if i == 0 || d.Before(minDay) {
			minDay = d
		}
		if i == 0 || d.After(maxDay) {
			maxDay = d
		}
	}
	opts := Options{
		ProductAreas: products.sorted(),
		IssueTypes:   issues.sorted(),
		Sources:      sources.sorted(),
		Tiers:        tiers.sorted(),
		Regions:      regions.sorted(),
	}
	if len(records) > 0 {
		opts.MinDate = minDay.Format(DateLayout)
		opts.MaxDate = maxDay.Format(DateLayout)
	}
	return opts
}

// DefaultFilter selects everything in the batch, spanning its first to last day.
func DefaultFilter(records []types.Record) Filter {
	opts := OptionsFor(records)
	f := Filter{
		ProductAreas: opts.ProductAreas,
		IssueTypes:   opts.IssueTypes,
		Sources:      opts.Sources,
		Tiers:        opts.Tiers,
		Regions:      opts.Regions,
	}
	if opts.MinDate != "" {
		f.From, _ = time.Parse(DateLayout, opts.MinDate)
		f.To, _ = time.Parse(DateLayout, opts.MaxDate)
	}
	return f
}

// Apply returns the matching records as a new slice, in input order.
func Apply(records []types.Record, f Filter) []types.Record {
	products := newSet(f.ProductAreas)
	issues := newSet(f.IssueTypes)
	sources := newSet(f.Sources)
	tiers := newSet(f.Tiers)
	regions := newSet(f.Regions)
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	var from, to time.Time
	if !f.From.IsZero() {
		from = dayOf(f.From)
	}
	if !f.To.IsZero() {
		to = dayOf(f.To)
	}

	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		d := dayOf(r.CreatedAt)
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		if !products.has(r.ProductArea) || !issues.has(r.IssueType) ||
			!sources.has(r.Source) || !tiers.has(r.Tier) || !regions.has(r.Region) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.Text), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// dayOf keeps the calendar date of t as seen in t's own location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type set map[string]struct{}

func newSet(xs []string) set {
	s := make(set, len(xs))
	for _, x := range xs {
		s.add(x)
	}
	return s
}

func (s set) add(x string) { s[x] = struct{}{} }

func (s set) has(x string) bool {
	_, ok := s[x]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
