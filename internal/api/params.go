package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"feedback-intel-go/internal/aggregator"
	"feedback-intel-go/internal/session"
	"feedback-intel-go/internal/types"
)

const sessionHeader = "X-Session-ID"

func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(sessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("session")); id != "" {
		return id
	}
	return session.DefaultID
}

func autoRefresh(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("auto_refresh")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// parseFilter starts from "everything selected" and narrows by query params.
// A multi-select param that is present replaces the default, so ?product=
// with no value selects nothing.
func parseFilter(q url.Values, records []types.Record) (aggregator.Filter, error) {
	f := aggregator.DefaultFilter(records)

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(aggregator.DateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", v)
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(aggregator.DateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", v)
		}
		f.To = t
	}

	selections := []struct {
		param string
		dst   *[]string
	}{
		{"product", &f.ProductAreas},
		{"issue_type", &f.IssueTypes},
		{"source", &f.Sources},
		{"tier", &f.Tiers},
		{"region", &f.Regions},
	}
	for _, s := range selections {
		if vals, ok := q[s.param]; ok {
			*s.dst = nonEmpty(vals)
		}
	}
	f.Search = q.Get("q")
	return f, nil
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
