package livesource

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"feedback-intel-go/internal/dataset"
	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/processor"
	"feedback-intel-go/internal/types"
)

func testLogger() *logger.Logger {
	var buf bytes.Buffer
	return logger.NewWithOutput(&buf)
}

func TestStubIsEmpty(t *testing.T) {
	got := NewStub(testLogger()).Fetch(context.Background(), types.LiveSourceConfig{APIToken: "x"})
	if got == nil || len(got) != 0 {
		t.Fatalf("stub returned %v", got)
	}
}

func TestNewPicksSource(t *testing.T) {
	log := testLogger()
	if _, ok := New(types.LiveSourceConfig{}, "", log).(*Stub); !ok {
		t.Fatal("expected stub with no config")
	}
	if _, ok := New(types.LiveSourceConfig{FeedURL: "https://example.com"}, "", log).(*HTTPSource); !ok {
		t.Fatal("expected http source")
	}
	if _, ok := New(types.LiveSourceConfig{FeedURL: "https://example.com"}, "feedback.xlsx", log).(*FileSource); !ok {
		t.Fatal("dataset path should win")
	}
}

func TestHTTPSourceFetch(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("account_id") != "acct" {
			t.Errorf("account_id = %q", r.URL.Query().Get("account_id"))
		}
		_ = json.NewEncoder(w).Encode([]types.RawFeedback{
			{Text: "Our site is down, this is unacceptable", Source: "Email", Region: "NA", Tier: "Pro", CreatedAt: created},
			{Text: "   "},
			{Text: "please add bulk rule editing"},
		})
	}))
	defer srv.Close()

	s := NewHTTPSource(time.Second, testLogger())
	fixed := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	got := s.Fetch(context.Background(), types.LiveSourceConfig{FeedURL: srv.URL, APIToken: "tok", AccountID: "acct"})
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 (blank text skipped)", len(got))
	}
	if got[0].IssueType != "Outage / Service Down" || !got[0].CreatedAt.Equal(created) || got[0].Source != "Email" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Source != "Unknown" || got[1].Tier != "Unknown" || !got[1].CreatedAt.Equal(fixed) {
		t.Fatalf("defaults not applied: %+v", got[1])
	}
	if got[1].Scored != processor.ClassifyAndScore("please add bulk rule editing") {
		t.Fatal("live record not classified")
	}
}

func TestHTTPSourceFailuresAreEmpty(t *testing.T) {
	var hits int32
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			http.Error(w, "no", http.StatusUnauthorized)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			s := NewHTTPSource(time.Second, testLogger())
			s.maxElapsed = 200 * time.Millisecond
			got := s.Fetch(context.Background(), types.LiveSourceConfig{FeedURL: srv.URL})
			if got == nil || len(got) != 0 {
				t.Fatalf("got %v, want empty", got)
			}
		})
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("4xx retried: %d hits", n)
	}
}

func TestHTTPSourceRetriesWithinBudget(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewHTTPSource(time.Second, testLogger())
	start := time.Now()
	got := s.Fetch(context.Background(), types.LiveSourceConfig{FeedURL: srv.URL})
	elapsed := time.Since(start)

	if len(got) != 0 {
		t.Fatalf("got %d records", len(got))
	}
	if elapsed > 3*time.Second {
		t.Fatalf("fetch took %v, want about the 1s budget", elapsed)
	}
	if n := atomic.LoadInt32(&hits); n < 1 || n > defaultMaxRetries+1 {
		t.Fatalf("attempts = %d", n)
	}
}

func TestHTTPSourceIDsAreStable(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]types.RawFeedback{
			{Text: "dns is down", Source: "Email", CreatedAt: created},
			{Text: "dns is down", Source: "Email", CreatedAt: created},
			{Text: "no timestamp here"},
		})
	}))
	defer srv.Close()

	s := NewHTTPSource(time.Second, testLogger())
	cfg := types.LiveSourceConfig{FeedURL: srv.URL}
	first := s.Fetch(context.Background(), cfg)
	second := s.Fetch(context.Background(), cfg)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("records = %d/%d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("item %d id changed: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Fatal("identical items share an id")
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	s := NewHTTPSource(100*time.Millisecond, testLogger())
	s.maxElapsed = 200 * time.Millisecond
	got := s.Fetch(context.Background(), types.LiveSourceConfig{FeedURL: "http://127.0.0.1:1/feed"})
	if len(got) != 0 {
		t.Fatalf("got %d records", len(got))
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.xlsx")
	var buf bytes.Buffer
	src := []types.Record{processor.ProcessFeedback("FB-0000000A", types.RawFeedback{
		Text: "Cache purge is slow", Source: "Discord", Region: "APAC", Tier: "Free",
		CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	})}
	if err := dataset.ExportXLSX(src, &buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	got := NewFileSource(path, testLogger()).Fetch(context.Background(), types.LiveSourceConfig{})
	if len(got) != 1 || got[0].ID != "FB-0000000A" || got[0].ProductArea != "CDN & Caching" {
		t.Fatalf("got %+v", got)
	}

	missing := NewFileSource(filepath.Join(t.TempDir(), "nope.xlsx"), testLogger())
	if got := missing.Fetch(context.Background(), types.LiveSourceConfig{}); len(got) != 0 {
		t.Fatalf("missing file returned %d records", len(got))
	}
}

func TestFileSourceIDsAreStable(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	_ = f.SetCellValue(sheet, "A1", "Feedback Text")
	_ = f.SetCellValue(sheet, "B1", "Source")
	_ = f.SetCellValue(sheet, "A2", "Worker deploy keeps failing")
	_ = f.SetCellValue(sheet, "B2", "Discord")
	path := filepath.Join(t.TempDir(), "noids.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	src := NewFileSource(path, testLogger())
	first := src.Fetch(context.Background(), types.LiveSourceConfig{})
	second := src.Fetch(context.Background(), types.LiveSourceConfig{})
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("records = %d/%d", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Fatalf("id changed between fetches: %s vs %s", first[0].ID, second[0].ID)
	}
}
