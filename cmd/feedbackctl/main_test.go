package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"feedback-intel-go/internal/dataset"
	"feedback-intel-go/internal/types"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "Our site is down,", "this is unacceptable and broken")
	if err != nil {
		t.Fatal(err)
	}
	var got types.Scored
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output not JSON: %v\n%s", err, out)
	}
	if got.Severity != 5 || got.FrustrationLevel != types.FrustrationHigh {
		t.Fatalf("scored = %+v", got)
	}
	if _, err := run(t, "classify"); err == nil {
		t.Fatal("classify without text should fail")
	}
}

func TestGenerateJSONIsSeeded(t *testing.T) {
	a, err := run(t, "generate", "--n", "15", "--seed", "42")
	if err != nil {
		t.Fatal(err)
	}
	b, err := run(t, "generate", "--n", "15", "--seed", "42")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("seeded output differs between runs")
	}
	var records []types.Record
	if err := json.Unmarshal([]byte(a), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 15 {
		t.Fatalf("records = %d", len(records))
	}
}

func TestGenerateCSVAndXLSX(t *testing.T) {
	out, err := run(t, "generate", "--n", "5", "--seed", "1", "--format", "csv")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	if err != nil || len(rows) != 6 {
		t.Fatalf("csv rows = %d, err %v", len(rows), err)
	}

	path := filepath.Join(t.TempDir(), "feedback.xlsx")
	if _, err := run(t, "generate", "--n", "5", "--seed", "1", "--format", "xlsx", "--out", path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := dataset.LoadReader(f)
	if err != nil || len(records) != 5 {
		t.Fatalf("xlsx records = %d, err %v", len(records), err)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	cases := [][]string{
		{"generate", "--format", "yaml"},
		{"generate", "--format", "xlsx"},
		{"generate", "--n", "-1"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("%v should fail", args)
		}
	}
}

func TestInsightsCommand(t *testing.T) {
	out, err := run(t, "insights", "--n", "40", "--seed", "9")
	if err != nil {
		t.Fatal(err)
	}
	var got insightsOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Insight.KPI.TotalItems != 40 || len(got.Actions) == 0 {
		t.Fatalf("insights = %+v", got)
	}
}

func TestGenerateBadFormatLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	if _, err := run(t, "generate", "--n", "3", "--format", "yaml", "--out", path); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("output file was created: %v", err)
	}
}
