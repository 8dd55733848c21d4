package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"feedback-intel-go/internal/processor"
	"feedback-intel-go/internal/types"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

type columns struct {
	id, text, source, region, tier, created int
}

// Load reads feedback rows from the first sheet of an .xlsx file and
// classifies each one. Rows without text are skipped.
func Load(path string) ([]types.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return load(f, time.Now())
}

// LoadReader is Load for an in-memory workbook.
func LoadReader(r io.Reader) ([]types.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer f.Close()
	return load(f, time.Now())
}

func load(f *excelize.File, now time.Time) ([]types.Record, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return []types.Record{}, nil
	}
	cols := detectColumns(rows[0])
	if cols.text == -1 {
		return nil, fmt.Errorf("no feedback text column in header %v", rows[0])
	}

	out := make([]types.Record, 0, len(rows)-1)
	for i, r := range rows[1:] {
		raw := types.RawFeedback{
			Text:   cell(r, cols.text),
			Source: orUnknown(cell(r, cols.source)),
			Region: orUnknown(cell(r, cols.region)),
			Tier:   orUnknown(cell(r, cols.tier)),
		}
		// skip rows without text quietly
		if strings.TrimSpace(raw.Text) == "" {
			continue
		}
		created := cell(r, cols.created)
		raw.CreatedAt = parseTime(created, now)

		id := cell(r, cols.id)
		if id == "" {
			// keyed on the sheet row and raw cells, so re-reading the file keeps ids
			id = processor.ContentID(strconv.Itoa(i+2), raw.Text, raw.Source, raw.Region, raw.Tier, created)
		}
		out = append(out, processor.ProcessFeedback(id, raw))
	}
	return out, nil
}

// detectColumns finds columns by header heuristics; -1 means absent.
func detectColumns(header []string) columns {
	c := columns{id: -1, text: -1, source: -1, region: -1, tier: -1, created: -1}
	set := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case l == "id" || strings.HasSuffix(l, " id"):
			set(&c.id, i)
		case strings.Contains(l, "created") || strings.Contains(l, "timestamp") || l == "date":
			set(&c.created, i)
		case strings.Contains(l, "source") || strings.Contains(l, "channel"):
			set(&c.source, i)
		case strings.Contains(l, "region"):
			set(&c.region, i)
		case strings.Contains(l, "tier"):
			set(&c.tier, i)
		case strings.Contains(l, "text") || strings.Contains(l, "description") || strings.Contains(l, "comment") || l == "feedback":
			set(&c.text, i)
		}
	}
	return c
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseTime accepts the common text layouts and Excel serial dates.
// Anything else is stamped with now.
func parseTime(v string, now time.Time) time.Time {
	if v == "" {
		return now
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}
	return now
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
