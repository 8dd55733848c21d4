package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"feedback-intel-go/internal/types"
)

const sheetName = "Feedback"

var exportHeader = []string{
	"Feedback ID",
	"Created At",
	"Source",
	"Customer Tier",
	"Region",
	"Product Area",
	"Issue Type",
	"Issue Severity (1-5)",
	"Customer Frustration (0-1)",
	"Frustration Level",
	"Volume Weight",
	"Customer Pain Level",
	"Feedback Text",
}

func exportRow(r types.Record) []string {
	return []string{
		r.ID,
		r.CreatedAt.Format(time.RFC3339),
		r.Source,
		r.Tier,
		r.Region,
		r.ProductArea,
		r.IssueType,
		strconv.Itoa(r.Severity),
		strconv.FormatFloat(r.Frustration, 'f', 2, 64),
		string(r.FrustrationLevel),
		strconv.FormatFloat(r.VolumeWeight, 'f', 2, 64),
		strconv.FormatFloat(r.PainLevel, 'f', 2, 64),
		r.Text,
	}
}

// ExportXLSX writes records, in the given order, as a one-sheet workbook.
func ExportXLSX(records []types.Record, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellName, toCells(exportRow(r))); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportCSV writes the same table as ExportXLSX in CSV form.
func ExportCSV(records []types.Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(exportRow(r)); err != nil {
			return fmt.Errorf("write row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func toCells(xs []string) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
