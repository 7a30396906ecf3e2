package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCSVReporter writes a symbol's trade history as CSV, delegating
// to the Excel writer when the caller asks for an .xlsx path — same
// dispatch the teacher's CSV reporter uses.
type DefaultCSVReporter struct{}

func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

func (r *DefaultCSVReporter) WriteTradesCSV(data WorkbookData, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteWorkbookXLSX(data, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Kind", "Datetime", "Price", "Amount"}); err != nil {
		return err
	}

	for _, tr := range data.Summary.Trades {
		row := []string{
			tr.Kind.String(),
			tr.Datetime.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.8f", tr.Price),
			fmt.Sprintf("%.8f", tr.Amount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: roi=%.2f%%; final_value=$%.2f; trades=%d; fees=$%.2f",
		data.Summary.ROI, data.Summary.FinalPortfolioValue, data.Summary.NumTrades, data.Summary.EstimatedFeesPaid)
	summaryRow := make([]string, 4)
	summaryRow[3] = summary
	return w.Write(summaryRow)
}

// Package-level convenience function.
func WriteTradesCSV(data WorkbookData, path string) error {
	return NewDefaultCSVReporter().WriteTradesCSV(data, path)
}
