package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultExcelReporter writes a symbol's report as a multi-sheet XLSX
// workbook: Trades, Summary, Correlation — in place of the teacher's
// Trades/Cycles/Detailed Analysis sheets.
type DefaultExcelReporter struct{}

func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

func (r *DefaultExcelReporter) WriteWorkbookXLSX(data WorkbookData, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const summarySheet = "Summary"
	const correlationSheet = "Correlation"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(summarySheet)
	fx.NewSheet(correlationSheet)

	styles, err := newExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, data, styles); err != nil {
		return err
	}
	if err := r.writeSummarySheet(fx, summarySheet, data, styles); err != nil {
		return err
	}
	if err := r.writeCorrelationSheet(fx, correlationSheet, data, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, data WorkbookData, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 14)
	fx.SetColWidth(sheet, "B", "B", 20)
	fx.SetColWidth(sheet, "C", "C", 12)
	fx.SetColWidth(sheet, "D", "D", 12)

	headers := []string{"Kind", "Datetime", "Price", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	row := 2
	for _, tr := range data.Summary.Trades {
		style := styles.BaseStyle
		switch tr.Kind.String() {
		case "Buy", "DcaBuy":
			style = styles.BuyStyle
		case "PartialSell", "FullSell", "FinalSell":
			style = styles.SellStyle
		}

		values := []interface{}{
			tr.Kind.String(),
			tr.Datetime.Format("2006-01-02 15:04:05"),
			tr.Price,
			tr.Amount,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			fx.SetCellValue(sheet, cell, v)
			if i == 2 {
				fx.SetCellStyle(sheet, cell, cell, styles.CurrencyStyle)
			} else {
				fx.SetCellStyle(sheet, cell, cell, style)
			}
		}
		row++
	}

	if row > 2 {
		fx.AutoFilter(sheet, fmt.Sprintf("A1:D%d", row-1), []excelize.AutoFilterOptions{})
	}
	return nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, data WorkbookData, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 18)

	fx.SetCellValue(sheet, "A1", fmt.Sprintf("Simulation summary — %s", data.Symbol))
	fx.SetCellStyle(sheet, "A1", "A1", styles.SummaryStyle)
	fx.MergeCell(sheet, "A1:B1", "")

	rows := [][2]interface{}{
		{"Initial capital", data.Summary.InitialCapital},
		{"Final portfolio value", data.Summary.FinalPortfolioValue},
		{"ROI (%)", data.Summary.ROI},
		{"Number of trades", data.Summary.NumTrades},
		{"Estimated fees paid", data.Summary.EstimatedFeesPaid},
	}
	for i, pair := range rows {
		r := i + 3
		cellA, _ := excelize.CoordinatesToCellName(1, r)
		cellB, _ := excelize.CoordinatesToCellName(2, r)
		fx.SetCellValue(sheet, cellA, pair[0])
		fx.SetCellValue(sheet, cellB, pair[1])
		fx.SetCellStyle(sheet, cellA, cellA, styles.HeaderStyle)
		fx.SetCellStyle(sheet, cellB, cellB, styles.CurrencyStyle)
	}

	if len(data.Ranking) > 0 {
		headerRow := len(rows) + 5
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", headerRow), "Comparative ROI ranking")
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("A%d", headerRow), styles.SummaryStyle)
		fx.MergeCell(sheet, fmt.Sprintf("A%d:B%d", headerRow, headerRow), "")

		for i, rank := range data.Ranking {
			rr := headerRow + 1 + i
			cellA, _ := excelize.CoordinatesToCellName(1, rr)
			cellB, _ := excelize.CoordinatesToCellName(2, rr)
			fx.SetCellValue(sheet, cellA, fmt.Sprintf("%d. %s (%d trades)", i+1, rank.Symbol, rank.Trades))
			fx.SetCellValue(sheet, cellB, rank.ROI)
			fx.SetCellStyle(sheet, cellB, cellB, styles.PercentStyle)
		}
	}

	return nil
}

func (r *DefaultExcelReporter) writeCorrelationSheet(fx *excelize.File, sheet string, data WorkbookData, styles ExcelStyles) error {
	if len(data.Correlation) == 0 || len(data.Correlation) != len(data.Symbols) {
		return nil
	}

	cellA, _ := excelize.CoordinatesToCellName(1, 1)
	fx.SetCellValue(sheet, cellA, "Correlation matrix")
	fx.SetCellStyle(sheet, cellA, cellA, styles.HeaderStyle)

	for j, sym := range data.Symbols {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		fx.SetCellValue(sheet, cell, sym)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, sym := range data.Symbols {
		row := i + 2
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		fx.SetCellValue(sheet, labelCell, sym)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.HeaderStyle)

		for j := range data.Symbols {
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			fx.SetCellValue(sheet, cell, data.Correlation[i][j])
		}
	}

	return nil
}

// Package-level convenience function.
func WriteWorkbookXLSX(data WorkbookData, path string) error {
	return NewDefaultExcelReporter().WriteWorkbookXLSX(data, path)
}
