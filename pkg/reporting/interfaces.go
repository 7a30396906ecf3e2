// Package reporting provides file output for a symbol's simulator run and
// the cross-asset portfolio analytics, grounded in the teacher's
// pkg/reporting package: the same shape (a FileReporter interface, an
// excelize workbook with named styles, a path manager) retargeted from
// backtest cycle/trade/TP-level breakdowns to DCA trade history, ROI
// summaries and the correlation matrix.
package reporting

import "github.com/xuri/excelize/v2"

// FileReporter defines the file-output surface a symbol's run needs.
type FileReporter interface {
	WriteTradesCSV(data WorkbookData, path string) error
	WriteWorkbookXLSX(data WorkbookData, path string) error
}

// PathManager manages default output locations for generated reports.
type PathManager interface {
	GetDefaultOutputDir(symbol, reportDate string) string
	EnsureDirectoryExists(path string) error
}

// ExcelStyles holds the named cell styles shared across sheets.
type ExcelStyles struct {
	HeaderStyle    int
	CurrencyStyle  int
	PercentStyle   int
	BaseStyle      int
	BuyStyle       int
	SellStyle      int
	SummaryStyle   int
}

func newExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    7,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    9,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BuyStyle, err = fx.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.SellStyle, err = fx.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6FFE6"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	return styles, err
}
