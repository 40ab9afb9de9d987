package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/petroops/station-engine/report"
	"github.com/petroops/station-engine/station"
)

// Statement builds the fiscal statement workbook: a summary sheet with the
// company identity and totals, and a detail sheet with one row per month.
func Statement(settings station.Settings, months []report.MonthlyAggregate, now time.Time) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)

	set := func(sheet, cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totals := report.Summarize(months)

	set(summarySheet, "A1", "Company")
	set(summarySheet, "B1", fmt.Sprintf("%s / %s", settings.CompanyName, settings.CompanyNameAr))
	set(summarySheet, "A2", "VAT Number")
	set(summarySheet, "B2", settings.TaxNumber)
	set(summarySheet, "A3", "Generated")
	set(summarySheet, "B3", now.Format("2006-01-02 15:04:05"))
	set(summarySheet, "A5", "Total Revenue")
	set(summarySheet, "B5", totals.TotalRevenue.String())
	set(summarySheet, "A6", "Total Expenses")
	set(summarySheet, "B6", totals.TotalExpense.String())
	set(summarySheet, "A7", "VAT (15%)")
	set(summarySheet, "B7", totals.TotalVAT.String())
	set(summarySheet, "A8", "Gross Profit")
	set(summarySheet, "B8", totals.GrossProfit.String())
	set(summarySheet, "A9", "Net Profit")
	set(summarySheet, "B9", totals.NetProfit.String())

	detailSheet := "Monthly P&L"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}

	headers := []string{"Month", "Revenue", "Cost of Goods", "VAT", "Fixed Expenses", "Variable Expenses", "Gross Profit", "Net Profit"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		set(detailSheet, cell, h)
	}
	for r, m := range months {
		values := []string{
			m.Month, m.Revenue.String(), m.Cost.String(), m.VAT.String(),
			m.FixedExpense.String(), m.VariableExpense.String(),
			m.GrossProfit.String(), m.NetProfit.String(),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			set(detailSheet, cell, v)
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
