package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/petroops/station-engine/report"
	"github.com/petroops/station-engine/station"
)

// StatementPDF renders the monthly P&L as a printable statement.
// Latin-script company fields only; the Arabic name needs a UTF-8 font and
// is carried on the CSV/XLSX exports instead.
func StatementPDF(settings station.Settings, months []report.MonthlyAggregate, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Fiscal Statement", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, settings.CompanyName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("VAT Number: %s", settings.TaxNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Month", "Revenue", "Cost", "VAT (15%)", "Expenses", "Gross Profit", "Net Profit"}
	widths := []float64{35, 38, 38, 35, 38, 40, 40}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range months {
		cells := []string{
			m.Month, m.Revenue.StringFixed(2), m.Cost.StringFixed(2),
			m.VAT.StringFixed(2), m.TotalExpense.StringFixed(2),
			m.GrossProfit.StringFixed(2), m.NetProfit.StringFixed(2),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	totals := report.Summarize(months)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Net Profit (all periods): %s", totals.NetProfit.StringFixed(2)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
