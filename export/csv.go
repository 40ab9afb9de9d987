package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/petroops/station-engine/station"
)

// bom keeps Arabic company names readable when the file lands in Excel.
const bom = "\uFEFF"

// WriteCSV writes the fixed company header block followed by the tabular
// data. The header block is plain lines, not CSV records; only the table
// itself is comma-quoted.
func WriteCSV(w io.Writer, settings station.Settings, now time.Time, t Table) error {
	if _, err := fmt.Fprint(w, bom); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Company: %s / %s\n", settings.CompanyName, settings.CompanyNameAr); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "VAT Number: %s\n", settings.TaxNumber); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Date: %s\n\n", now.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
