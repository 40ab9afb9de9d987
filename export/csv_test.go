package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petroops/station-engine/export"
	"github.com/petroops/station-engine/station"
)

var exportSettings = station.Settings{
	CompanyName:   "Saudi Petro ERP",
	CompanyNameAr: "نظام بترو السعودي",
	TaxNumber:     "312345678900003",
}

var exportTime = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// HEADER BLOCK
// =============================================================================

func TestWriteCSV_CompanyHeaderBlock(t *testing.T) {
	// GIVEN: company settings and a fixed timestamp
	// THEN: BOM, then the three header lines, then a blank line, then data

	var buf bytes.Buffer
	err := export.WriteCSV(&buf, exportSettings, exportTime, export.Table{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"f1", "Octane 91"}},
	})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\uFEFF"), "BOM must lead the file")

	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "Company: Saudi Petro ERP / نظام بترو السعودي", lines[0])
	assert.Equal(t, "VAT Number: 312345678900003", lines[1])
	assert.Equal(t, "Date: 2025-03-10 14:30:00", lines[2])
	assert.Equal(t, "", lines[3], "blank separator before the table")
	assert.Equal(t, "id,name", lines[4])
	assert.Equal(t, "f1,Octane 91", lines[5])
}

func TestWriteCSV_QuotesCommasInCells(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteCSV(&buf, exportSettings, exportTime, export.Table{
		Columns: []string{"details"},
		Rows:    [][]string{{"rent, march"}},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"rent, march"`)
}

// =============================================================================
// TABLE SHAPE
// =============================================================================

func TestFromRecords_ColumnsFollowRecordLayout(t *testing.T) {
	// Columns come from json tags in declared field order, so a shift
	// export reads exactly like the persisted shift record.

	end := exportTime.Add(8 * time.Hour)
	table := export.FromRecords([]station.Shift{{
		ID:           "sh1",
		StaffID:      "s1",
		StaffName:    "Ahmed Al-Rashid",
		PumpCode:     "01",
		FuelID:       "f1",
		FuelName:     "Octane 91",
		PriceAtOpen:  dec("2.18"),
		StartReading: dec("10000"),
		StartTime:    exportTime,
		Status:       station.ShiftClosed,
		EndReading:   dec("10500"),
		EndTime:      &end,
		TotalLiters:  dec("500"),
		CashAmount:   dec("1000"),
		CardAmount:   dec("90"),
	}})

	assert.Equal(t, []string{
		"id", "staffId", "staffName", "pumpId", "fuelTypeId", "fuelType",
		"priceAtShift", "startReading", "startTime", "status",
		"endReading", "endTime", "totalLiters", "expectedAmount",
		"cashAmount", "cardAmount", "shortage",
	}, table.Columns)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "sh1", row[0])
	assert.Equal(t, "2.18", row[6])
	assert.Equal(t, "2025-03-10T14:30:00Z", row[8])
	assert.Equal(t, "CLOSED", row[9])
	assert.Equal(t, end.Format(time.RFC3339), row[11])
}

func TestFromRecords_NestedPayloadsAsJSON(t *testing.T) {
	table := export.FromRecords([]station.Supplier{{
		ID: "sup1", Name: "Aramco Trading", FuelIDs: []string{"f1", "f2"},
	}})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, `["f1","f2"]`, table.Rows[0][len(table.Rows[0])-1])
}

func TestFromRecords_Empty(t *testing.T) {
	table := export.FromRecords([]station.FuelProduct{})

	assert.NotEmpty(t, table.Columns, "header row survives an empty collection")
	assert.Empty(t, table.Rows)
}
