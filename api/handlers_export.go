/*
handlers_export.go - Download endpoints

Every collection and the monthly report export as CSV with the fixed
company header block. The fiscal statement additionally exports as an
XLSX workbook and a printable PDF.
*/
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petroops/station-engine/export"
	"github.com/petroops/station-engine/report"
)

// ExportCSV streams a collection as CSV.
// GET /api/export/{collection}.csv
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	snap := h.Station.Snapshot()

	var table export.Table
	switch name {
	case "shifts":
		table = export.FromRecords(snap.Shifts)
	case "fuels":
		table = export.FromRecords(snap.Fuels)
	case "pumps":
		table = export.FromRecords(snap.Pumps)
	case "expenses":
		table = export.FromRecords(snap.Expenses)
	case "suppliers":
		table = export.FromRecords(snap.Suppliers)
	case "supplies":
		table = export.FromRecords(snap.Supplies)
	case "staff":
		table = export.FromRecords(snap.Staff)
	case "audit":
		table = export.FromRecords(snap.AuditLog)
	case "monthly":
		table = export.FromRecords(report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels))
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown export %q", name), nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	if err := export.WriteCSV(w, snap.Settings, h.Station.Now(), table); err != nil {
		h.Log.Error().Err(err).Str("collection", name).Msg("csv export failed")
	}
}

// ExportStatementXLSX streams the fiscal statement workbook.
// GET /api/export/statement.xlsx
func (h *Handler) ExportStatementXLSX(w http.ResponseWriter, r *http.Request) {
	snap := h.Station.Snapshot()
	months := report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels)

	data, err := export.Statement(snap.Settings, months, h.Station.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Statement generation failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=fiscal_statement.xlsx")
	w.Write(data)
}

// ExportStatementPDF streams the printable statement.
// GET /api/export/statement.pdf
func (h *Handler) ExportStatementPDF(w http.ResponseWriter, r *http.Request) {
	snap := h.Station.Snapshot()
	months := report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels)

	data, err := export.StatementPDF(snap.Settings, months, h.Station.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Statement generation failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=fiscal_statement.pdf")
	w.Write(data)
}
