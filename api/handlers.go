/*
handlers.go - HTTP handlers for the back-office UI collaborator

PURPOSE:
  Exposes the station engine over REST. Handlers parse, call the engine,
  and serialize; every business rule lives in the station package.

ACTOR RESOLUTION:
  Mutating endpoints require the X-User-ID header identifying the signed-in
  user (the system has one active session; the header is how the UI carries
  it). Unknown or missing actor -> 401.

ERROR HANDLING:
  station errors map to HTTP status via the package's classifiers:
  - validation         -> 400
  - missing record     -> 404
  - state conflict     -> 409  (double-open shift, last-user deletion)
  - anything else      -> 500

SEE ALSO:
  - handlers_ops.go:    shifts, fuels, pumps, suppliers, expenses
  - handlers_admin.go:  users, staff, documents, settings, backups
  - handlers_export.go: CSV / XLSX / PDF downloads
  - server.go:          router and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/petroops/station-engine/report"
	"github.com/petroops/station-engine/station"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Station *station.Station
	Log     zerolog.Logger
}

func NewHandler(st *station.Station, log zerolog.Logger) *Handler {
	return &Handler{Station: st, Log: log}
}

// =============================================================================
// AUTH
// =============================================================================

// Login authenticates by PIN.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Station.AuthenticateByPIN(r.Context(), req.PIN)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized Access: Invalid PIN", nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout records the session end for the acting user.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	h.Station.Logout(r.Context(), actor)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DASHBOARD & REPORTS
// =============================================================================

// Dashboard returns the landing-page reads in one payload.
// GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.Station.Snapshot()

	withinDays := 30
	if v := r.URL.Query().Get("expiring_within_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			withinDays = n
		}
	}

	resp := DashboardResponse{
		OpenShifts:        h.Station.OpenShifts(),
		LowStock:          h.Station.LowStock(),
		ExpiringDocuments: h.Station.ExpiringDocuments(withinDays),
		Summary:           report.Summarize(report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels)),
	}
	if resp.OpenShifts == nil {
		resp.OpenShifts = []station.Shift{}
	}
	if resp.LowStock == nil {
		resp.LowStock = []station.FuelProduct{}
	}
	if resp.ExpiringDocuments == nil {
		resp.ExpiringDocuments = []station.StationDocument{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// MonthlyReport returns the P&L buckets, chronological.
// GET /api/reports/monthly
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	snap := h.Station.Snapshot()
	writeJSON(w, http.StatusOK, report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels))
}

// ReportSummary returns totals across all buckets.
// GET /api/reports/summary
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	snap := h.Station.Snapshot()
	writeJSON(w, http.StatusOK, report.Summarize(report.Monthly(snap.Shifts, snap.Expenses, snap.Fuels)))
}

// =============================================================================
// AUDIT
// =============================================================================

// AuditLog returns the trail, optionally filtered by ?q=term.
// GET /api/audit
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries := h.Station.QueryAudit(r.URL.Query().Get("q"))
	if entries == nil {
		entries = []station.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// =============================================================================
// HELPERS
// =============================================================================

// actor resolves the acting user from the X-User-ID header. Writes 401 and
// returns ok=false when the header is missing or unknown.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (station.Actor, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		writeError(w, http.StatusUnauthorized, "Missing X-User-ID header", nil)
		return station.Actor{}, false
	}
	for _, u := range h.Station.Snapshot().Users {
		if u.ID == id {
			return u.Actor(), true
		}
	}
	writeError(w, http.StatusUnauthorized, "Unknown user", nil)
	return station.Actor{}, false
}

func statusFor(err error) int {
	switch {
	case station.IsValidation(err):
		return http.StatusBadRequest
	case station.IsNotFound(err):
		return http.StatusNotFound
	case station.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps a station error onto the right status code while
// keeping the precise violated precondition in the message.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error(), nil)
}
