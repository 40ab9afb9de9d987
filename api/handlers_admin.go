/*
handlers_admin.go - Administration endpoints: users, personnel roster,
compliance documents, document taxonomy, settings, backup log
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petroops/station-engine/station"
)

// =============================================================================
// SYSTEM USERS
// =============================================================================

// GET /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Station.Snapshot().Users)
}

// POST /api/users and PUT /api/users/{id}
func (h *Handler) SaveUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var u station.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		u.ID = id
	}

	saved, err := h.Station.SaveUser(r.Context(), actor, u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/users/{id} - deleting the last user is a 409.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PERSONNEL ROSTER
// =============================================================================

// GET /api/staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff := h.Station.Snapshot().Staff
	if staff == nil {
		staff = []station.StaffMember{}
	}
	writeJSON(w, http.StatusOK, staff)
}

// POST /api/staff and PUT /api/staff/{id}
func (h *Handler) SaveStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var m station.StaffMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		m.ID = id
	}

	saved, err := h.Station.SaveStaff(r.Context(), actor, m)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/staff/{id}
func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteStaff(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMPLIANCE DOCUMENTS
// =============================================================================

// GET /api/documents
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := h.Station.Snapshot().Documents
	if docs == nil {
		docs = []station.StationDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// GET /api/documents/expiring?within_days=30
func (h *Handler) ExpiringDocuments(w http.ResponseWriter, r *http.Request) {
	withinDays := 30
	if v := r.URL.Query().Get("within_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			withinDays = n
		}
	}
	docs := h.Station.ExpiringDocuments(withinDays)
	if docs == nil {
		docs = []station.StationDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// POST /api/documents and PUT /api/documents/{id}
func (h *Handler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var d station.StationDocument
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		d.ID = id
	}

	saved, err := h.Station.SaveDocument(r.Context(), actor, d)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/documents/{id}
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteDocument(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/document-types
func (h *Handler) ListDocumentTypes(w http.ResponseWriter, r *http.Request) {
	types := h.Station.Snapshot().DocumentTypes
	if types == nil {
		types = []station.DocumentType{}
	}
	writeJSON(w, http.StatusOK, types)
}

// PUT /api/document-types - replaces the taxonomy wholesale.
func (h *Handler) SaveDocumentTypes(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var types []station.DocumentType
	if err := json.NewDecoder(r.Body).Decode(&types); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Station.SaveDocumentTypes(r.Context(), actor, types); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// =============================================================================
// SETTINGS & BACKUPS
// =============================================================================

// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Station.Snapshot().Settings)
}

// PUT /api/settings
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var cfg station.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Station.SaveSettings(r.Context(), actor, cfg); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// GET /api/backups
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups := h.Station.Snapshot().Backups
	if backups == nil {
		backups = []station.BackupEntry{}
	}
	writeJSON(w, http.StatusOK, backups)
}

// POST /api/backups - notes that a snapshot export was taken.
func (h *Handler) RecordBackup(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req BackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	entry := h.Station.RecordBackup(r.Context(), actor, req.FileName)
	writeJSON(w, http.StatusCreated, entry)
}
