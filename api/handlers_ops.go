/*
handlers_ops.go - Operational endpoints: shifts, fuels, pumps, suppliers,
supply receipts, expenses
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petroops/station-engine/station"
)

// =============================================================================
// SHIFTS
// =============================================================================

// ListShifts returns every shift, open and closed.
// GET /api/shifts
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts := h.Station.Snapshot().Shifts
	if shifts == nil {
		shifts = []station.Shift{}
	}
	writeJSON(w, http.StatusOK, shifts)
}

// ListOpenShifts returns the live handover cycles.
// GET /api/shifts/open
func (h *Handler) ListOpenShifts(w http.ResponseWriter, r *http.Request) {
	open := h.Station.OpenShifts()
	if open == nil {
		open = []station.Shift{}
	}
	writeJSON(w, http.StatusOK, open)
}

// OpenShift starts a handover cycle.
// POST /api/shifts
func (h *Handler) OpenShift(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req OpenShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, err := h.Station.OpenShift(r.Context(), actor, req.StaffID, req.PumpID, req.StartReading)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shift)
}

// CloseShift reconciles and terminates a shift.
// POST /api/shifts/{id}/close
func (h *Handler) CloseShift(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req CloseShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	shift, err := h.Station.CloseShift(r.Context(), actor, chi.URLParam(r, "id"), req.EndReading, req.CashAmount, req.CardAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shift)
}

// =============================================================================
// FUEL PRODUCTS
// =============================================================================

// GET /api/fuels
func (h *Handler) ListFuels(w http.ResponseWriter, r *http.Request) {
	fuels := h.Station.Snapshot().Fuels
	if fuels == nil {
		fuels = []station.FuelProduct{}
	}
	writeJSON(w, http.StatusOK, fuels)
}

// GET /api/fuels/low-stock
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	low := h.Station.LowStock()
	if low == nil {
		low = []station.FuelProduct{}
	}
	writeJSON(w, http.StatusOK, low)
}

// POST /api/fuels (create) and PUT /api/fuels/{id} (overwrite)
func (h *Handler) SaveFuel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var f station.FuelProduct
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		f.ID = id
	}

	saved, err := h.Station.SaveFuelProduct(r.Context(), actor, f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/fuels/{id}
func (h *Handler) DeleteFuel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteFuelProduct(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PUMPS
// =============================================================================

// GET /api/pumps
func (h *Handler) ListPumps(w http.ResponseWriter, r *http.Request) {
	pumps := h.Station.Snapshot().Pumps
	if pumps == nil {
		pumps = []station.PumpMeter{}
	}
	writeJSON(w, http.StatusOK, pumps)
}

// POST /api/pumps and PUT /api/pumps/{id}
func (h *Handler) SavePump(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var p station.PumpMeter
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		p.ID = id
	}

	saved, err := h.Station.SavePump(r.Context(), actor, p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/pumps/{id}
func (h *Handler) DeletePump(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeletePump(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SUPPLIERS & SUPPLY RECEIPTS
// =============================================================================

// GET /api/suppliers
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers := h.Station.Snapshot().Suppliers
	if suppliers == nil {
		suppliers = []station.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// POST /api/suppliers and PUT /api/suppliers/{id}
func (h *Handler) SaveSupplier(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var sp station.Supplier
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		sp.ID = id
	}

	saved, err := h.Station.SaveSupplier(r.Context(), actor, sp)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/suppliers/{id}
func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteSupplier(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReceiveSupply records a delivery and raises stock.
// POST /api/suppliers/{id}/supplies
func (h *Handler) ReceiveSupply(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req ReceiveSupplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tx, err := h.Station.ReceiveSupply(r.Context(), actor, chi.URLParam(r, "id"), req.FuelID, req.Quantity, req.Cost)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// GET /api/supplies
func (h *Handler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	supplies := h.Station.Snapshot().Supplies
	if supplies == nil {
		supplies = []station.SupplyTransaction{}
	}
	writeJSON(w, http.StatusOK, supplies)
}

// =============================================================================
// EXPENSES
// =============================================================================

// GET /api/expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.Station.Snapshot().Expenses
	if expenses == nil {
		expenses = []station.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// POST /api/expenses and PUT /api/expenses/{id}
func (h *Handler) SaveExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var e station.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		e.ID = id
	}

	saved, err := h.Station.SaveExpense(r.Context(), actor, e)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/expenses/{id}
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if err := h.Station.DeleteExpense(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
