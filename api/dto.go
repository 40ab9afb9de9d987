/*
dto.go - Request and response shapes for the HTTP surface

The domain entities already carry the wire-format json tags (the persisted
schema and the API schema coincide in this system), so responses return
them directly. Only command inputs and the error envelope live here.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/petroops/station-engine/report"
	"github.com/petroops/station-engine/station"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// LoginRequest carries the PIN for local authentication.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// OpenShiftRequest starts a handover cycle. StartReading overrides the
// pump's current meter value when present.
type OpenShiftRequest struct {
	StaffID      string           `json:"staffId"`
	PumpID       string           `json:"pumpId"`
	StartReading *decimal.Decimal `json:"startReading,omitempty"`
}

// CloseShiftRequest reconciles an open shift.
type CloseShiftRequest struct {
	EndReading decimal.Decimal `json:"endReading"`
	CashAmount decimal.Decimal `json:"cashAmount"`
	CardAmount decimal.Decimal `json:"cardAmount"`
}

// ReceiveSupplyRequest records a delivery against a supplier.
type ReceiveSupplyRequest struct {
	FuelID   string          `json:"fuelTypeId"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// BackupRequest notes a snapshot export.
type BackupRequest struct {
	FileName string `json:"fileName"`
}

// DashboardResponse aggregates the landing-page reads into one payload.
type DashboardResponse struct {
	OpenShifts        []station.Shift           `json:"openShifts"`
	LowStock          []station.FuelProduct     `json:"lowStock"`
	ExpiringDocuments []station.StationDocument `json:"expiringDocuments"`
	Summary           report.Summary            `json:"summary"`
}
