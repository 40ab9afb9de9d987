/*
errors.go - Centralized error types for the station engine

PURPOSE:
  All rejection conditions in one place. Every command validates before it
  mutates, so any error below means state is untouched.

ERROR CATEGORIES:
  1. Lookup errors      - a referenced record does not exist
  2. Conflict errors    - double-open shifts, last-user deletion
  3. Validation errors  - readings out of order, malformed input

The API layer maps these with IsNotFound / IsConflict / IsValidation.
Distinct conflicts stay distinct: "staff already has an open shift" and
"pump already in use" are separate conditions and must never collapse
into one generic error.
*/
package station

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStaffNotFound is returned when a shift references an unknown staff
	// member (neither on the roster nor a system user).
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrPumpNotFound is returned when a referenced pump meter doesn't exist.
	ErrPumpNotFound = errors.New("pump not found")

	// ErrFuelNotFound is returned when a referenced fuel product doesn't exist.
	ErrFuelNotFound = errors.New("fuel product not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrSupplierNotFound is returned when a referenced supplier doesn't exist.
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrUserNotFound is returned when a referenced system user doesn't exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDocumentNotFound is returned when a referenced document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrExpenseNotFound is returned when a referenced expense doesn't exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrStaffAlreadyOnShift is returned when the staff member already has an
	// OPEN shift. One open shift per staff member, always.
	ErrStaffAlreadyOnShift = errors.New("staff member already has an open shift")

	// ErrPumpAlreadyOnShift is returned when the pump is already attached to
	// an OPEN shift. One open shift per pump code, always.
	ErrPumpAlreadyOnShift = errors.New("pump already assigned to an open shift")

	// ErrShiftNotOpen is returned when closing a shift that is not OPEN.
	// The OPEN -> CLOSED transition happens exactly once.
	ErrShiftNotOpen = errors.New("shift is not open")

	// ErrEndBeforeStart is returned when a close supplies an end reading
	// below the start reading. Consumption can never be negative.
	ErrEndBeforeStart = errors.New("end reading cannot be less than start reading")

	// ErrLastUser is returned when deleting the only remaining system user.
	// At least one authenticated identity must always remain.
	ErrLastUser = errors.New("cannot delete the last remaining user")

	// ErrInvalidPIN is returned when no user matches the supplied PIN.
	ErrInvalidPIN = errors.New("invalid PIN")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ReadingError carries the offending meter readings on a rejected close.
type ReadingError struct {
	ShiftID      string
	StartReading decimal.Decimal
	EndReading   decimal.Decimal
}

func (e *ReadingError) Error() string {
	return fmt.Sprintf("shift %s: end reading %s is below start reading %s",
		e.ShiftID, e.EndReading, e.StartReading)
}

func (e *ReadingError) Unwrap() error { return ErrEndBeforeStart }

// OpenShiftConflictError identifies which open shift blocked a new one.
type OpenShiftConflictError struct {
	Existing Shift
	ByPump   bool // true: pump conflict, false: staff conflict
}

func (e *OpenShiftConflictError) Error() string {
	if e.ByPump {
		return fmt.Sprintf("pump %s already assigned to open shift %s", e.Existing.PumpCode, e.Existing.ID)
	}
	return fmt.Sprintf("staff %s already on open shift %s", e.Existing.StaffName, e.Existing.ID)
}

func (e *OpenShiftConflictError) Unwrap() error {
	if e.ByPump {
		return ErrPumpAlreadyOnShift
	}
	return ErrStaffAlreadyOnShift
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStaffNotFound) ||
		errors.Is(err, ErrPumpNotFound) ||
		errors.Is(err, ErrFuelNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrExpenseNotFound)
}

// IsConflict returns true for state conflicts (double-open, last user).
func IsConflict(err error) bool {
	return errors.Is(err, ErrStaffAlreadyOnShift) ||
		errors.Is(err, ErrPumpAlreadyOnShift) ||
		errors.Is(err, ErrShiftNotOpen) ||
		errors.Is(err, ErrLastUser)
}

// IsValidation returns true for bad input that a form should correct.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidPIN)
}
