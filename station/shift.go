/*
shift.go - The OPEN -> CLOSED handover cycle state machine

PURPOSE:
  A shift binds a staff member to a pump (and through the pump, a fuel
  product) for one tenure. Opening freezes the sale price; closing turns
  meter deltas into money:

    consumption    = endReading - startReading
    expectedAmount = consumption * priceAtOpen
    shortage       = expectedAmount - (cash + card)

  Positive shortage means money is missing; negative means surplus.

INVARIANTS:
  - At most one OPEN shift per staff member at any time.
  - At most one OPEN shift per pump code at any time.
  - A close with endReading < startReading is rejected before any mutation,
    so accepted closes always yield non-negative consumption.
  - The OPEN -> CLOSED transition happens exactly once; shifts are never
    deleted, they are the reconciliation history.

SIDE EFFECTS:
  Opening touches nothing but the shift collection. Closing additionally
  deducts consumption from the linked product's stock. Stock has no floor
  at zero: the operator is trusted, over-consumption is logged, not blocked.
*/
package station

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OPEN
// =============================================================================

// OpenShift starts a handover cycle for staffID on pumpID.
//
// staffID resolves against the personnel roster first, then against system
// users (the admin can run a pump). startReading overrides the pump's
// current meter value when non-nil.
func (s *Station) OpenShift(ctx context.Context, actor Actor, staffID, pumpID string, startReading *decimal.Decimal) (Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staffName, ok := s.resolveStaffLocked(staffID)
	if !ok {
		return Shift{}, ErrStaffNotFound
	}

	pump, ok := findByID(s.snap.Pumps, pumpID, func(p PumpMeter) string { return p.ID })
	if !ok {
		return Shift{}, ErrPumpNotFound
	}
	fuel, ok := findByID(s.snap.Fuels, pump.FuelID, func(f FuelProduct) string { return f.ID })
	if !ok {
		return Shift{}, ErrFuelNotFound
	}

	// Distinct conflicts, reported distinctly.
	for _, sh := range s.snap.Shifts {
		if sh.Status != ShiftOpen {
			continue
		}
		if sh.StaffID == staffID {
			return Shift{}, &OpenShiftConflictError{Existing: sh}
		}
		if sh.PumpCode == pump.Code {
			return Shift{}, &OpenShiftConflictError{Existing: sh, ByPump: true}
		}
	}

	reading := pump.CurrentReading
	if startReading != nil {
		reading = *startReading
	}

	shift := Shift{
		ID:           s.ids.NewID(),
		StaffID:      staffID,
		StaffName:    staffName,
		PumpCode:     pump.Code,
		FuelID:       fuel.ID,
		FuelName:     fuel.Name,
		PriceAtOpen:  fuel.SalePricePerLiter, // frozen; later price edits don't touch this shift
		StartReading: reading,
		StartTime:    s.clock.Now(),
		Status:       ShiftOpen,
	}

	s.snap.Shifts = append(cloneSlice(s.snap.Shifts), shift)
	s.recordLocked(actor, ActionShiftOpen,
		fmt.Sprintf("Shift opened on pump %s (%s) by %s at reading %s", pump.Code, fuel.Name, staffName, reading))
	s.commitLocked(ctx, CollectionShifts, CollectionAuditLog)

	return shift, nil
}

// =============================================================================
// CLOSE
// =============================================================================

// CloseShift reconciles and terminates an open shift, deducting consumption
// from the linked fuel product's stock.
func (s *Station) CloseShift(ctx context.Context, actor Actor, shiftID string, endReading, cash, card decimal.Decimal) (Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.snap.Shifts, shiftID, func(sh Shift) string { return sh.ID })
	if idx < 0 {
		return Shift{}, ErrShiftNotFound
	}
	shift := s.snap.Shifts[idx]
	if shift.Status != ShiftOpen {
		return Shift{}, ErrShiftNotOpen
	}
	if endReading.LessThan(shift.StartReading) {
		return Shift{}, &ReadingError{ShiftID: shiftID, StartReading: shift.StartReading, EndReading: endReading}
	}

	consumption := endReading.Sub(shift.StartReading)
	expected := consumption.Mul(shift.PriceAtOpen)
	actual := cash.Add(card)

	now := s.clock.Now()
	shift.Status = ShiftClosed
	shift.EndReading = endReading
	shift.EndTime = &now
	shift.TotalLiters = consumption
	shift.ExpectedAmount = expected
	shift.CashAmount = cash
	shift.CardAmount = card
	shift.Shortage = expected.Sub(actual)

	shifts := cloneSlice(s.snap.Shifts)
	shifts[idx] = shift
	s.snap.Shifts = shifts

	s.deductStockLocked(shift.FuelID, consumption)

	s.recordLocked(actor, ActionShiftClose,
		fmt.Sprintf("Manual reconciliation for fuel ID %s - Quantity %sL deducted", shift.FuelID, consumption))
	s.commitLocked(ctx, CollectionShifts, CollectionFuels, CollectionAuditLog)

	return shift, nil
}

// OpenShifts returns the live handover cycles, in open order.
func (s *Station) OpenShifts() []Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var open []Shift
	for _, sh := range s.snap.Shifts {
		if sh.Status == ShiftOpen {
			open = append(open, sh)
		}
	}
	return open
}

// resolveStaffLocked finds a display name for staffID on the roster, or
// among system users as a fallback.
func (s *Station) resolveStaffLocked(staffID string) (string, bool) {
	if m, ok := findByID(s.snap.Staff, staffID, func(m StaffMember) string { return m.ID }); ok {
		return m.FullName, true
	}
	if u, ok := findByID(s.snap.Users, staffID, func(u User) string { return u.ID }); ok {
		return u.Name, true
	}
	return "", false
}

// =============================================================================
// SMALL COLLECTION HELPERS
// =============================================================================

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func findByID[T any](in []T, id string, key func(T) string) (T, bool) {
	for _, v := range in {
		if key(v) == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func indexByID[T any](in []T, id string, key func(T) string) int {
	for i, v := range in {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func prependCapped[T any](in []T, v T, limit int) []T {
	out := make([]T, 0, len(in)+1)
	out = append(out, v)
	out = append(out, in...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
