package station_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petroops/station-engine/station"
	"github.com/petroops/station-engine/station/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var testAdmin = station.Actor{ID: "admin-1", Name: "System Admin"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testSnapshot mirrors a small live installation: two products, one pump on
// the first product, one roster member, one admin user.
func testSnapshot() station.Snapshot {
	return station.Snapshot{
		Users: []station.User{
			{ID: "admin-1", PIN: "1234", Name: "System Admin", Role: station.RoleAdmin, Username: "admin"},
		},
		Staff: []station.StaffMember{
			{ID: "s1", FullName: "Ahmed Al-Rashid", JobTitle: "Pump Operator"},
		},
		Fuels: []station.FuelProduct{
			{ID: "f1", Name: "Octane 91", SalePricePerLiter: dec("2.18"), PurchasePricePerLiter: dec("1.85"),
				InitialStock: dec("50000"), CurrentStock: dec("42000"), AlertThreshold: dec("10000")},
			{ID: "f2", Name: "Octane 95", SalePricePerLiter: dec("2.33"), PurchasePricePerLiter: dec("2.05"),
				InitialStock: dec("30000"), CurrentStock: dec("12000"), AlertThreshold: dec("5000")},
		},
		Pumps: []station.PumpMeter{
			{ID: "p1", Code: "01", Name: "Nozzle 1 (91)", FuelID: "f1", LastReading: dec("10000"), CurrentReading: dec("10000")},
			{ID: "p2", Code: "02", Name: "Nozzle 2 (95)", FuelID: "f2", LastReading: dec("5000"), CurrentReading: dec("5000")},
		},
		Settings: station.Settings{CompanyName: "Test Petro", TaxNumber: "300000000000003"},
	}
}

func newTestStation(t *testing.T) (*station.Station, *store.Memory, *station.FixedClock) {
	t.Helper()

	mem := store.NewMemoryWith(testSnapshot())
	clock := &station.FixedClock{T: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)}

	st, err := station.New(context.Background(), station.Options{
		Persister: mem,
		IDs:       &station.SequenceSource{Prefix: "id"},
		Clock:     clock,
	})
	require.NoError(t, err)
	return st, mem, clock
}

func openTestShift(t *testing.T, st *station.Station) station.Shift {
	t.Helper()
	shift, err := st.OpenShift(context.Background(), testAdmin, "s1", "p1", nil)
	require.NoError(t, err)
	return shift
}

// =============================================================================
// OPEN
// =============================================================================

func TestOpenShift_FreezesPriceAndReading(t *testing.T) {
	// GIVEN: pump p1 reads 10000 and Octane 91 sells at 2.18
	// WHEN: a shift opens without a reading override
	// THEN: the shift carries reading 10000 and the frozen price

	st, _, clock := newTestStation(t)

	shift := openTestShift(t, st)

	assert.Equal(t, station.ShiftOpen, shift.Status)
	assert.Equal(t, "Ahmed Al-Rashid", shift.StaffName)
	assert.Equal(t, "01", shift.PumpCode)
	assert.Equal(t, "f1", shift.FuelID)
	assert.True(t, shift.StartReading.Equal(dec("10000")))
	assert.True(t, shift.PriceAtOpen.Equal(dec("2.18")))
	assert.Equal(t, clock.T, shift.StartTime)
	assert.Nil(t, shift.EndTime)
}

func TestOpenShift_StartReadingOverride(t *testing.T) {
	st, _, _ := newTestStation(t)

	override := dec("10250")
	shift, err := st.OpenShift(context.Background(), testAdmin, "s1", "p1", &override)
	require.NoError(t, err)

	assert.True(t, shift.StartReading.Equal(override))
}

func TestOpenShift_AdminCanRunAPump(t *testing.T) {
	// System users resolve as staff when they are not on the roster.
	st, _, _ := newTestStation(t)

	shift, err := st.OpenShift(context.Background(), testAdmin, "admin-1", "p1", nil)
	require.NoError(t, err)
	assert.Equal(t, "System Admin", shift.StaffName)
}

func TestOpenShift_UnknownReferences(t *testing.T) {
	st, _, _ := newTestStation(t)
	ctx := context.Background()

	_, err := st.OpenShift(ctx, testAdmin, "ghost", "p1", nil)
	assert.ErrorIs(t, err, station.ErrStaffNotFound)

	_, err = st.OpenShift(ctx, testAdmin, "s1", "ghost", nil)
	assert.ErrorIs(t, err, station.ErrPumpNotFound)

	// No shift was created by the rejected opens.
	assert.Empty(t, st.OpenShifts())
}

func TestOpenShift_StaffConflict_Rejected(t *testing.T) {
	// GIVEN: s1 is already on an open shift on pump p1
	// WHEN: s1 tries to open a second shift on pump p2
	// THEN: rejected with the staff-specific conflict, state unchanged

	st, _, _ := newTestStation(t)
	ctx := context.Background()
	openTestShift(t, st)

	_, err := st.OpenShift(ctx, testAdmin, "s1", "p2", nil)

	assert.ErrorIs(t, err, station.ErrStaffAlreadyOnShift)
	var conflict *station.OpenShiftConflictError
	require.ErrorAs(t, err, &conflict)
	assert.False(t, conflict.ByPump)
	assert.Len(t, st.OpenShifts(), 1)
}

func TestOpenShift_PumpConflict_Rejected(t *testing.T) {
	// GIVEN: pump p1 is attached to an open shift
	// WHEN: a different staff member opens on p1
	// THEN: rejected with the pump-specific conflict - the two conflict
	//       kinds never collapse into one error

	st, _, _ := newTestStation(t)
	ctx := context.Background()
	openTestShift(t, st)

	_, err := st.OpenShift(ctx, testAdmin, "admin-1", "p1", nil)

	assert.ErrorIs(t, err, station.ErrPumpAlreadyOnShift)
	assert.NotErrorIs(t, err, station.ErrStaffAlreadyOnShift)
	var conflict *station.OpenShiftConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.ByPump)
	assert.Len(t, st.OpenShifts(), 1)
}

func TestOpenShift_ClosedShiftsDoNotBlock(t *testing.T) {
	st, _, _ := newTestStation(t)
	ctx := context.Background()

	shift := openTestShift(t, st)
	_, err := st.CloseShift(ctx, testAdmin, shift.ID, dec("10100"), dec("218"), dec("0"))
	require.NoError(t, err)

	// Same staff, same pump, fresh cycle.
	_, err = st.OpenShift(ctx, testAdmin, "s1", "p1", nil)
	assert.NoError(t, err)
}

// =============================================================================
// CLOSE
// =============================================================================

func TestCloseShift_ReconciliationArithmetic(t *testing.T) {
	// GIVEN: a shift opened at reading 10000 with frozen price 2.18
	// WHEN: closed at 10500 with cash 1000 and card 90
	// THEN: 500 liters, expected 1090.00, shortage exactly 0.00

	st, _, _ := newTestStation(t)
	shift := openTestShift(t, st)

	closed, err := st.CloseShift(context.Background(), testAdmin, shift.ID, dec("10500"), dec("1000"), dec("90"))
	require.NoError(t, err)

	assert.Equal(t, station.ShiftClosed, closed.Status)
	assert.True(t, closed.TotalLiters.Equal(dec("500")), "liters: %s", closed.TotalLiters)
	assert.True(t, closed.ExpectedAmount.Equal(dec("1090.00")), "expected: %s", closed.ExpectedAmount)
	assert.True(t, closed.Shortage.IsZero(), "shortage: %s", closed.Shortage)
	require.NotNil(t, closed.EndTime)
}

func TestCloseShift_ShortageSignConvention(t *testing.T) {
	// Positive shortage = money missing, negative = surplus.
	st, _, _ := newTestStation(t)
	ctx := context.Background()

	shift := openTestShift(t, st)
	closed, err := st.CloseShift(ctx, testAdmin, shift.ID, dec("10500"), dec("1000"), dec("0"))
	require.NoError(t, err)
	assert.True(t, closed.Shortage.Equal(dec("90.00")), "deficit expected, got %s", closed.Shortage)

	shift2, err := st.OpenShift(ctx, testAdmin, "s1", "p2", nil)
	require.NoError(t, err)
	closed2, err := st.CloseShift(ctx, testAdmin, shift2.ID, dec("5100"), dec("250"), dec("0"))
	require.NoError(t, err)
	// 100L * 2.33 = 233 expected, 250 collected -> -17 surplus
	assert.True(t, closed2.Shortage.Equal(dec("-17.00")), "surplus expected, got %s", closed2.Shortage)
}

func TestCloseShift_EndBeforeStart_Rejected(t *testing.T) {
	// GIVEN: an open shift starting at reading 10000
	// WHEN: closing with end reading 9999
	// THEN: rejected before any mutation - shift stays open, stock untouched

	st, _, _ := newTestStation(t)
	shift := openTestShift(t, st)

	_, err := st.CloseShift(context.Background(), testAdmin, shift.ID, dec("9999"), dec("0"), dec("0"))

	assert.ErrorIs(t, err, station.ErrEndBeforeStart)
	var readingErr *station.ReadingError
	require.ErrorAs(t, err, &readingErr)
	assert.True(t, readingErr.EndReading.Equal(dec("9999")))

	assert.Len(t, st.OpenShifts(), 1)
	f1, ok := fuelByID(st.Snapshot().Fuels, "f1")
	require.True(t, ok)
	assert.True(t, f1.CurrentStock.Equal(dec("42000")), "stock must be untouched")
}

func TestCloseShift_ZeroConsumptionAllowed(t *testing.T) {
	st, _, _ := newTestStation(t)
	shift := openTestShift(t, st)

	closed, err := st.CloseShift(context.Background(), testAdmin, shift.ID, dec("10000"), dec("0"), dec("0"))
	require.NoError(t, err)
	assert.True(t, closed.TotalLiters.IsZero())
	assert.True(t, closed.ExpectedAmount.IsZero())
}

func TestCloseShift_OnlyOnce(t *testing.T) {
	st, _, _ := newTestStation(t)
	ctx := context.Background()
	shift := openTestShift(t, st)

	_, err := st.CloseShift(ctx, testAdmin, shift.ID, dec("10500"), dec("1090"), dec("0"))
	require.NoError(t, err)

	_, err = st.CloseShift(ctx, testAdmin, shift.ID, dec("10600"), dec("0"), dec("0"))
	assert.ErrorIs(t, err, station.ErrShiftNotOpen)

	_, err = st.CloseShift(ctx, testAdmin, "ghost", dec("10600"), dec("0"), dec("0"))
	assert.ErrorIs(t, err, station.ErrShiftNotFound)
}

func TestCloseShift_DeductsStock(t *testing.T) {
	// The close instructs the fuel ledger to subtract consumption.
	st, _, _ := newTestStation(t)
	shift := openTestShift(t, st)

	_, err := st.CloseShift(context.Background(), testAdmin, shift.ID, dec("10500"), dec("1000"), dec("90"))
	require.NoError(t, err)

	f1, ok := fuelByID(st.Snapshot().Fuels, "f1")
	require.True(t, ok)
	assert.True(t, f1.CurrentStock.Equal(dec("41500")), "42000 - 500, got %s", f1.CurrentStock)
}

func TestCloseShift_StockMayGoNegative(t *testing.T) {
	// Over-consumption is not clamped; the operator is trusted.
	st, _, _ := newTestStation(t)

	shift, err := st.OpenShift(context.Background(), testAdmin, "s1", "p2", nil)
	require.NoError(t, err)

	_, err = st.CloseShift(context.Background(), testAdmin, shift.ID, dec("20000"), dec("0"), dec("0"))
	require.NoError(t, err)

	f2, ok := fuelByID(st.Snapshot().Fuels, "f2")
	require.True(t, ok)
	assert.True(t, f2.CurrentStock.IsNegative(), "12000 - 15000 must stay negative, got %s", f2.CurrentStock)
}

// =============================================================================
// PRICE FREEZING
// =============================================================================

func TestPriceFreezing_SalePriceChangeAfterOpen(t *testing.T) {
	// GIVEN: a shift open at frozen price 2.18
	// WHEN: the product's sale price changes to 3.00 mid-shift
	// THEN: the close still reconciles at 2.18

	st, _, _ := newTestStation(t)
	ctx := context.Background()
	shift := openTestShift(t, st)

	f1, ok := fuelByID(st.Snapshot().Fuels, "f1")
	require.True(t, ok)
	f1.SalePricePerLiter = dec("3.00")
	_, err := st.SaveFuelProduct(ctx, testAdmin, f1)
	require.NoError(t, err)

	closed, err := st.CloseShift(ctx, testAdmin, shift.ID, dec("10500"), dec("1090"), dec("0"))
	require.NoError(t, err)

	assert.True(t, closed.PriceAtOpen.Equal(dec("2.18")))
	assert.True(t, closed.ExpectedAmount.Equal(dec("1090.00")), "500 * 2.18, got %s", closed.ExpectedAmount)
	assert.True(t, closed.Shortage.IsZero())
}

// =============================================================================
// FULL SCENARIO & SIDE EFFECTS
// =============================================================================

func TestShiftCycle_Scenario(t *testing.T) {
	// The end-to-end reconciliation scenario: open on p1/f1 at 10000,
	// close at 10500 with 1000 cash + 90 card.

	st, mem, _ := newTestStation(t)
	ctx := context.Background()

	shift, err := st.OpenShift(ctx, testAdmin, "s1", "p1", nil)
	require.NoError(t, err)
	closed, err := st.CloseShift(ctx, testAdmin, shift.ID, dec("10500"), dec("1000"), dec("90"))
	require.NoError(t, err)

	// Stock: 42000 - 500.
	f1, ok := fuelByID(st.Snapshot().Fuels, "f1")
	require.True(t, ok)
	assert.True(t, f1.CurrentStock.Equal(dec("41500")))

	// Shortage: exactly zero.
	assert.True(t, closed.Shortage.IsZero())

	// Audit: exactly one open entry and one close entry, newest first.
	log := st.AuditLog()
	var opens, closes int
	for _, e := range log {
		switch e.Action {
		case station.ActionShiftOpen:
			opens++
		case station.ActionShiftClose:
			closes++
		}
	}
	assert.Equal(t, 1, opens)
	assert.Equal(t, 1, closes)
	assert.Equal(t, station.ActionShiftClose, log[0].Action, "newest entry first")

	// Persistence subscriber observed both mutations.
	assert.Equal(t, 2, mem.SaveCount(station.CollectionShifts))
	persisted, err := mem.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, persisted.Shifts, 1)
	assert.Equal(t, station.ShiftClosed, persisted.Shifts[0].Status)
}

func TestCommands_SurviveFailingPersister(t *testing.T) {
	// Persistence is best-effort: a failing save never fails the command.
	st, mem, _ := newTestStation(t)
	mem.FailWith = assert.AnError

	shift, err := st.OpenShift(context.Background(), testAdmin, "s1", "p1", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, shift.ID)
	assert.Len(t, st.OpenShifts(), 1)
}

func fuelByID(fuels []station.FuelProduct, id string) (station.FuelProduct, bool) {
	for _, f := range fuels {
		if f.ID == id {
			return f, true
		}
	}
	return station.FuelProduct{}, false
}
