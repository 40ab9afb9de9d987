package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petroops/station-engine/api"
	"github.com/petroops/station-engine/station"
	"github.com/petroops/station-engine/station/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func apiSnapshot() station.Snapshot {
	return station.Snapshot{
		Users: []station.User{
			{ID: "admin-1", PIN: "1234", Name: "System Admin", Role: station.RoleAdmin, Username: "admin"},
			{ID: "staff-1", PIN: "5678", Name: "Cashier", Role: station.RoleStaff, Username: "cashier"},
		},
		Staff: []station.StaffMember{
			{ID: "s1", FullName: "Ahmed Al-Rashid", JobTitle: "Pump Operator"},
		},
		Fuels: []station.FuelProduct{
			{ID: "f1", Name: "Octane 91", SalePricePerLiter: dec("2.18"), PurchasePricePerLiter: dec("1.85"),
				CurrentStock: dec("42000"), AlertThreshold: dec("10000")},
		},
		Pumps: []station.PumpMeter{
			{ID: "p1", Code: "01", Name: "Nozzle 1 (91)", FuelID: "f1", LastReading: dec("10000"), CurrentReading: dec("10000")},
		},
		Suppliers: []station.Supplier{
			{ID: "sup1", Name: "Aramco Trading", FuelIDs: []string{"f1"}},
		},
		Settings: station.Settings{CompanyName: "Test Petro", CompanyNameAr: "بترو", TaxNumber: "300000000000003"},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := station.New(context.Background(), station.Options{
		Persister: store.NewMemoryWith(apiSnapshot()),
		IDs:       &station.SequenceSource{Prefix: "id"},
		Clock:     &station.FixedClock{T: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(st, zerolog.Nop()), []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any, asUser string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

// =============================================================================
// AUTH
// =============================================================================

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/auth/login", api.LoginRequest{PIN: "1234"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user station.User
	decode(t, resp, &user)
	assert.Equal(t, "admin-1", user.ID)
}

func TestLogin_WrongPIN(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/auth/login", api.LoginRequest{PIN: "0000"}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var e api.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "Unauthorized Access: Invalid PIN", e.Error)
}

func TestActorHeader_Required(t *testing.T) {
	srv := newTestServer(t)

	// No header.
	resp := do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown user.
	resp = do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "ghost")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// =============================================================================
// SHIFT CYCLE
// =============================================================================

func TestShiftCycle_OverHTTP(t *testing.T) {
	// GIVEN: the seeded pump/staff fixture
	// WHEN: opening and closing a shift through the REST surface
	// THEN: statuses, payloads and the audit trail line up with the engine

	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "admin-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var opened station.Shift
	decode(t, resp, &opened)
	assert.Equal(t, station.ShiftOpen, opened.Status)
	assert.True(t, opened.PriceAtOpen.Equal(dec("2.18")))

	resp = do(t, http.MethodPost, fmt.Sprintf("%s/api/shifts/%s/close", srv.URL, opened.ID), api.CloseShiftRequest{
		EndReading: dec("10500"), CashAmount: dec("1000"), CardAmount: dec("90"),
	}, "admin-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var closed station.Shift
	decode(t, resp, &closed)
	assert.Equal(t, station.ShiftClosed, closed.Status)
	assert.True(t, closed.TotalLiters.Equal(dec("500")))
	assert.True(t, closed.ExpectedAmount.Equal(dec("1090.00")))
	assert.True(t, closed.Shortage.IsZero())

	// The open list is empty again.
	resp = do(t, http.MethodGet, srv.URL+"/api/shifts/open", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var open []station.Shift
	decode(t, resp, &open)
	assert.Empty(t, open)

	// Both mutations hit the audit trail.
	resp = do(t, http.MethodGet, srv.URL+"/api/audit?q=ops_shift", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []station.AuditEntry
	decode(t, resp, &entries)
	assert.Len(t, entries, 2)
}

func TestShiftConflicts_MapTo409(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "admin-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "admin-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCloseShift_ValidationAndLookupStatuses(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/shifts", api.OpenShiftRequest{StaffID: "s1", PumpID: "p1"}, "admin-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var opened station.Shift
	decode(t, resp, &opened)

	// End below start -> 400.
	resp = do(t, http.MethodPost, fmt.Sprintf("%s/api/shifts/%s/close", srv.URL, opened.ID), api.CloseShiftRequest{
		EndReading: dec("9000"),
	}, "admin-1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown shift -> 404.
	resp = do(t, http.MethodPost, srv.URL+"/api/shifts/ghost/close", api.CloseShiftRequest{
		EndReading: dec("10500"),
	}, "admin-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// CRUD SURFACES
// =============================================================================

func TestFuelCRUD_OverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/fuels", station.FuelProduct{
		Name: "Diesel", SalePricePerLiter: dec("1.15"), PurchasePricePerLiter: dec("0.95"),
	}, "admin-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created station.FuelProduct
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)

	// PUT takes the ID from the URL.
	created.Name = "Diesel Premium"
	resp = do(t, http.MethodPut, srv.URL+"/api/fuels/"+created.ID, created, "admin-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/fuels/"+created.ID, nil, "admin-1")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/fuels/"+created.ID, nil, "admin-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteLastUser_409(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodDelete, srv.URL+"/api/users/staff-1", nil, "admin-1")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/users/admin-1", nil, "admin-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReceiveSupply_OverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/suppliers/sup1/supplies", api.ReceiveSupplyRequest{
		FuelID: "f1", Quantity: dec("8000"), Cost: dec("14800"),
	}, "admin-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tx station.SupplyTransaction
	decode(t, resp, &tx)
	assert.Equal(t, "Aramco Trading", tx.SupplierName)

	resp = do(t, http.MethodGet, srv.URL+"/api/fuels", nil, "")
	var fuels []station.FuelProduct
	decode(t, resp, &fuels)
	require.Len(t, fuels, 1)
	assert.True(t, fuels[0].CurrentStock.Equal(dec("50000")))
}

// =============================================================================
// DASHBOARD & EXPORT
// =============================================================================

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/dashboard", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash api.DashboardResponse
	decode(t, resp, &dash)
	assert.NotNil(t, dash.OpenShifts)
	assert.True(t, dash.Summary.TotalRevenue.IsZero())
}

func TestExportCSV_HeaderBlockAndStatuses(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/export/fuels.csv", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "fuels.csv")

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	body := buf.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"))
	assert.Contains(t, body, "Company: Test Petro / بترو")
	assert.Contains(t, body, "VAT Number: 300000000000003")
	assert.Contains(t, body, "Octane 91")

	resp = do(t, http.MethodGet, srv.URL+"/api/export/nonsense.csv", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportStatements(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/export/statement.xlsx", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodGet, srv.URL+"/api/export/statement.pdf", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}
