/*
Package station contains the core reconciliation engine for a single-tenant
fuel station back office.

PURPOSE:
  This package holds the domain entities and the aggregate store that owns
  them. Everything revolves around the shift handover cycle: a staff member
  operates a pump between an open and a close, and the close reconciles
  meter consumption against collected cash and card funds.

KEY CONCEPTS IN THIS FILE (types.go):
  - FuelProduct:       per-product stock levels and pricing
  - PumpMeter:         physical meter mapped to a fuel product
  - Shift:             one handover cycle, OPEN until reconciled
  - Expense:           fixed/variable cost records feeding monthly reports
  - SupplyTransaction: append-only receipts that raise stock
  - User/StaffMember:  system identities and the personnel roster
  - AuditEntry:        capped, newest-first trail of every mutation

DESIGN PRINCIPLES:
  1. Precision: all money and liter quantities use decimal.Decimal.
     float64 never touches financial math.
  2. Frozen prices: a shift snapshots the sale price at open; later price
     edits do not change that shift's expected revenue.
  3. Collection-level copy-on-write: commands replace whole collections,
     never mutate entries in place.

SEE ALSO:
  - station.go: the aggregate store and command surface
  - shift.go:   the OPEN -> CLOSED state machine
  - fuel.go:    stock movements (supply receipts, shift deductions)
  - audit.go:   the closed action taxonomy and capped recorder
*/
package station

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTITY & ACCESS
// =============================================================================

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// User is a system identity able to sign in with a PIN.
// The PIN is a plaintext local comparison, not a credential in any
// security-hardened sense. This system has exactly one active session.
type User struct {
	ID       string `json:"id"`
	PIN      string `json:"pin"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// Actor identifies who triggered a command, for the audit trail.
type Actor struct {
	ID   string
	Name string
}

func (u User) Actor() Actor { return Actor{ID: u.ID, Name: u.Name} }

// =============================================================================
// PERSONNEL
// =============================================================================

type CalendarType string

const (
	CalendarGregorian CalendarType = "gregorian"
	CalendarHijri     CalendarType = "hijri"
)

// PersonnelDocument is a document attached to a staff member
// (iqama, driving licence, ...) tracked for expiry.
type PersonnelDocument struct {
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	ExpiryDate   time.Time    `json:"expiryDate"`
	CalendarType CalendarType `json:"calendarType"`
	FileName     string       `json:"fileName"`
	FileData     string       `json:"fileData,omitempty"` // base64 payload, optional
}

type StaffMember struct {
	ID          string              `json:"id"`
	FullName    string              `json:"fullName"`
	Nationality string              `json:"nationality"`
	DateOfBirth string              `json:"dob"`
	Contact     string              `json:"contact"`
	Phone       string              `json:"phone"`
	Email       string              `json:"email"`
	JobTitle    string              `json:"jobTitle"`
	Salary      decimal.Decimal     `json:"salary"`
	Documents   []PersonnelDocument `json:"documents"`
}

// =============================================================================
// FUEL & PUMPS
// =============================================================================

// FuelProduct tracks one product's stock and pricing. CurrentStock moves
// only through shift closes (deduction) and supply receipts (addition);
// everything else is a direct administrative overwrite.
type FuelProduct struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	SalePricePerLiter     decimal.Decimal `json:"pricePerLiter"`
	PurchasePricePerLiter decimal.Decimal `json:"purchasePricePerLiter"`
	IncludesTax           bool            `json:"includesTax"`
	InitialStock          decimal.Decimal `json:"initialStock"`
	CurrentStock          decimal.Decimal `json:"currentStock"`
	EvaporationAmount     decimal.Decimal `json:"evaporationAmount"`
	AlertThreshold        decimal.Decimal `json:"alertThreshold"`
}

// PumpMeter is a physical nozzle with an odometer-style cumulative reading.
// Monotonicity is a convention, not enforced here; the shift close is where
// end-before-start readings get rejected.
type PumpMeter struct {
	ID             string          `json:"id"`
	Code           string          `json:"pumpId"` // operator-facing pump code, e.g. "01"
	Name           string          `json:"name"`
	FuelID         string          `json:"fuelTypeId"`
	LastReading    decimal.Decimal `json:"lastReading"`
	CurrentReading decimal.Decimal `json:"currentReading"`
	Deficit        decimal.Decimal `json:"deficit"` // manually entered shortage in liters
}

// =============================================================================
// SHIFTS - the handover cycle
// =============================================================================

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// Shift is one staff member's tenure on a pump. Reconciliation fields
// (EndReading onwards) are zero until the shift is closed; Status gates
// their meaning. Shifts are never deleted - they form the permanent
// reconciliation history.
type Shift struct {
	ID           string          `json:"id"`
	StaffID      string          `json:"staffId"`
	StaffName    string          `json:"staffName"`
	PumpCode     string          `json:"pumpId"`
	FuelID       string          `json:"fuelTypeId"`
	FuelName     string          `json:"fuelType"`
	PriceAtOpen  decimal.Decimal `json:"priceAtShift"`
	StartReading decimal.Decimal `json:"startReading"`
	StartTime    time.Time       `json:"startTime"`
	Status       ShiftStatus     `json:"status"`

	// Set on close.
	EndReading     decimal.Decimal `json:"endReading"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	TotalLiters    decimal.Decimal `json:"totalLiters"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	CashAmount     decimal.Decimal `json:"cashAmount"`
	CardAmount     decimal.Decimal `json:"cardAmount"`
	Shortage       decimal.Decimal `json:"shortage"`
}

// =============================================================================
// FINANCE
// =============================================================================

type ExpenseType string

const (
	ExpenseFixed    ExpenseType = "FIXED"
	ExpenseVariable ExpenseType = "VARIABLE"
)

type Recurrence string

const (
	RecurrenceOnce    Recurrence = "ONCE"
	RecurrenceMonthly Recurrence = "MONTHLY"
	RecurrenceYearly  Recurrence = "YEARLY"
)

type ExpenseCategory string

const (
	CategoryRent        ExpenseCategory = "Rent"
	CategorySalary      ExpenseCategory = "Salary"
	CategoryElectricity ExpenseCategory = "Electricity"
	CategoryWater       ExpenseCategory = "Water"
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryGovernment  ExpenseCategory = "Government"
	CategoryOther       ExpenseCategory = "Other"
)

// Expense feeds the monthly aggregator. Recurrence is recorded but does not
// auto-generate future entries; it is inert metadata carried for reporting.
type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Type        ExpenseType     `json:"type"`
	Recurrence  Recurrence      `json:"recurrence"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// =============================================================================
// SUPPLIERS & RECEIPTS
// =============================================================================

type Supplier struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ContactPerson string   `json:"contactPerson"`
	Phone         string   `json:"phone"`
	FuelIDs       []string `json:"fuelTypes"`
}

// SupplyTransaction is an append-only receipt. Creating one raises the
// linked product's stock by Quantity.
type SupplyTransaction struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	FuelID       string          `json:"fuelTypeId"`
	FuelName     string          `json:"fuelTypeName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	Date         time.Time       `json:"date"`
}

// =============================================================================
// COMPLIANCE DOCUMENTS
// =============================================================================

// StationDocument is a station-level compliance document (commercial
// registration, civil defense licence, ...) tracked for expiry.
type StationDocument struct {
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	ExpiryDate   time.Time    `json:"expiryDate"`
	CalendarType CalendarType `json:"calendarType"`
	FileName     string       `json:"fileName"`
	FileData     string       `json:"fileData,omitempty"`
}

// DocumentType is a configurable classification for station documents.
type DocumentType struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	LabelAr string `json:"labelAr"`
}

// =============================================================================
// SETTINGS & OPERATIONAL LOGS
// =============================================================================

// Settings carries corporate identity used on exported reports.
type Settings struct {
	CompanyName   string `json:"companyName"`
	CompanyNameAr string `json:"companyNameAr"`
	TaxNumber     string `json:"taxNumber"`
	Logo          string `json:"logo,omitempty"`
}

// BackupEntry records a snapshot export taken from the settings page.
type BackupEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"userName"`
	FileName  string    `json:"fileName"`
}

// AuditEntry is one line of the capped, newest-first audit trail.
type AuditEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	UserName  string      `json:"userName"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	Timestamp time.Time   `json:"timestamp"`
}
